// Package storage provides JSON blob persistence for the ledger.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kay207/money-life/internal/common"
	"github.com/kay207/money-life/internal/interfaces"
	"github.com/kay207/money-life/internal/models"
)

// Blob keys under the data directory.
const (
	keyProfile     = "profile"
	keyAssets      = "assets"
	keySnapshots   = "snapshots"
	keyLastUpdated = "last_updated"
)

// FileStore is a file-based LedgerStore. Each key is one JSON file written
// atomically (temp file + rename). Missing or corrupt files read as absent,
// never as errors; a corrupt blob is reported once at warn level.
type FileStore struct {
	basePath string
	logger   *common.Logger
}

// NewFileStore creates a FileStore rooted at the configured data directory.
func NewFileStore(logger *common.Logger, cfg common.StorageConfig) (*FileStore, error) {
	if err := os.MkdirAll(cfg.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.Path, err)
	}

	fs := &FileStore{
		basePath: cfg.Path,
		logger:   logger,
	}

	logger.Debug().Str("path", cfg.Path).Msg("FileStore opened")
	return fs, nil
}

func (fs *FileStore) filePath(key string) string {
	return filepath.Join(fs.basePath, key+".json")
}

// readJSON reads and unmarshals a JSON file. Returns (false, nil) when the
// file is missing, empty, or unparseable.
func (fs *FileStore) readJSON(key string, dest interface{}) (bool, error) {
	path := fs.filePath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		fs.logger.Warn().Str("key", key).Err(err).Msg("Corrupt blob ignored")
		return false, nil
	}
	return true, nil
}

// writeJSON marshals data to indented JSON and writes it atomically.
func (fs *FileStore) writeJSON(key string, data interface{}) error {
	target := fs.filePath(key)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')

	tmpFile, err := os.CreateTemp(fs.basePath, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(jsonData); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// LoadProfile returns the stored profile, or nil when none exists.
func (fs *FileStore) LoadProfile(_ context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	ok, err := fs.readJSON(keyProfile, &profile)
	if err != nil || !ok {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile persists the profile.
func (fs *FileStore) SaveProfile(_ context.Context, profile *models.UserProfile) error {
	return fs.writeJSON(keyProfile, profile)
}

// LoadAssets returns the stored ledger, or nil when none exists.
func (fs *FileStore) LoadAssets(_ context.Context) (*models.UserAssets, error) {
	var assets models.UserAssets
	ok, err := fs.readJSON(keyAssets, &assets)
	if err != nil || !ok {
		return nil, err
	}
	return &assets, nil
}

// SaveAssets persists the ledger.
func (fs *FileStore) SaveAssets(_ context.Context, assets *models.UserAssets) error {
	return fs.writeJSON(keyAssets, assets)
}

// LoadSnapshots returns the stored snapshot history, oldest first.
func (fs *FileStore) LoadSnapshots(_ context.Context) ([]models.AssetSnapshot, error) {
	var snapshots []models.AssetSnapshot
	ok, err := fs.readJSON(keySnapshots, &snapshots)
	if err != nil || !ok {
		return nil, err
	}
	return snapshots, nil
}

// SaveSnapshots persists the snapshot history.
func (fs *FileStore) SaveSnapshots(_ context.Context, snapshots []models.AssetSnapshot) error {
	return fs.writeJSON(keySnapshots, snapshots)
}

// LastUpdated returns the last snapshot time, or the zero time when never set.
func (fs *FileStore) LastUpdated(_ context.Context) (time.Time, error) {
	var t time.Time
	ok, err := fs.readJSON(keyLastUpdated, &t)
	if err != nil || !ok {
		return time.Time{}, err
	}
	return t, nil
}

// SetLastUpdated persists the last snapshot time.
func (fs *FileStore) SetLastUpdated(_ context.Context, t time.Time) error {
	return fs.writeJSON(keyLastUpdated, t)
}

// Clear removes all persisted blobs.
func (fs *FileStore) Clear(_ context.Context) error {
	for _, key := range []string{keyProfile, keyAssets, keySnapshots, keyLastUpdated} {
		if err := os.Remove(fs.filePath(key)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return nil
}

// Close is a no-op for the file store.
func (fs *FileStore) Close() error {
	return nil
}

// Ensure FileStore implements LedgerStore
var _ interfaces.LedgerStore = (*FileStore)(nil)
