// Package interfaces defines service contracts for money-life
package interfaces

import (
	"context"
	"time"

	"github.com/kay207/money-life/internal/models"
)

// LedgerStore persists the user profile, the current asset ledger, and the
// monthly snapshot history as whole JSON blobs. Absent data is reported as a
// nil value (or zero time), never as an error; callers substitute an empty
// ledger. Writes are last-writer-wins with no cross-key transaction.
type LedgerStore interface {
	// Profile
	LoadProfile(ctx context.Context) (*models.UserProfile, error) // nil when absent
	SaveProfile(ctx context.Context, profile *models.UserProfile) error

	// Current assets
	LoadAssets(ctx context.Context) (*models.UserAssets, error) // nil when absent
	SaveAssets(ctx context.Context, assets *models.UserAssets) error

	// Snapshot history, kept sorted ascending by timestamp
	LoadSnapshots(ctx context.Context) ([]models.AssetSnapshot, error)
	SaveSnapshots(ctx context.Context, snapshots []models.AssetSnapshot) error

	// Last time a snapshot was recorded; zero time when never
	LastUpdated(ctx context.Context) (time.Time, error)
	SetLastUpdated(ctx context.Context, t time.Time) error

	// Clear removes all persisted data (profile reset).
	Clear(ctx context.Context) error

	Close() error
}
