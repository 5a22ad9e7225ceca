package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kay207/money-life/internal/clients/gemini"
	"github.com/kay207/money-life/internal/common"
	"github.com/kay207/money-life/internal/interfaces"
	"github.com/kay207/money-life/internal/services/chat"
	"github.com/kay207/money-life/internal/services/history"
	"github.com/kay207/money-life/internal/services/ledger"
	"github.com/kay207/money-life/internal/services/planner"
	"github.com/kay207/money-life/internal/storage"
)

// App holds all initialized services, clients, and storage.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	Store          interfaces.LedgerStore
	AdvisoryClient interfaces.AdvisoryClient
	LedgerService  interfaces.LedgerService
	PlannerService interfaces.PlannerService
	ChatService    interfaces.ChatService
	HistoryService interfaces.HistoryService
	StartupTime    time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	// Load configuration - check provided path, MONEYLIFE_CONFIG, then binary dir
	if configPath == "" {
		configPath = os.Getenv("MONEYLIFE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "money-life.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/money-life.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := storage.NewFileStore(logger, config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Advisory client is optional; without a key the planner and chat
	// services answer from their offline paths.
	var advisor interfaces.AdvisoryClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client initialization failed - running in offline mode")
		} else {
			advisor = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - running in offline mode")
	}

	a := &App{
		Config:         config,
		Logger:         logger,
		Store:          store,
		AdvisoryClient: advisor,
		LedgerService:  ledger.NewService(store, logger),
		PlannerService: planner.NewService(advisor, logger),
		ChatService:    chat.NewService(advisor, logger),
		HistoryService: history.NewService(store, logger),
		StartupTime:    time.Now(),
	}

	logger.Info().
		Str("environment", config.Environment).
		Str("storage_path", config.Storage.Path).
		Bool("advisor_configured", advisor != nil).
		Msg("Application initialized")

	return a, nil
}

// Close releases client and storage resources.
func (a *App) Close() {
	if a.AdvisoryClient != nil {
		if err := a.AdvisoryClient.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Advisory client close failed")
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Storage close failed")
		}
	}
}
