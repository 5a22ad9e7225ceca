package interfaces

import (
	"context"
	"time"

	"github.com/kay207/money-life/internal/models"
)

// LedgerService manages the current asset ledger and its derived figures.
type LedgerService interface {
	// Profile lifecycle
	GetProfile(ctx context.Context) (*models.UserProfile, error) // nil when no profile exists
	CreateProfile(ctx context.Context, name string) (*models.UserProfile, error)
	Reset(ctx context.Context) error

	// Ledger access. GetAssets never fails on absent or corrupt data; it
	// returns an empty ledger instead.
	GetAssets(ctx context.Context) (*models.UserAssets, error)
	SaveAssets(ctx context.Context, assets *models.UserAssets) error

	// Item mutation. All three preserve category membership and unique IDs.
	AddItem(ctx context.Context, category models.Category, item models.AssetItem) (*models.UserAssets, error)
	UpdateItemField(ctx context.Context, category models.Category, itemID, field string, value any) (*models.UserAssets, error)
	DeleteItem(ctx context.Context, category models.Category, itemID string) (*models.UserAssets, error)

	// Overview computes net worth, allocation and growth projections.
	Overview(ctx context.Context) (*models.NetWorthOverview, error)
}

// PlannerService evaluates savings goals and produces narrative analysis.
type PlannerService interface {
	// Evaluate fills the computed fields of the goal context in place.
	Evaluate(goal *models.GoalContext) error

	// Analyze returns a narrative assessment. It delegates to the advisory
	// collaborator when one is configured and falls back to the offline rule
	// engine on absence or failure; it never fails once the goal is valid.
	Analyze(ctx context.Context, goal *models.GoalContext) (*models.GoalAnalysisResult, error)
}

// ChatService streams advisor conversation replies.
type ChatService interface {
	// Stream produces reply fragments for the new message given the prior
	// conversation. The channel is closed when the reply is complete. Without
	// a configured collaborator the stream is a single offline notice.
	Stream(ctx context.Context, history []models.ChatMessage, message string) (<-chan string, error)
}

// HistoryService maintains monthly net-worth snapshots and the trend series.
type HistoryService interface {
	// CreateSnapshot captures the current ledger for now's month, replacing
	// any snapshot already recorded for that month.
	CreateSnapshot(ctx context.Context, now time.Time) (*models.AssetSnapshot, error)

	// History returns exactly 7 points covering now's month and the
	// preceding 6, backfilling months without a snapshot.
	History(ctx context.Context, now time.Time) ([]models.AssetHistoryItem, error)

	// LastUpdated reports when a snapshot was last recorded (zero when never).
	LastUpdated(ctx context.Context) (time.Time, error)
}
