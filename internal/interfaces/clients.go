package interfaces

import (
	"context"

	"github.com/kay207/money-life/internal/models"
)

// AdvisoryClient is the network-backed advisory collaborator. Implementations
// must signal failure through the returned error so callers can fall back to
// the offline rule engine; they never terminate the process.
type AdvisoryClient interface {
	// AnalyzeGoal requests a narrative assessment of an evaluated goal.
	AnalyzeGoal(ctx context.Context, goal *models.GoalContext) (*models.GoalAnalysisResult, error)

	// StreamChat sends a new user message with the prior conversation and
	// returns a channel of reply fragments. The channel is closed on
	// completion; a mid-stream failure closes it after a final error notice
	// fragment.
	StreamChat(ctx context.Context, history []models.ChatMessage, message string) (<-chan string, error)

	Close() error
}
