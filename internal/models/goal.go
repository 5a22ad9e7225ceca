package models

import "time"

// GoalType distinguishes the two supported planning goals.
type GoalType string

const (
	GoalTypePurchase   GoalType = "PURCHASE"   // saving toward a fixed amount (house, car)
	GoalTypeRetirement GoalType = "RETIREMENT" // saving toward passive income (FIRE)
)

// Valid reports whether t is a known goal type.
func (t GoalType) Valid() bool {
	return t == GoalTypePurchase || t == GoalTypeRetirement
}

// GoalContext carries the inputs and computed outputs of a goal evaluation.
type GoalContext struct {
	Type GoalType `json:"type"`

	// Shared inputs
	CurrentPrincipal   float64 `json:"currentPrincipal"`
	MonthlySavings     float64 `json:"monthlySavings"`
	ExpectedReturnRate float64 `json:"expectedReturnRate"` // annual %

	// Purchase goal
	TargetAmount float64 `json:"targetAmount,omitempty"`
	YearsToGoal  int     `json:"yearsToGoal,omitempty"`

	// Retirement goal
	TargetMonthlyExpense float64 `json:"targetMonthlyExpense,omitempty"`

	// Computed outputs
	ProjectedAmount float64 `json:"projectedAmount"`
	RequiredAmount  float64 `json:"requiredAmount"`
	Gap             float64 `json:"gap"`
	IsAchievable    bool    `json:"isAchievable"`
}

// GoalAnalysisResult is the narrative assessment of an evaluated goal,
// produced by the advisory collaborator or the offline rule engine.
type GoalAnalysisResult struct {
	Evaluation  string   `json:"evaluation"` // short verdict label
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
	RiskWarning string   `json:"riskWarning"`
}

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one entry in an advisor conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
