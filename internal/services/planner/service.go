package planner

import (
	"context"
	"fmt"

	"github.com/kay207/money-life/internal/common"
	"github.com/kay207/money-life/internal/finmath"
	"github.com/kay207/money-life/internal/interfaces"
	"github.com/kay207/money-life/internal/models"
)

// Under the 4% rule, required capital is annual expense divided by this
// withdrawal rate. Retirement projections run over a fixed 20-year horizon.
const (
	safeWithdrawalRate     = 0.04
	retirementHorizonYears = 20
)

// Compile-time interface check
var _ interfaces.PlannerService = (*Service)(nil)

// Service implements PlannerService
type Service struct {
	advisor interfaces.AdvisoryClient
	logger  *common.Logger
}

// NewService creates a new planner service. advisor may be nil, in which case
// Analyze always uses the rule engine.
func NewService(advisor interfaces.AdvisoryClient, logger *common.Logger) *Service {
	return &Service{
		advisor: advisor,
		logger:  logger,
	}
}

// Evaluate fills in the derived fields of a goal context: projected amount,
// required amount, signed gap, and achievability.
func (s *Service) Evaluate(goal *models.GoalContext) error {
	switch goal.Type {
	case models.GoalTypePurchase:
		if goal.YearsToGoal <= 0 {
			return fmt.Errorf("purchase goal requires a positive yearsToGoal, got %d", goal.YearsToGoal)
		}
		months := goal.YearsToGoal * 12
		goal.ProjectedAmount = finmath.CompoundForward(goal.CurrentPrincipal, goal.MonthlySavings, goal.ExpectedReturnRate, months)
		goal.RequiredAmount = goal.TargetAmount
	case models.GoalTypeRetirement:
		goal.RequiredAmount = goal.TargetMonthlyExpense * 12 / safeWithdrawalRate
		goal.ProjectedAmount = finmath.CompoundForward(goal.CurrentPrincipal, goal.MonthlySavings, goal.ExpectedReturnRate, retirementHorizonYears*12)
	default:
		return fmt.Errorf("unknown goal type '%s'", goal.Type)
	}

	goal.Gap = goal.ProjectedAmount - goal.RequiredAmount
	goal.IsAchievable = goal.ProjectedAmount >= goal.RequiredAmount
	return nil
}

// Analyze evaluates the goal and produces an advisory report. When no
// advisory client is configured, or the client fails, the rule engine
// answers instead.
func (s *Service) Analyze(ctx context.Context, goal *models.GoalContext) (*models.GoalAnalysisResult, error) {
	if err := s.Evaluate(goal); err != nil {
		return nil, err
	}

	if s.advisor == nil {
		return OfflineAnalysis(goal), nil
	}

	result, err := s.advisor.AnalyzeGoal(ctx, goal)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Advisory analysis failed, falling back to rule engine")
		return OfflineAnalysis(goal), nil
	}
	return result, nil
}
