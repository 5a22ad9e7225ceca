package planner

import (
	"fmt"
	"math"

	"github.com/kay207/money-life/internal/models"
)

// OfflineAnalysis produces a rule-based report for an evaluated goal. The
// verdict depends only on achievability and the completion percentage.
func OfflineAnalysis(goal *models.GoalContext) *models.GoalAnalysisResult {
	gap := math.Abs(goal.ProjectedAmount - goal.RequiredAmount)
	gapInWan := fmt.Sprintf("%.1f", gap/10000)
	percent := completionPercent(goal)

	if goal.IsAchievable {
		return &models.GoalAnalysisResult{
			Evaluation: "方案可行",
			Summary:    fmt.Sprintf("恭喜！基于当前的规划，预计达成率为 %d%%。复利效应正在为您工作，您的储蓄和收益足以覆盖未来的目标。", percent),
			Suggestions: []string{
				"保持当前的储蓄习惯，不要轻易中断。",
				"定期（每年）复盘一次资产状况。",
				"如果市场表现好于预期，多出的资金可用于建立风险备用金。",
			},
			RiskWarning: "达成率基于假设的固定收益率，需警惕市场波动导致实际收益不及预期的风险。",
		}
	}

	if percent < 50 {
		return &models.GoalAnalysisResult{
			Evaluation: "难度极大",
			Summary:    fmt.Sprintf("目前的资金缺口较大（约 ¥%s万），仅靠当前的投入很难达成目标，需要进行大刀阔斧的调整。", gapInWan),
			Suggestions: []string{
				"大幅增加每月储蓄额（建议开源节流）。",
				"考虑降低目标金额，或推迟实现目标的时间。",
				"学习理财知识，在风险可控的前提下寻求更高收益的资产。",
			},
			RiskWarning: "为了追求弥补缺口而盲目追求高收益产品，可能会导致本金亏损，请务必注意风险匹配。",
		}
	}

	delay := "几年"
	if goal.Type == models.GoalTypePurchase {
		delay = "1-2年"
	}
	return &models.GoalAnalysisResult{
		Evaluation: "需调整",
		Summary:    fmt.Sprintf("非常接近了！预计达成率 %d%%，还差 ¥%s万。只需稍作调整即可达标。", percent, gapInWan),
		Suggestions: []string{
			"尝试将每月储蓄额增加 10% - 20%。",
			fmt.Sprintf("如果可能，将目标实现时间推迟 %s。", delay),
			"检查是否有闲置资产可以投入以增加初始本金。",
		},
		RiskWarning: "为了追求弥补缺口而盲目追求高收益产品，可能会导致本金亏损，请务必注意风险匹配。",
	}
}

// completionPercent is projected/required as a whole percentage, capped at 100.
func completionPercent(goal *models.GoalContext) int {
	if goal.RequiredAmount <= 0 {
		return 100
	}
	pct := goal.ProjectedAmount / goal.RequiredAmount * 100
	if pct > 100 {
		pct = 100
	}
	return int(math.Round(pct))
}
