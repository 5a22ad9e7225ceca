// Package ledger provides the categorized asset ledger and its derived totals
package ledger

import (
	"math"

	"github.com/kay207/money-life/internal/models"
)

// assetCategories are the categories counted as assets, in display order.
// Liabilities are subtracted separately; income is annual cash flow, not a
// stock, and belongs to neither side.
var assetCategories = []models.Category{
	models.CategoryLiquid,
	models.CategoryFinancial,
	models.CategoryRealEstate,
	models.CategoryProtection,
	models.CategoryAlternative,
}

// growthCategories are the asset categories assumed to compound; protection
// is excluded from yield weighting.
var growthCategories = []models.Category{
	models.CategoryLiquid,
	models.CategoryFinancial,
	models.CategoryRealEstate,
	models.CategoryAlternative,
}

// CategoryTotal sums the current value of a category's items.
func CategoryTotal(items []models.AssetItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount
	}
	return total
}

// TotalAssets sums all asset categories (liabilities and income excluded).
func TotalAssets(assets *models.UserAssets) float64 {
	var total float64
	for _, c := range assetCategories {
		total += CategoryTotal(assets.Items(c))
	}
	return total
}

// TotalLiabilities sums the liabilities category.
func TotalLiabilities(assets *models.UserAssets) float64 {
	return CategoryTotal(assets.Liabilities)
}

// NetWorth is total assets minus total liabilities. May be negative.
func NetWorth(assets *models.UserAssets) float64 {
	return TotalAssets(assets) - TotalLiabilities(assets)
}

// InvestedPrincipal sums the cost basis of all asset categories. Items
// without a recorded principal count at their current value.
func InvestedPrincipal(assets *models.UserAssets) float64 {
	var total float64
	for _, c := range assetCategories {
		for _, item := range assets.Items(c) {
			total += item.EffectivePrincipal()
		}
	}
	return total
}

// GrowthAssets flattens the compounding categories into one item list for
// yield weighting.
func GrowthAssets(assets *models.UserAssets) []models.AssetItem {
	var items []models.AssetItem
	for _, c := range growthCategories {
		items = append(items, assets.Items(c)...)
	}
	return items
}

// AllocationBreakdown returns the per-category share of total assets,
// rounded to one decimal. Zero-amount categories are omitted; a zero total
// yields an empty list.
func AllocationBreakdown(assets *models.UserAssets) []models.AssetAllocation {
	totalAssets := TotalAssets(assets)
	if totalAssets == 0 {
		return []models.AssetAllocation{}
	}

	breakdown := make([]models.AssetAllocation, 0, len(assetCategories))
	for _, c := range assetCategories {
		amount := CategoryTotal(assets.Items(c))
		pct := math.Round(amount/totalAssets*1000) / 10
		if pct <= 0 {
			continue
		}
		breakdown = append(breakdown, models.AssetAllocation{
			Category:   c,
			Label:      c.Label(),
			Amount:     amount,
			Percentage: pct,
		})
	}
	return breakdown
}
