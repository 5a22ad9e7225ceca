package ledger

import (
	"math"
	"testing"

	"github.com/kay207/money-life/internal/models"
)

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func sampleAssets() *models.UserAssets {
	assets := models.NewUserAssets()
	assets.Liquid = []models.AssetItem{
		{ID: "l1", Name: "货币基金", Amount: 30000, InterestRate: 2.0},
	}
	assets.Financial = []models.AssetItem{
		{ID: "f1", Name: "指数基金", Amount: 50000, InterestRate: 8.0},
		{ID: "f2", Name: "国债", Amount: 20000, InterestRate: 2.5},
	}
	assets.Protection = []models.AssetItem{
		{ID: "p1", Name: "年金险", Amount: 40000, InterestRate: 3.0},
	}
	assets.Liabilities = []models.AssetItem{
		{ID: "d1", Name: "房贷", Amount: 60000, InterestRate: 3.1},
	}
	assets.Income = []models.AssetItem{
		{ID: "i1", Name: "工资", Amount: 200000},
	}
	return assets
}

func TestTotals(t *testing.T) {
	assets := sampleAssets()

	if got := TotalAssets(assets); got != 140000 {
		t.Errorf("TotalAssets = %v, want 140000", got)
	}
	if got := TotalLiabilities(assets); got != 60000 {
		t.Errorf("TotalLiabilities = %v, want 60000", got)
	}
	if got := NetWorth(assets); got != 80000 {
		t.Errorf("NetWorth = %v, want 80000", got)
	}
}

func TestTotalsExcludeIncomeAndLiabilities(t *testing.T) {
	assets := models.NewUserAssets()
	assets.Income = []models.AssetItem{{ID: "i1", Amount: 100000}}
	assets.Liabilities = []models.AssetItem{{ID: "d1", Amount: 5000}}

	if got := TotalAssets(assets); got != 0 {
		t.Errorf("TotalAssets = %v, want 0", got)
	}
	if got := NetWorth(assets); got != -5000 {
		t.Errorf("NetWorth = %v, want -5000", got)
	}
}

func TestGrowthAssetsExcludeProtection(t *testing.T) {
	assets := sampleAssets()
	growth := GrowthAssets(assets)

	total := 0.0
	for _, item := range growth {
		if item.ID == "p1" {
			t.Errorf("protection item included in growth set")
		}
		total += item.Amount
	}
	if total != 100000 {
		t.Errorf("growth total = %v, want 100000", total)
	}
}

func TestInvestedPrincipal(t *testing.T) {
	assets := models.NewUserAssets()
	assets.Financial = []models.AssetItem{
		{ID: "f1", Name: "指数基金", Amount: 18000, Principal: 20000},
		{ID: "f2", Name: "国债", Amount: 50000}, // no principal, counts at value
	}
	assets.Liabilities = []models.AssetItem{
		{ID: "d1", Name: "房贷", Amount: 800000, Principal: 900000},
	}

	if got := InvestedPrincipal(assets); got != 70000 {
		t.Errorf("InvestedPrincipal = %v, want 70000 (liabilities excluded)", got)
	}
}

func TestAllocationBreakdown(t *testing.T) {
	assets := sampleAssets()
	allocations := AllocationBreakdown(assets)

	// protection 40000/140000 = 28.571... -> 28.6
	found := map[models.Category]float64{}
	for _, a := range allocations {
		found[a.Category] = a.Percentage
	}
	if !approxEqual(found[models.CategoryProtection], 28.6, 1e-9) {
		t.Errorf("protection pct = %v, want 28.6", found[models.CategoryProtection])
	}
	if !approxEqual(found[models.CategoryFinancial], 50.0, 1e-9) {
		t.Errorf("financial pct = %v, want 50.0", found[models.CategoryFinancial])
	}
	if _, ok := found[models.CategoryRealEstate]; ok {
		t.Errorf("empty category should be omitted from allocations")
	}
	if _, ok := found[models.CategoryLiabilities]; ok {
		t.Errorf("liabilities should never appear in allocations")
	}
}

func TestAllocationBreakdownEmptyLedger(t *testing.T) {
	allocations := AllocationBreakdown(models.NewUserAssets())
	if allocations == nil {
		t.Fatal("allocations should be an empty slice, not nil")
	}
	if len(allocations) != 0 {
		t.Errorf("allocations = %v, want empty", allocations)
	}
}
