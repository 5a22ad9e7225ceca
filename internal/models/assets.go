// Package models defines data structures for money-life
package models

import (
	"time"
)

// Category identifies one of the fixed asset categories.
// The set is closed: every UserAssets holds exactly these seven collections.
type Category string

const (
	CategoryIncome      Category = "income"
	CategoryLiquid      Category = "liquid"
	CategoryFinancial   Category = "financial"
	CategoryRealEstate  Category = "realEstate"
	CategoryProtection  Category = "protection"
	CategoryAlternative Category = "alternative"
	CategoryLiabilities Category = "liabilities"
)

// Categories lists all categories in display order.
var Categories = []Category{
	CategoryIncome,
	CategoryLiquid,
	CategoryFinancial,
	CategoryRealEstate,
	CategoryProtection,
	CategoryAlternative,
	CategoryLiabilities,
}

// categoryLabels maps categories to their display names.
var categoryLabels = map[Category]string{
	CategoryIncome:      "收入现金流",
	CategoryLiquid:      "流动资产",
	CategoryFinancial:   "金融投资",
	CategoryRealEstate:  "房产实物",
	CategoryProtection:  "保障社保",
	CategoryAlternative: "另类经营",
	CategoryLiabilities: "负债管理",
}

// Label returns the display name for the category.
func (c Category) Label() string {
	return categoryLabels[c]
}

// Valid reports whether c is one of the seven known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// AssetItem is a single holding or debt.
type AssetItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`                 // current market value
	InterestRate float64 `json:"interestRate,omitempty"` // estimated annual yield, %
	Principal    float64 `json:"principal,omitempty"`    // invested principal
	Note         string  `json:"note,omitempty"`
}

// EffectivePrincipal returns the invested principal, defaulting to the
// current amount when none was recorded.
func (i AssetItem) EffectivePrincipal() float64 {
	if i.Principal != 0 {
		return i.Principal
	}
	return i.Amount
}

// UserAssets holds the full categorized ledger. Liabilities are semantically
// negative (subtracted from total assets); income measures annual cash flow
// and is excluded from asset and net-worth totals.
type UserAssets struct {
	Income      []AssetItem `json:"income"`
	Liquid      []AssetItem `json:"liquid"`
	Financial   []AssetItem `json:"financial"`
	RealEstate  []AssetItem `json:"realEstate"`
	Protection  []AssetItem `json:"protection"`
	Alternative []AssetItem `json:"alternative"`
	Liabilities []AssetItem `json:"liabilities"`
}

// NewUserAssets returns an empty ledger with all categories initialized.
func NewUserAssets() *UserAssets {
	return &UserAssets{
		Income:      []AssetItem{},
		Liquid:      []AssetItem{},
		Financial:   []AssetItem{},
		RealEstate:  []AssetItem{},
		Protection:  []AssetItem{},
		Alternative: []AssetItem{},
		Liabilities: []AssetItem{},
	}
}

// Items returns the item collection for the given category.
// Unknown categories return nil.
func (a *UserAssets) Items(c Category) []AssetItem {
	switch c {
	case CategoryIncome:
		return a.Income
	case CategoryLiquid:
		return a.Liquid
	case CategoryFinancial:
		return a.Financial
	case CategoryRealEstate:
		return a.RealEstate
	case CategoryProtection:
		return a.Protection
	case CategoryAlternative:
		return a.Alternative
	case CategoryLiabilities:
		return a.Liabilities
	}
	return nil
}

// SetItems replaces the item collection for the given category.
func (a *UserAssets) SetItems(c Category, items []AssetItem) {
	switch c {
	case CategoryIncome:
		a.Income = items
	case CategoryLiquid:
		a.Liquid = items
	case CategoryFinancial:
		a.Financial = items
	case CategoryRealEstate:
		a.RealEstate = items
	case CategoryProtection:
		a.Protection = items
	case CategoryAlternative:
		a.Alternative = items
	case CategoryLiabilities:
		a.Liabilities = items
	}
}

// Clone returns a deep copy of the ledger. Snapshots embed the copy so later
// edits to the live ledger cannot mutate history.
func (a *UserAssets) Clone() UserAssets {
	clone := UserAssets{}
	for _, c := range Categories {
		items := a.Items(c)
		copied := make([]AssetItem, len(items))
		copy(copied, items)
		clone.SetItems(c, copied)
	}
	return clone
}

// AssetSnapshot is a persisted point-in-time capture of the ledger and its
// derived totals, keyed by calendar month. Immutable once created; a new
// snapshot in the same month replaces the previous one.
type AssetSnapshot struct {
	ID               string     `json:"id"`
	Timestamp        time.Time  `json:"timestamp"`
	MonthKey         string     `json:"monthKey"` // "YYYY.MM"
	NetWorth         float64    `json:"netWorth"`
	TotalAssets      float64    `json:"totalAssets"`
	TotalLiabilities float64    `json:"totalLiabilities"`
	Data             UserAssets `json:"data"`
}

// FormatMonthKey renders a time as the "YYYY.MM" month key used by snapshots
// and history points.
func FormatMonthKey(t time.Time) string {
	return t.Format("2006.01")
}

// AssetHistoryItem is a single point in the net-worth trend series.
type AssetHistoryItem struct {
	MonthKey string  `json:"monthKey"`
	Value    float64 `json:"value"`
}

// AssetAllocation describes one slice of the asset allocation breakdown.
type AssetAllocation struct {
	Category   Category `json:"category"`
	Label      string   `json:"label"`
	Amount     float64  `json:"amount"`
	Percentage float64  `json:"percentage"` // of total assets, one decimal
}

// NetWorthOverview aggregates the ledger's derived figures for display.
type NetWorthOverview struct {
	NetWorth          float64           `json:"net_worth"`
	TotalAssets       float64           `json:"total_assets"`
	TotalLiabilities  float64           `json:"total_liabilities"`
	InvestedPrincipal float64           `json:"invested_principal"` // cost basis across asset categories
	UnrealizedGain    float64           `json:"unrealized_gain"`    // total assets minus invested principal
	WeightedReturnPct float64           `json:"weighted_return_pct"` // weighted average annual yield over growth assets
	FiveYearProjected float64           `json:"five_year_projected"`
	TenYearProjected  float64           `json:"ten_year_projected"`
	Allocations       []AssetAllocation `json:"allocations"`
	LastUpdated       *time.Time        `json:"last_updated,omitempty"`
}

// UserProfile identifies the (single) owner of the ledger.
type UserProfile struct {
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

// DefaultUserAssets returns the demo ledger seeded when a profile is first
// created and no assets have been saved yet.
func DefaultUserAssets() *UserAssets {
	return &UserAssets{
		Income: []AssetItem{
			{ID: "inc1", Name: "税后工资(年薪)", Amount: 150000},
			{ID: "inc2", Name: "年终奖", Amount: 30000},
		},
		Liquid: []AssetItem{
			{ID: "1", Name: "余额宝", Amount: 35000, InterestRate: 1.8, Principal: 35000},
		},
		Financial: []AssetItem{
			{ID: "3", Name: "沪深300指数", Amount: 18000, InterestRate: 8.0, Principal: 20000},
			{ID: "31", Name: "三年期国债", Amount: 50000, InterestRate: 2.3, Principal: 50000},
		},
		RealEstate: []AssetItem{
			{ID: "4", Name: "自住房(估值)", Amount: 2500000, InterestRate: 1.5, Principal: 2000000},
		},
		Protection:  []AssetItem{},
		Alternative: []AssetItem{},
		Liabilities: []AssetItem{
			{ID: "5", Name: "房贷剩余本金", Amount: 800000, InterestRate: 3.1},
		},
	}
}
