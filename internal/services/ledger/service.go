package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kay207/money-life/internal/common"
	"github.com/kay207/money-life/internal/finmath"
	"github.com/kay207/money-life/internal/interfaces"
	"github.com/kay207/money-life/internal/models"
)

// Compile-time interface check
var _ interfaces.LedgerService = (*Service)(nil)

// Service implements LedgerService
type Service struct {
	store  interfaces.LedgerStore
	logger *common.Logger
}

// NewService creates a new ledger service
func NewService(store interfaces.LedgerStore, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// GetProfile retrieves the user profile, or nil when none exists.
func (s *Service) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	profile, err := s.store.LoadProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

// CreateProfile creates the user profile and seeds the demo ledger when no
// assets have been saved yet.
func (s *Service) CreateProfile(ctx context.Context, name string) (*models.UserProfile, error) {
	profile := &models.UserProfile{
		Name:     name,
		JoinedAt: time.Now(),
	}
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	existing, err := s.store.LoadAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	if existing == nil {
		if err := s.store.SaveAssets(ctx, models.DefaultUserAssets()); err != nil {
			return nil, fmt.Errorf("failed to seed assets: %w", err)
		}
		s.logger.Info().Str("name", name).Msg("Profile created with demo ledger")
	} else {
		s.logger.Info().Str("name", name).Msg("Profile created")
	}

	return profile, nil
}

// Reset removes all persisted data.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	s.logger.Info().Msg("Ledger data cleared")
	return nil
}

// GetAssets retrieves the current ledger. Absent or corrupt data yields an
// empty ledger, never an error.
func (s *Service) GetAssets(ctx context.Context) (*models.UserAssets, error) {
	assets, err := s.store.LoadAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	if assets == nil {
		return models.NewUserAssets(), nil
	}
	normalize(assets)
	return assets, nil
}

// SaveAssets persists the full ledger (last-writer-wins).
func (s *Service) SaveAssets(ctx context.Context, assets *models.UserAssets) error {
	normalize(assets)
	if err := s.store.SaveAssets(ctx, assets); err != nil {
		return fmt.Errorf("failed to save assets: %w", err)
	}
	return nil
}

// AddItem appends an item to a category. A missing ID is generated; a
// duplicate ID within the category is rejected.
func (s *Service) AddItem(ctx context.Context, category models.Category, item models.AssetItem) (*models.UserAssets, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category '%s'", category)
	}

	assets, err := s.GetAssets(ctx)
	if err != nil {
		return nil, err
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	for _, existing := range assets.Items(category) {
		if existing.ID == item.ID {
			return nil, fmt.Errorf("item with ID '%s' already exists in category '%s'", item.ID, category)
		}
	}

	assets.SetItems(category, append(assets.Items(category), item))

	if err := s.SaveAssets(ctx, assets); err != nil {
		return nil, err
	}

	s.logger.Info().Str("category", string(category)).Str("item_id", item.ID).Msg("Asset item added")
	return assets, nil
}

// UpdateItemField mutates one field of an item in place.
// Numeric fields take a float64 value, text fields a string.
func (s *Service) UpdateItemField(ctx context.Context, category models.Category, itemID, field string, value any) (*models.UserAssets, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category '%s'", category)
	}

	assets, err := s.GetAssets(ctx)
	if err != nil {
		return nil, err
	}

	items := assets.Items(category)
	found := false
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		if err := setItemField(&items[i], field, value); err != nil {
			return nil, err
		}
		found = true
		break
	}
	if !found {
		return nil, fmt.Errorf("item '%s' not found in category '%s'", itemID, category)
	}

	assets.SetItems(category, items)

	if err := s.SaveAssets(ctx, assets); err != nil {
		return nil, err
	}

	return assets, nil
}

// DeleteItem removes an item from a category.
func (s *Service) DeleteItem(ctx context.Context, category models.Category, itemID string) (*models.UserAssets, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category '%s'", category)
	}

	assets, err := s.GetAssets(ctx)
	if err != nil {
		return nil, err
	}

	items := assets.Items(category)
	kept := make([]models.AssetItem, 0, len(items))
	found := false
	for _, item := range items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, fmt.Errorf("item '%s' not found in category '%s'", itemID, category)
	}

	assets.SetItems(category, kept)

	if err := s.SaveAssets(ctx, assets); err != nil {
		return nil, err
	}

	s.logger.Info().Str("category", string(category)).Str("item_id", itemID).Msg("Asset item deleted")
	return assets, nil
}

// Overview computes net worth, weighted yield, growth projections, and the
// allocation breakdown for the current ledger.
func (s *Service) Overview(ctx context.Context) (*models.NetWorthOverview, error) {
	assets, err := s.GetAssets(ctx)
	if err != nil {
		return nil, err
	}

	netWorth := NetWorth(assets)
	totalAssets := TotalAssets(assets)
	principal := InvestedPrincipal(assets)
	rate := finmath.WeightedAverageReturn(GrowthAssets(assets))

	overview := &models.NetWorthOverview{
		NetWorth:          netWorth,
		TotalAssets:       totalAssets,
		TotalLiabilities:  TotalLiabilities(assets),
		InvestedPrincipal: principal,
		UnrealizedGain:    totalAssets - principal,
		WeightedReturnPct: rate,
		FiveYearProjected: finmath.ProjectNetWorth(netWorth, rate, 5),
		TenYearProjected:  finmath.ProjectNetWorth(netWorth, rate, 10),
		Allocations:       AllocationBreakdown(assets),
	}

	lastUpdated, err := s.store.LastUpdated(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load last updated: %w", err)
	}
	if !lastUpdated.IsZero() {
		overview.LastUpdated = &lastUpdated
	}

	return overview, nil
}

// setItemField applies a field-keyed mutation to an item.
func setItemField(item *models.AssetItem, field string, value any) error {
	switch field {
	case "name", "note":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("field '%s' requires a string value", field)
		}
		if field == "name" {
			item.Name = str
		} else {
			item.Note = str
		}
	case "amount", "interestRate", "principal":
		num, ok := toFloat64(value)
		if !ok {
			return fmt.Errorf("field '%s' requires a numeric value", field)
		}
		switch field {
		case "amount":
			item.Amount = num
		case "interestRate":
			item.InterestRate = num
		case "principal":
			item.Principal = num
		}
	default:
		return fmt.Errorf("unknown item field '%s'", field)
	}
	return nil
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// normalize replaces nil category slices so persisted blobs always carry all
// seven categories.
func normalize(assets *models.UserAssets) {
	for _, c := range models.Categories {
		if assets.Items(c) == nil {
			assets.SetItems(c, []models.AssetItem{})
		}
	}
}
