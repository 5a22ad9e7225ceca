package history

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kay207/money-life/internal/common"
	"github.com/kay207/money-life/internal/interfaces"
	"github.com/kay207/money-life/internal/models"
	"github.com/kay207/money-life/internal/services/ledger"
)

// historyPoints is the fixed length of the synthesized series: the current
// month plus six past months.
const historyPoints = 7

// monthlyGrowthFactor drives simulated values for months with no snapshot.
const monthlyGrowthFactor = 1.008

// Compile-time interface check
var _ interfaces.HistoryService = (*Service)(nil)

// Service implements HistoryService
type Service struct {
	store  interfaces.LedgerStore
	logger *common.Logger
}

// NewService creates a new history service
func NewService(store interfaces.LedgerStore, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// NewSnapshot captures a ledger into an immutable monthly snapshot.
func NewSnapshot(assets *models.UserAssets, now time.Time) models.AssetSnapshot {
	return models.AssetSnapshot{
		ID:               uuid.NewString(),
		Timestamp:        now,
		MonthKey:         models.FormatMonthKey(now),
		NetWorth:         ledger.NetWorth(assets),
		TotalAssets:      ledger.TotalAssets(assets),
		TotalLiabilities: ledger.TotalLiabilities(assets),
		Data:             assets.Clone(),
	}
}

// CreateSnapshot snapshots the current ledger. A snapshot taken in the same
// calendar month replaces the earlier one.
func (s *Service) CreateSnapshot(ctx context.Context, now time.Time) (*models.AssetSnapshot, error) {
	assets, err := s.store.LoadAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	if assets == nil {
		assets = models.NewUserAssets()
	}

	snapshot := NewSnapshot(assets, now)

	snapshots, err := s.store.LoadSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}

	kept := make([]models.AssetSnapshot, 0, len(snapshots)+1)
	for _, existing := range snapshots {
		if existing.MonthKey != snapshot.MonthKey {
			kept = append(kept, existing)
		}
	}
	kept = append(kept, snapshot)
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Timestamp.Before(kept[j].Timestamp)
	})

	if err := s.store.SaveSnapshots(ctx, kept); err != nil {
		return nil, fmt.Errorf("failed to save snapshots: %w", err)
	}
	if err := s.store.SetLastUpdated(ctx, now); err != nil {
		return nil, fmt.Errorf("failed to record update time: %w", err)
	}

	s.logger.Info().Str("month", snapshot.MonthKey).Float64("net_worth", snapshot.NetWorth).Msg("Snapshot created")
	return &snapshot, nil
}

// History returns the seven-point net-worth series ending at the current
// month, mixing real snapshot values with simulated backfill.
func (s *Service) History(ctx context.Context, now time.Time) ([]models.AssetHistoryItem, error) {
	snapshots, err := s.store.LoadSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}

	anchor := 0.0
	if len(snapshots) > 0 {
		anchor = snapshots[len(snapshots)-1].NetWorth
	} else {
		assets, err := s.store.LoadAssets(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load assets: %w", err)
		}
		if assets == nil {
			assets = models.NewUserAssets()
		}
		anchor = ledger.NetWorth(assets)
	}

	return BuildHistory(snapshots, anchor, now), nil
}

// LastUpdated reports when a snapshot was last taken; zero when never.
func (s *Service) LastUpdated(ctx context.Context) (time.Time, error) {
	t, err := s.store.LastUpdated(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load last updated: %w", err)
	}
	return t, nil
}

// BuildHistory synthesizes the series from real snapshots and an anchor net
// worth. Months with a snapshot use its value; the rest are simulated by
// discounting the anchor at a fixed monthly growth rate, indexed from the
// oldest point.
func BuildHistory(snapshots []models.AssetSnapshot, anchor float64, now time.Time) []models.AssetHistoryItem {
	real := make(map[string]float64, len(snapshots))
	for _, snap := range snapshots {
		real[snap.MonthKey] = snap.NetWorth
	}

	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	items := make([]models.AssetHistoryItem, 0, historyPoints)
	for monthsBack := historyPoints - 1; monthsBack >= 0; monthsBack-- {
		month := base.AddDate(0, -monthsBack, 0)
		key := models.FormatMonthKey(month)

		if value, ok := real[key]; ok {
			items = append(items, models.AssetHistoryItem{MonthKey: key, Value: value})
			continue
		}

		offset := historyPoints - 1 - monthsBack
		simulated := math.Floor(anchor / math.Pow(monthlyGrowthFactor, float64(offset)))
		items = append(items, models.AssetHistoryItem{MonthKey: key, Value: simulated})
	}
	return items
}
