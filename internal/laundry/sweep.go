// Package laundry runs the recurring recovery sweep that returns washed
// items to the wardrobe once their owner's wash duration has elapsed.
package laundry

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
)

// DefaultInterval is how often the sweep runs.
const DefaultInterval = time.Minute

// Sweeper periodically clears the washing flag on items whose wash has run
// its course.
type Sweeper struct {
	DB       *sql.DB
	Interval time.Duration
}

// Run executes the sweep on a fixed interval until ctx is cancelled.
// Intended to be started as a goroutine from main.
func (s *Sweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("laundry sweep stopped")
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce walks every washing item and clears the ones whose elapsed time
// meets their owner's wash duration. Each item is handled independently:
// a failure is logged and the sweep moves on.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	items, err := store.ListWashing(ctx, s.DB)
	if err != nil {
		slog.Error("laundry sweep: listing washing items", "error", err)
		return
	}
	if len(items) == 0 {
		return
	}

	cleared := 0
	for _, item := range items {
		if !item.HasOwner {
			slog.Warn("laundry sweep: skipping item, owner not found",
				"item", item.ItemID, "owner", item.OwnerID)
			continue
		}
		if !item.UpdatedAt.Valid {
			slog.Warn("laundry sweep: skipping item, no state-change timestamp",
				"item", item.ItemID)
			continue
		}

		days := model.DefaultWashDurationDays
		if item.WashDays.Valid {
			days = int(item.WashDays.Int64)
		}

		// The elapsed check is re-evaluated inside the conditional update,
		// so a wash restarted since ListWashing cannot be clobbered.
		done, err := store.FinishWashing(ctx, s.DB, item.ItemID, days)
		if err != nil {
			slog.Error("laundry sweep: checking item", "item", item.ItemID, "error", err)
			continue
		}
		if done {
			cleared++
			slog.Info("laundry sweep: item is clean again", "item", item.ItemID)
		}
	}

	if cleared > 0 {
		slog.Info("laundry sweep finished", "washing", len(items), "cleared", cleared)
	}
}
