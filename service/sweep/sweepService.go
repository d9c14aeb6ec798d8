// Package sweep advances every time-derived status in one periodic pass:
// Ongoing rentals whose return date has passed become Completed, and
// maintenance statuses are re-derived from today's date. The pass is
// idempotent and never re-checks cross-entity overlap; overlap is only
// judged at creation, approval and scheduling time.
package sweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/umer212dot/Vehicle-Rental-System/model"
)

type RentalSweeper interface {
	SweepComplete(ctx context.Context, now time.Time) ([]model.Rental, error)
}

type MaintenanceSweeper interface {
	SweepDerive(ctx context.Context, now time.Time) (int, error)
}

type Sweep struct {
	rentals  RentalSweeper
	maint    MaintenanceSweeper
	log      *slog.Logger
	interval time.Duration
	now      func() time.Time
}

func New(r RentalSweeper, m MaintenanceSweeper, log *slog.Logger, interval time.Duration) *Sweep {
	return &Sweep{rentals: r, maint: m, log: log, interval: interval, now: time.Now}
}

// WithClock pins the sweep's clock, for tests.
func (s *Sweep) WithClock(now func() time.Time) *Sweep {
	s.now = now
	return s
}

// Start runs one pass immediately, then one per interval until ctx is
// cancelled.
func (s *Sweep) Start(ctx context.Context) {
	go func() {
		s.Run(ctx)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Run(ctx)
			}
		}
	}()
}

// Run executes both sub-sweeps once. A failure in one is logged and does
// not stop the other.
func (s *Sweep) Run(ctx context.Context) {
	now := s.now()

	completed, err := s.rentals.SweepComplete(ctx, now)
	if err != nil {
		s.log.Error("rental sweep failed", "err", err)
	} else if len(completed) > 0 {
		s.log.Info("rental sweep", "completed", len(completed))
	}

	changed, err := s.maint.SweepDerive(ctx, now)
	if err != nil {
		s.log.Error("maintenance sweep failed", "err", err)
	} else if changed > 0 {
		s.log.Info("maintenance sweep", "updated", changed)
	}
}
