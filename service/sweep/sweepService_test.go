package sweep_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/umer212dot/Vehicle-Rental-System/model"
	"github.com/umer212dot/Vehicle-Rental-System/service/sweep"
)

type stubRentals struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (s *stubRentals) SweepComplete(ctx context.Context, now time.Time) ([]model.Rental, error) {
	s.mu.Lock()
	s.calls = append(s.calls, now)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return []model.Rental{{ID: 1}}, nil
}

func (s *stubRentals) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type stubMaint struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (s *stubMaint) SweepDerive(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	s.calls = append(s.calls, now)
	s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return 2, nil
}

func (s *stubMaint) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_PassesPinnedClockToBothSweeps(t *testing.T) {
	r := &stubRentals{}
	m := &stubMaint{}
	now := time.Date(2026, 5, 10, 3, 0, 0, 0, time.Local)

	s := sweep.New(r, m, discard(), time.Hour).WithClock(func() time.Time { return now })
	s.Run(context.Background())

	require.Equal(t, []time.Time{now}, r.calls)
	require.Equal(t, []time.Time{now}, m.calls)
}

func TestRun_RentalFailureDoesNotStopMaintenance(t *testing.T) {
	r := &stubRentals{err: errors.New("db down")}
	m := &stubMaint{}

	sweep.New(r, m, discard(), time.Hour).Run(context.Background())

	require.Equal(t, 1, r.count())
	require.Equal(t, 1, m.count(), "maintenance sweep still runs")
}

func TestRun_MaintenanceFailureDoesNotStopRentals(t *testing.T) {
	r := &stubRentals{}
	m := &stubMaint{err: errors.New("db down")}

	sweep.New(r, m, discard(), time.Hour).Run(context.Background())

	require.Equal(t, 1, r.count())
	require.Equal(t, 1, m.count())
}

func TestStart_RunsImmediatelyAndStopsOnCancel(t *testing.T) {
	r := &stubRentals{}
	m := &stubMaint{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweep.New(r, m, discard(), time.Hour).Start(ctx)

	require.Eventually(t, func() bool { return r.count() == 1 }, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return m.count() == 1 }, time.Second, 10*time.Millisecond)
}
