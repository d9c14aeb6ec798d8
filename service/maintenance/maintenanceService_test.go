package maintsvc_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/umer212dot/Vehicle-Rental-System/apperr"
	"github.com/umer212dot/Vehicle-Rental-System/model"
	maintsvc "github.com/umer212dot/Vehicle-Rental-System/service/maintenance"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

type fakeRepo struct {
	records map[int64]*model.MaintenanceRecord
	rentals []model.Rental
	nextID  int64

	// failStatusFor makes UpdateStatus fail for one record id.
	failStatusFor int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[int64]*model.MaintenanceRecord{}}
}

func (f *fakeRepo) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error { return fn(nil) }

func (f *fakeRepo) Insert(ctx context.Context, tx *sql.Tx, m *model.MaintenanceRecord) error {
	f.nextID++
	m.ID = f.nextID
	cp := *m
	f.records[m.ID] = &cp
	return nil
}

func (f *fakeRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.MaintenanceRecord, error) {
	m, ok := f.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, st model.MaintenanceStatus) error {
	if id == f.failStatusFor {
		return errors.New("store unavailable")
	}
	f.records[id].Status = st
	return nil
}

func (f *fakeRepo) ListRentalsByVehicle(ctx context.Context, tx *sql.Tx, vehicleID int64) ([]model.Rental, error) {
	var out []model.Rental
	for _, r := range f.rentals {
		if r.VehicleID == vehicleID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByVehicle(ctx context.Context, vehicleID int64) ([]model.MaintenanceRecord, error) {
	var out []model.MaintenanceRecord
	for _, m := range f.records {
		if m.VehicleID == vehicleID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListNonCancelled(ctx context.Context) ([]model.MaintenanceRecord, error) {
	var out []model.MaintenanceRecord
	for _, m := range f.records {
		if m.Status != model.MaintenanceCancelled {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(ctx context.Context, status model.MaintenanceStatus) ([]model.MaintenanceRecord, error) {
	var out []model.MaintenanceRecord
	for _, m := range f.records {
		if status != "" && m.Status != status {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func newService(f *fakeRepo, now time.Time) maintsvc.Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return maintsvc.NewWithClock(f, log, func() time.Time { return now })
}

func TestDerive_DateBoundaries(t *testing.T) {
	rec := model.MaintenanceRecord{MaintenanceDate: day(2026, 4, 27), Status: model.MaintenanceScheduled}

	st, changed := maintsvc.Derive(rec, day(2026, 4, 26))
	require.Equal(t, model.MaintenanceScheduled, st)
	require.False(t, changed)

	st, changed = maintsvc.Derive(rec, day(2026, 4, 27))
	require.Equal(t, model.MaintenanceOngoing, st)
	require.True(t, changed)

	st, changed = maintsvc.Derive(rec, day(2026, 4, 28))
	require.Equal(t, model.MaintenanceCompleted, st)
	require.True(t, changed)
}

func TestDerive_Idempotent(t *testing.T) {
	rec := model.MaintenanceRecord{MaintenanceDate: day(2026, 4, 27), Status: model.MaintenanceScheduled}
	now := day(2026, 4, 28)

	st, _ := maintsvc.Derive(rec, now)
	rec.Status = st
	again, changed := maintsvc.Derive(rec, now)
	require.Equal(t, st, again)
	require.False(t, changed)
}

func TestDerive_CancelledIsSticky(t *testing.T) {
	rec := model.MaintenanceRecord{MaintenanceDate: day(2026, 4, 27), Status: model.MaintenanceCancelled}
	st, changed := maintsvc.Derive(rec, day(2026, 4, 28))
	require.Equal(t, model.MaintenanceCancelled, st)
	require.False(t, changed)
}

func TestDerive_TruncatesTimeOfDay(t *testing.T) {
	rec := model.MaintenanceRecord{
		MaintenanceDate: day(2026, 4, 27),
		Status:          model.MaintenanceScheduled,
	}
	lateEvening := time.Date(2026, 4, 27, 23, 59, 0, 0, time.Local)
	st, _ := maintsvc.Derive(rec, lateEvening)
	require.Equal(t, model.MaintenanceOngoing, st, "same calendar day means in progress, whatever the hour")

	// The stored date scans back as a UTC midnight; a westward clock on
	// the same calendar day must still read as in progress.
	west := time.FixedZone("UTC-5", -5*60*60)
	rec.MaintenanceDate = time.Date(2026, 4, 27, 0, 0, 0, 0, time.UTC)
	st, _ = maintsvc.Derive(rec, time.Date(2026, 4, 27, 6, 0, 0, 0, west))
	require.Equal(t, model.MaintenanceOngoing, st, "zone of the clock must not shift the day")
}

func TestSchedule_Validation(t *testing.T) {
	s := newService(newFakeRepo(), day(2026, 5, 1))
	ctx := context.Background()

	_, err := s.Schedule(ctx, maintsvc.ScheduleInput{VehicleID: 1, Date: day(2026, 5, 20)})
	require.Equal(t, apperr.CodeValidation, apperr.GetCode(err), "empty description must be refused")

	_, err = s.Schedule(ctx, maintsvc.ScheduleInput{Date: day(2026, 5, 20), Description: "oil change"})
	require.Equal(t, apperr.CodeValidation, apperr.GetCode(err), "missing vehicle must be refused")
}

func TestSchedule_RefusedInsideActiveRental(t *testing.T) {
	f := newFakeRepo()
	f.rentals = []model.Rental{
		{ID: 11, VehicleID: 3, Status: model.RentalOngoing,
			RentalDate: day(2026, 5, 18), ReturnDate: day(2026, 5, 22)},
	}
	s := newService(f, day(2026, 5, 1))

	_, err := s.Schedule(context.Background(), maintsvc.ScheduleInput{
		VehicleID: 3, Date: day(2026, 5, 20), Description: "brake pads",
	})
	require.Equal(t, apperr.CodeConflict, apperr.GetCode(err))

	rentals, ok := apperr.ConflictsOf(err).([]model.Rental)
	require.True(t, ok)
	require.Len(t, rentals, 1)
	require.Equal(t, int64(11), rentals[0].ID)
}

func TestSchedule_ReleasedRentalsDoNotBlock(t *testing.T) {
	f := newFakeRepo()
	f.rentals = []model.Rental{
		{ID: 11, VehicleID: 3, Status: model.RentalCompleted,
			RentalDate: day(2026, 5, 18), ReturnDate: day(2026, 5, 22)},
		{ID: 12, VehicleID: 3, Status: model.RentalCancelled,
			RentalDate: day(2026, 5, 18), ReturnDate: day(2026, 5, 22)},
	}
	s := newService(f, day(2026, 5, 1))

	rec, err := s.Schedule(context.Background(), maintsvc.ScheduleInput{
		VehicleID: 3, Date: day(2026, 5, 20), Description: "inspection",
		Cost: decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	require.Equal(t, model.MaintenanceScheduled, rec.Status)
}

func TestSchedule_InitialStatusFollowsDeriver(t *testing.T) {
	now := day(2026, 5, 10)
	cases := []struct {
		date time.Time
		want model.MaintenanceStatus
	}{
		{day(2026, 5, 11), model.MaintenanceScheduled},
		{day(2026, 5, 10), model.MaintenanceOngoing},
		{day(2026, 5, 9), model.MaintenanceCompleted},
	}
	for _, tc := range cases {
		s := newService(newFakeRepo(), now)
		rec, err := s.Schedule(context.Background(), maintsvc.ScheduleInput{
			VehicleID: 1, Date: tc.date, Description: "service",
		})
		require.NoError(t, err)
		require.Equal(t, tc.want, rec.Status, "date %v", tc.date)
	}
}

func TestCancel_RefusedWhileOngoing(t *testing.T) {
	f := newFakeRepo()
	// Stored status is stale Scheduled, but today is the maintenance day,
	// so the derived status is Ongoing.
	f.records[1] = &model.MaintenanceRecord{
		ID: 1, VehicleID: 3, MaintenanceDate: day(2026, 5, 10), Status: model.MaintenanceScheduled,
	}
	s := newService(f, day(2026, 5, 10))

	_, err := s.Cancel(context.Background(), 1)
	require.Equal(t, apperr.CodeIllegalTransition, apperr.GetCode(err))
	require.Equal(t, model.MaintenanceScheduled, f.records[1].Status, "refusal must not write")
}

func TestCancel(t *testing.T) {
	f := newFakeRepo()
	f.records[1] = &model.MaintenanceRecord{
		ID: 1, VehicleID: 3, MaintenanceDate: day(2026, 5, 20), Status: model.MaintenanceScheduled,
	}
	s := newService(f, day(2026, 5, 10))

	rec, err := s.Cancel(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, model.MaintenanceCancelled, rec.Status)
	require.Equal(t, model.MaintenanceCancelled, f.records[1].Status)

	_, err = s.Cancel(context.Background(), 9)
	require.Equal(t, apperr.CodeNotFound, apperr.GetCode(err))
}

func TestSweepDerive_PersistsOnlyChanged(t *testing.T) {
	f := newFakeRepo()
	f.records[1] = &model.MaintenanceRecord{ID: 1, VehicleID: 1, MaintenanceDate: day(2026, 5, 9), Status: model.MaintenanceScheduled}
	f.records[2] = &model.MaintenanceRecord{ID: 2, VehicleID: 1, MaintenanceDate: day(2026, 5, 11), Status: model.MaintenanceScheduled}
	f.records[3] = &model.MaintenanceRecord{ID: 3, VehicleID: 2, MaintenanceDate: day(2026, 5, 9), Status: model.MaintenanceCancelled}
	s := newService(f, day(2026, 5, 10))

	changed, err := s.SweepDerive(context.Background(), day(2026, 5, 10))
	require.NoError(t, err)
	require.Equal(t, 1, changed)
	require.Equal(t, model.MaintenanceCompleted, f.records[1].Status)
	require.Equal(t, model.MaintenanceScheduled, f.records[2].Status)
	require.Equal(t, model.MaintenanceCancelled, f.records[3].Status)

	// Re-running with the same now is a no-op.
	changed, err = s.SweepDerive(context.Background(), day(2026, 5, 10))
	require.NoError(t, err)
	require.Zero(t, changed)
}

func TestSweepDerive_ContinuesPastRecordFailure(t *testing.T) {
	f := newFakeRepo()
	f.records[1] = &model.MaintenanceRecord{ID: 1, VehicleID: 1, MaintenanceDate: day(2026, 5, 8), Status: model.MaintenanceScheduled}
	f.records[2] = &model.MaintenanceRecord{ID: 2, VehicleID: 1, MaintenanceDate: day(2026, 5, 9), Status: model.MaintenanceScheduled}
	f.failStatusFor = 1
	s := newService(f, day(2026, 5, 10))

	changed, err := s.SweepDerive(context.Background(), day(2026, 5, 10))
	require.NoError(t, err)
	require.Equal(t, 1, changed, "the failing record is skipped, not fatal")
	require.Equal(t, model.MaintenanceCompleted, f.records[2].Status)
}

func TestListAll_StatusFilter(t *testing.T) {
	f := newFakeRepo()
	f.records[1] = &model.MaintenanceRecord{ID: 1, VehicleID: 1, MaintenanceDate: day(2026, 5, 20), Status: model.MaintenanceScheduled}
	f.records[2] = &model.MaintenanceRecord{ID: 2, VehicleID: 2, MaintenanceDate: day(2026, 5, 21), Status: model.MaintenanceCancelled}
	s := newService(f, day(2026, 5, 1))
	ctx := context.Background()

	all, err := s.ListAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	cancelled, err := s.ListAll(ctx, model.MaintenanceCancelled)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	require.Equal(t, int64(2), cancelled[0].ID)

	_, err = s.ListAll(ctx, "Broken")
	require.Equal(t, apperr.CodeValidation, apperr.GetCode(err))
}

func TestDateHasBooking(t *testing.T) {
	f := newFakeRepo()
	f.rentals = []model.Rental{
		{ID: 1, VehicleID: 3, Status: model.RentalPending,
			RentalDate: day(2026, 5, 18), ReturnDate: day(2026, 5, 22)},
	}
	s := newService(f, day(2026, 5, 1))

	booked, err := s.DateHasBooking(context.Background(), 3, day(2026, 5, 18))
	require.NoError(t, err)
	require.True(t, booked)

	booked, err = s.DateHasBooking(context.Background(), 3, day(2026, 5, 23))
	require.NoError(t, err)
	require.False(t, booked)
}
