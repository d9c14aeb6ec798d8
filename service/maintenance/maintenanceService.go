package maintsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umer212dot/Vehicle-Rental-System/apperr"
	"github.com/umer212dot/Vehicle-Rental-System/model"
	"github.com/umer212dot/Vehicle-Rental-System/service/conflict"
	"github.com/umer212dot/Vehicle-Rental-System/util/dateutil"
)

// Repo is the slice of the maintenance repository this lifecycle drives.
type Repo interface {
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error

	Insert(ctx context.Context, tx *sql.Tx, m *model.MaintenanceRecord) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, maintenanceID int64) (*model.MaintenanceRecord, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, maintenanceID int64, status model.MaintenanceStatus) error
	ListRentalsByVehicle(ctx context.Context, tx *sql.Tx, vehicleID int64) ([]model.Rental, error)

	ListByVehicle(ctx context.Context, vehicleID int64) ([]model.MaintenanceRecord, error)
	ListNonCancelled(ctx context.Context) ([]model.MaintenanceRecord, error)
	ListAll(ctx context.Context, status model.MaintenanceStatus) ([]model.MaintenanceRecord, error)
}

type ScheduleInput struct {
	VehicleID   int64
	Date        time.Time
	Description string
	Cost        decimal.Decimal
}

type Service interface {
	// Schedule books a maintenance day for a vehicle, refusing when an
	// active rental covers that day.
	Schedule(ctx context.Context, in ScheduleInput) (*model.MaintenanceRecord, error)

	// Cancel marks a record Cancelled unless it is currently in progress.
	Cancel(ctx context.Context, maintenanceID int64) (*model.MaintenanceRecord, error)

	// SweepDerive re-derives every non-cancelled record's status from now
	// and persists the ones that changed, one transaction per record.
	SweepDerive(ctx context.Context, now time.Time) (int, error)

	ListByVehicle(ctx context.Context, vehicleID int64) ([]model.MaintenanceRecord, error)

	// ListAll is the fleet-wide admin view, vehicle joined; status narrows
	// it when non-empty.
	ListAll(ctx context.Context, status model.MaintenanceStatus) ([]model.MaintenanceRecord, error)

	// DateHasBooking is the advisory check behind the scheduler UI.
	DateHasBooking(ctx context.Context, vehicleID int64, day time.Time) (bool, error)
}

// Derive computes the status a record should hold at now. Cancelled is
// sticky and never recomputed. The second return reports whether the
// caller needs to persist a change.
func Derive(m model.MaintenanceRecord, now time.Time) (model.MaintenanceStatus, bool) {
	if m.Status == model.MaintenanceCancelled {
		return model.MaintenanceCancelled, false
	}
	date := dateutil.Truncate(m.MaintenanceDate)
	today := dateutil.Truncate(now)

	var next model.MaintenanceStatus
	switch {
	case date.After(today):
		next = model.MaintenanceScheduled
	case date.Equal(today):
		next = model.MaintenanceOngoing
	default:
		next = model.MaintenanceCompleted
	}
	return next, next != m.Status
}

type service struct {
	r   Repo
	log *slog.Logger
	now func() time.Time
}

func New(r Repo, log *slog.Logger) Service {
	return &service{r: r, log: log, now: time.Now}
}

// NewWithClock pins the lifecycle's clock, for tests.
func NewWithClock(r Repo, log *slog.Logger, now func() time.Time) Service {
	return &service{r: r, log: log, now: now}
}

func (s *service) Schedule(ctx context.Context, in ScheduleInput) (*model.MaintenanceRecord, error) {
	if in.VehicleID <= 0 || in.Date.IsZero() {
		return nil, apperr.Validation("vehicle_id and maintenance_date are required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperr.Validation("description must not be empty")
	}

	record := &model.MaintenanceRecord{
		VehicleID:       in.VehicleID,
		MaintenanceDate: dateutil.Truncate(in.Date),
		Description:     in.Description,
		Cost:            in.Cost,
	}
	// Same-day schedules start Ongoing, past-dated ones Completed; the
	// deriver rule applies from the moment of creation.
	record.Status, _ = Derive(model.MaintenanceRecord{
		MaintenanceDate: record.MaintenanceDate,
		Status:          model.MaintenanceScheduled,
	}, s.now())

	err := s.r.InTx(ctx, func(tx *sql.Tx) error {
		rentals, err := s.r.ListRentalsByVehicle(ctx, tx, in.VehicleID)
		if err != nil {
			return err
		}
		if conflicts := conflict.MaintenanceOverlapsRental(rentals, record.MaintenanceDate); len(conflicts) > 0 {
			return apperr.Conflict("maintenance date falls inside an active rental", conflicts)
		}
		return s.r.Insert(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) Cancel(ctx context.Context, maintenanceID int64) (*model.MaintenanceRecord, error) {
	var record *model.MaintenanceRecord
	err := s.r.InTx(ctx, func(tx *sql.Tx) error {
		var err error
		record, err = s.r.GetForUpdate(ctx, tx, maintenanceID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("maintenance record not found")
		}
		if err != nil {
			return err
		}

		// Judge the transition against today's derived status, not a
		// possibly stale stored one.
		current, _ := Derive(*record, s.now())
		if current == model.MaintenanceOngoing {
			return apperr.IllegalTransition("maintenance in progress cannot be cancelled")
		}
		record.Status = model.MaintenanceCancelled
		return s.r.UpdateStatus(ctx, tx, maintenanceID, model.MaintenanceCancelled)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) SweepDerive(ctx context.Context, now time.Time) (int, error) {
	records, err := s.r.ListNonCancelled(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, m := range records {
		next, dirty := Derive(m, now)
		if !dirty {
			continue
		}
		// Each record commits on its own so one failure, or a slow sweep,
		// never holds back the rest.
		err := s.r.InTx(ctx, func(tx *sql.Tx) error {
			return s.r.UpdateStatus(ctx, tx, m.ID, next)
		})
		if err != nil {
			s.log.Error("maintenance status derive failed",
				"maintenance_id", m.ID, "err", err)
			continue
		}
		changed++
	}
	return changed, nil
}

func (s *service) ListByVehicle(ctx context.Context, vehicleID int64) ([]model.MaintenanceRecord, error) {
	if vehicleID <= 0 {
		return nil, apperr.Validation(fmt.Sprintf("invalid vehicle id %d", vehicleID))
	}
	return s.r.ListByVehicle(ctx, vehicleID)
}

func (s *service) ListAll(ctx context.Context, status model.MaintenanceStatus) ([]model.MaintenanceRecord, error) {
	switch status {
	case "", model.MaintenanceScheduled, model.MaintenanceOngoing,
		model.MaintenanceCompleted, model.MaintenanceCancelled:
	default:
		return nil, apperr.Validation(fmt.Sprintf("unknown maintenance status %q", status))
	}
	return s.r.ListAll(ctx, status)
}

func (s *service) DateHasBooking(ctx context.Context, vehicleID int64, day time.Time) (bool, error) {
	if vehicleID <= 0 || day.IsZero() {
		return false, apperr.Validation("vehicle_id and date are required")
	}
	var booked bool
	err := s.r.InTx(ctx, func(tx *sql.Tx) error {
		rentals, err := s.r.ListRentalsByVehicle(ctx, tx, vehicleID)
		if err != nil {
			return err
		}
		booked = conflict.DateHasActiveBooking(rentals, day)
		return nil
	})
	if err != nil {
		return false, err
	}
	return booked, nil
}
