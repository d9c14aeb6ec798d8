package rentalsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umer212dot/Vehicle-Rental-System/apperr"
	"github.com/umer212dot/Vehicle-Rental-System/model"
	"github.com/umer212dot/Vehicle-Rental-System/repository/gateway"
	"github.com/umer212dot/Vehicle-Rental-System/service/conflict"
	"github.com/umer212dot/Vehicle-Rental-System/util/dateutil"
)

// Repo is the slice of the rental repository this lifecycle drives.
// Conflict check and status write for one vehicle share a transaction.
type Repo interface {
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error

	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (*model.Rental, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, rentalID int64, status model.RentalStatus) error
	UpdateDates(ctx context.Context, tx *sql.Tx, rentalID int64, start, end time.Time, status model.RentalStatus) error
	ListMaintenanceByVehicle(ctx context.Context, tx *sql.Tx, vehicleID int64) ([]model.MaintenanceRecord, error)
	InsertPayment(ctx context.Context, tx *sql.Tx, p *model.Payment) error
	CompleteDue(ctx context.Context, now time.Time) ([]model.Rental, error)

	ListAll(ctx context.Context) ([]model.Rental, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Rental, error)
}

type CreateInput struct {
	CustomerID int64
	VehicleID  int64
	RentalDate time.Time
	ReturnDate time.Time
	TotalFee   decimal.Decimal
}

type PaymentInput struct {
	RentalID int64
	Amount   decimal.Decimal
	// Status comes from the caller when the capture already happened
	// elsewhere; empty means "charge through the gateway".
	Status model.PaymentStatus
}

type UpdateInput struct {
	RentalID  int64
	NewStart  *time.Time
	NewEnd    *time.Time
	NewStatus *model.RentalStatus
}

type Service interface {
	// Create queues a booking in Awaiting Approval. Maintenance conflicts
	// do not block creation: they come back alongside the saved rental so
	// the caller can surface them (the vehicle stays reserved-but-
	// unconfirmed until an admin decides).
	Create(ctx context.Context, in CreateInput) (*model.Rental, []model.MaintenanceRecord, error)

	// Approve moves Awaiting Approval -> Pending after re-checking the
	// vehicle's current maintenance schedule.
	Approve(ctx context.Context, rentalID int64) (*model.Rental, error)

	// Reject moves Awaiting Approval -> Cancelled.
	Reject(ctx context.Context, rentalID int64) (*model.Rental, error)

	// RecordPayment stores a payment row; a Completed payment forces the
	// rental to Ongoing.
	RecordPayment(ctx context.Context, in PaymentInput) (*model.Payment, error)

	// UpdateDates is the administrative override for dates and status.
	UpdateDates(ctx context.Context, in UpdateInput) (*model.Rental, error)

	// SweepComplete advances Ongoing rentals whose return date has passed.
	SweepComplete(ctx context.Context, now time.Time) ([]model.Rental, error)

	ListAll(ctx context.Context) ([]model.Rental, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Rental, error)
}

type service struct {
	r   Repo
	gw  gateway.Repo
	log *slog.Logger
}

func New(r Repo, gw gateway.Repo, log *slog.Logger) Service {
	return &service{r: r, gw: gw, log: log}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*model.Rental, []model.MaintenanceRecord, error) {
	if in.CustomerID <= 0 || in.VehicleID <= 0 || in.RentalDate.IsZero() || in.ReturnDate.IsZero() {
		return nil, nil, apperr.Validation("customer_id, vehicle_id, rental_date and return_date are required")
	}
	start := dateutil.Truncate(in.RentalDate)
	end := dateutil.Truncate(in.ReturnDate)
	if end.Before(start) {
		return nil, nil, apperr.Validation("return_date must not precede rental_date")
	}

	rental := &model.Rental{
		CustomerID: in.CustomerID,
		VehicleID:  in.VehicleID,
		RentalDate: start,
		ReturnDate: end,
		TotalFee:   in.TotalFee,
		Status:     model.RentalAwaitingApproval,
	}

	var conflicts []model.MaintenanceRecord
	err := s.r.InTx(ctx, func(tx *sql.Tx) error {
		records, err := s.r.ListMaintenanceByVehicle(ctx, tx, in.VehicleID)
		if err != nil {
			return err
		}
		conflicts = conflict.RentalOverlapsMaintenance(records, start, end)
		return s.r.Insert(ctx, tx, rental)
	})
	if err != nil {
		return nil, nil, err
	}

	if len(conflicts) > 0 {
		s.log.Warn("rental created over scheduled maintenance",
			"rental_id", rental.ID, "vehicle_id", rental.VehicleID, "conflicts", len(conflicts))
	}
	return rental, conflicts, nil
}

func (s *service) Approve(ctx context.Context, rentalID int64) (*model.Rental, error) {
	var rental *model.Rental
	err := s.r.InTx(ctx, func(tx *sql.Tx) error {
		var err error
		rental, err = s.r.GetForUpdate(ctx, tx, rentalID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("rental not found")
		}
		if err != nil {
			return err
		}
		if rental.Status != model.RentalAwaitingApproval {
			return apperr.IllegalTransition(
				fmt.Sprintf("cannot approve rental in status %q", rental.Status))
		}

		// The schedule may have changed since the booking was made.
		records, err := s.r.ListMaintenanceByVehicle(ctx, tx, rental.VehicleID)
		if err != nil {
			return err
		}
		if conflicts := conflict.RentalOverlapsMaintenance(records, rental.RentalDate, rental.ReturnDate); len(conflicts) > 0 {
			return apperr.Conflict("rental dates overlap scheduled maintenance", conflicts)
		}

		rental.Status = model.RentalPending
		return s.r.UpdateStatus(ctx, tx, rentalID, model.RentalPending)
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *service) Reject(ctx context.Context, rentalID int64) (*model.Rental, error) {
	var rental *model.Rental
	err := s.r.InTx(ctx, func(tx *sql.Tx) error {
		var err error
		rental, err = s.r.GetForUpdate(ctx, tx, rentalID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("rental not found")
		}
		if err != nil {
			return err
		}
		if rental.Status != model.RentalAwaitingApproval {
			return apperr.IllegalTransition(
				fmt.Sprintf("cannot reject rental in status %q", rental.Status))
		}
		rental.Status = model.RentalCancelled
		return s.r.UpdateStatus(ctx, tx, rentalID, model.RentalCancelled)
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *service) RecordPayment(ctx context.Context, in PaymentInput) (*model.Payment, error) {
	if in.RentalID <= 0 || !in.Amount.IsPositive() {
		return nil, apperr.Validation("rental_id and a positive amount are required")
	}

	payment := &model.Payment{
		RentalID:      in.RentalID,
		Amount:        in.Amount,
		PaymentStatus: in.Status,
	}
	if payment.PaymentStatus == "" {
		resp, err := s.gw.Charge(gateway.ChargeReq{
			ExternalID:  fmt.Sprintf("rental:%d:%d", in.RentalID, time.Now().UnixNano()),
			Amount:      in.Amount,
			Description: "Vehicle rental",
		})
		if err != nil {
			return nil, err
		}
		payment.PaymentStatus = model.PaymentStatus(resp.Status)
		payment.TransactionID = &resp.TransactionID
	}

	err := s.r.InTx(ctx, func(tx *sql.Tx) error {
		rental, err := s.r.GetForUpdate(ctx, tx, in.RentalID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("rental not found")
		}
		if err != nil {
			return err
		}
		if err := s.r.InsertPayment(ctx, tx, payment); err != nil {
			return err
		}
		if payment.PaymentStatus != model.PaymentCompleted {
			return nil
		}
		// A completed payment forces Ongoing no matter where the rental
		// currently is. The state machine only defines Pending -> Ongoing;
		// anything else is an unchecked override, kept visible in the log.
		if rental.Status != model.RentalPending {
			s.log.Warn("completed payment forcing rental to Ongoing outside Pending",
				"rental_id", rental.ID, "from_status", rental.Status)
		}
		return s.r.UpdateStatus(ctx, tx, in.RentalID, model.RentalOngoing)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) UpdateDates(ctx context.Context, in UpdateInput) (*model.Rental, error) {
	if in.RentalID <= 0 {
		return nil, apperr.Validation("rental_id is required")
	}
	if in.NewStart == nil && in.NewEnd == nil && in.NewStatus == nil {
		return nil, apperr.Validation("nothing to update")
	}

	var rental *model.Rental
	err := s.r.InTx(ctx, func(tx *sql.Tx) error {
		var err error
		rental, err = s.r.GetForUpdate(ctx, tx, in.RentalID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("rental not found")
		}
		if err != nil {
			return err
		}

		start, end := dateutil.Truncate(rental.RentalDate), dateutil.Truncate(rental.ReturnDate)
		if in.NewStart != nil {
			start = dateutil.Truncate(*in.NewStart)
		}
		if in.NewEnd != nil {
			end = dateutil.Truncate(*in.NewEnd)
		}
		if end.Before(start) {
			return apperr.Validation("return_date must not precede rental_date")
		}

		if in.NewStart != nil || in.NewEnd != nil {
			records, err := s.r.ListMaintenanceByVehicle(ctx, tx, rental.VehicleID)
			if err != nil {
				return err
			}
			if conflicts := conflict.RentalOverlapsMaintenance(records, start, end); len(conflicts) > 0 {
				return apperr.Conflict("new dates overlap scheduled maintenance", conflicts)
			}
		}

		status := rental.Status
		if in.NewStatus != nil {
			// Unchecked administrative override: the forced value is
			// applied without walking the state machine.
			status = *in.NewStatus
			s.log.Warn("rental status forced by admin override",
				"rental_id", rental.ID, "from_status", rental.Status, "to_status", status)
		}

		rental.RentalDate, rental.ReturnDate, rental.Status = start, end, status
		return s.r.UpdateDates(ctx, tx, in.RentalID, start, end, status)
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *service) SweepComplete(ctx context.Context, now time.Time) ([]model.Rental, error) {
	return s.r.CompleteDue(ctx, dateutil.Truncate(now))
}

func (s *service) ListAll(ctx context.Context) ([]model.Rental, error) {
	return s.r.ListAll(ctx)
}

func (s *service) ListByCustomer(ctx context.Context, customerID int64) ([]model.Rental, error) {
	return s.r.ListByCustomer(ctx, customerID)
}
