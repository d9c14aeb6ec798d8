// repository/rental/rentalRepository.go
package rentalrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/umer212dot/Vehicle-Rental-System/model"
)

// Repo owns the rental table plus the vehicle-scoped reads the lifecycle
// needs inside the same transaction (maintenance rows for conflict checks,
// payment inserts). InTx scopes a read-then-write sequence; conflict check
// and status write for one vehicle must share the tx.
type Repo interface {
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error

	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (*model.Rental, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, rentalID int64, status model.RentalStatus) error
	UpdateDates(ctx context.Context, tx *sql.Tx, rentalID int64, start, end time.Time, status model.RentalStatus) error

	ListMaintenanceByVehicle(ctx context.Context, tx *sql.Tx, vehicleID int64) ([]model.MaintenanceRecord, error)

	InsertPayment(ctx context.Context, tx *sql.Tx, p *model.Payment) error

	// CompleteDue advances every Ongoing rental whose return date has
	// passed. One statement, safe to repeat.
	CompleteDue(ctx context.Context, now time.Time) ([]model.Rental, error)

	ListAll(ctx context.Context) ([]model.Rental, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Rental, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, m *model.Rental) error {
	const q = `
		INSERT INTO rental (customer_id, vehicle_id, rental_date, return_date, total_fee, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING rental_id`
	return tx.QueryRowContext(ctx, q,
		m.CustomerID, m.VehicleID, m.RentalDate, m.ReturnDate, m.TotalFee, m.Status,
	).Scan(&m.ID)
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (*model.Rental, error) {
	const q = `
		SELECT rental_id, customer_id, vehicle_id, rental_date, return_date, total_fee, status
		FROM rental
		WHERE rental_id = $1
		FOR UPDATE`
	m := &model.Rental{}
	err := tx.QueryRowContext(ctx, q, rentalID).Scan(
		&m.ID, &m.CustomerID, &m.VehicleID, &m.RentalDate, &m.ReturnDate, &m.TotalFee, &m.Status,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repo) UpdateStatus(ctx context.Context, tx *sql.Tx, rentalID int64, status model.RentalStatus) error {
	const q = `
		UPDATE rental
		SET status = $2
		WHERE rental_id = $1`
	_, err := tx.ExecContext(ctx, q, rentalID, status)
	return err
}

func (r *repo) UpdateDates(ctx context.Context, tx *sql.Tx, rentalID int64, start, end time.Time, status model.RentalStatus) error {
	const q = `
		UPDATE rental
		SET rental_date = $2,
			return_date = $3,
			status = $4
		WHERE rental_id = $1`
	_, err := tx.ExecContext(ctx, q, rentalID, start, end, status)
	return err
}

func (r *repo) ListMaintenanceByVehicle(ctx context.Context, tx *sql.Tx, vehicleID int64) ([]model.MaintenanceRecord, error) {
	const q = `
		SELECT maintenance_id, vehicle_id, maintenance_date, description, cost, status
		FROM maintenance
		WHERE vehicle_id = $1
		ORDER BY maintenance_date`
	rows, err := tx.QueryContext(ctx, q, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MaintenanceRecord
	for rows.Next() {
		var m model.MaintenanceRecord
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.MaintenanceDate, &m.Description, &m.Cost, &m.Status); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) InsertPayment(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	const q = `
		INSERT INTO payment (rental_id, amount, payment_status, transaction_id)
		VALUES ($1,$2,$3,$4)
		RETURNING payment_id, created_at`
	return tx.QueryRowContext(ctx, q, p.RentalID, p.Amount, p.PaymentStatus, p.TransactionID).
		Scan(&p.ID, &p.CreatedAt)
}

func (r *repo) CompleteDue(ctx context.Context, now time.Time) ([]model.Rental, error) {
	const q = `
		UPDATE rental
		SET status = 'Completed'
		WHERE status = 'Ongoing' AND return_date <= $1
		RETURNING rental_id, customer_id, vehicle_id, rental_date, return_date, total_fee, status`
	rows, err := r.db.QueryContext(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rental
	for rows.Next() {
		var m model.Rental
		if err := rows.Scan(&m.ID, &m.CustomerID, &m.VehicleID, &m.RentalDate, &m.ReturnDate, &m.TotalFee, &m.Status); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

const listSelect = `
	SELECT
		r.rental_id, r.customer_id, r.vehicle_id, r.rental_date, r.return_date, r.total_fee, r.status,
		v.vehicle_id, v.brand, v.model, v.type, v.color, v.year, v.transmission, v.price_per_day, v.image_path,
		c.customer_id, c.user_id, c.name, c.email, c.phone
	FROM rental r
	JOIN vehicle v ON v.vehicle_id = r.vehicle_id
	JOIN customer c ON c.customer_id = r.customer_id`

func (r *repo) ListAll(ctx context.Context) ([]model.Rental, error) {
	// Awaiting Approval bookings surface first for the admin queue.
	const q = listSelect + `
	ORDER BY
		CASE r.status
			WHEN 'Awaiting Approval' THEN 1
			WHEN 'Pending' THEN 2
			WHEN 'Ongoing' THEN 3
			WHEN 'Completed' THEN 4
			WHEN 'Cancelled' THEN 5
			ELSE 6
		END,
		r.rental_date DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJoined(rows)
}

func (r *repo) ListByCustomer(ctx context.Context, customerID int64) ([]model.Rental, error) {
	const q = listSelect + `
	WHERE r.customer_id = $1
	ORDER BY r.rental_date DESC`
	rows, err := r.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJoined(rows)
}

func scanJoined(rows *sql.Rows) ([]model.Rental, error) {
	var out []model.Rental
	for rows.Next() {
		var m model.Rental
		var v model.Vehicle
		var c model.Customer
		if err := rows.Scan(
			&m.ID, &m.CustomerID, &m.VehicleID, &m.RentalDate, &m.ReturnDate, &m.TotalFee, &m.Status,
			&v.ID, &v.Brand, &v.Model, &v.Type, &v.Color, &v.Year, &v.Transmission, &v.PricePerDay, &v.ImagePath,
			&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone,
		); err != nil {
			return nil, err
		}
		m.Vehicle = &v
		m.Customer = &c
		out = append(out, m)
	}
	return out, rows.Err()
}
