// repository/maintenance/maintenanceRepository.go
package maintrepo

import (
	"context"
	"database/sql"

	"github.com/umer212dot/Vehicle-Rental-System/model"
)

// Repo owns the maintenance table plus the rental reads the scheduling
// conflict check needs inside the same transaction.
type Repo interface {
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error

	Insert(ctx context.Context, tx *sql.Tx, m *model.MaintenanceRecord) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, maintenanceID int64) (*model.MaintenanceRecord, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, maintenanceID int64, status model.MaintenanceStatus) error

	ListRentalsByVehicle(ctx context.Context, tx *sql.Tx, vehicleID int64) ([]model.Rental, error)

	ListByVehicle(ctx context.Context, vehicleID int64) ([]model.MaintenanceRecord, error)
	ListNonCancelled(ctx context.Context) ([]model.MaintenanceRecord, error)

	// ListAll returns every record with its vehicle joined, optionally
	// narrowed to one status. Backs the fleet maintenance views.
	ListAll(ctx context.Context, status model.MaintenanceStatus) ([]model.MaintenanceRecord, error)
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

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, m *model.MaintenanceRecord) error {
	const q = `
		INSERT INTO maintenance (vehicle_id, maintenance_date, description, cost, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING maintenance_id`
	return tx.QueryRowContext(ctx, q,
		m.VehicleID, m.MaintenanceDate, m.Description, m.Cost, m.Status,
	).Scan(&m.ID)
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, maintenanceID int64) (*model.MaintenanceRecord, error) {
	const q = `
		SELECT maintenance_id, vehicle_id, maintenance_date, description, cost, status
		FROM maintenance
		WHERE maintenance_id = $1
		FOR UPDATE`
	m := &model.MaintenanceRecord{}
	err := tx.QueryRowContext(ctx, q, maintenanceID).Scan(
		&m.ID, &m.VehicleID, &m.MaintenanceDate, &m.Description, &m.Cost, &m.Status,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repo) UpdateStatus(ctx context.Context, tx *sql.Tx, maintenanceID int64, status model.MaintenanceStatus) error {
	const q = `
		UPDATE maintenance
		SET status = $2
		WHERE maintenance_id = $1`
	_, err := tx.ExecContext(ctx, q, maintenanceID, status)
	return err
}

func (r *repo) ListRentalsByVehicle(ctx context.Context, tx *sql.Tx, vehicleID int64) ([]model.Rental, error) {
	const q = `
		SELECT rental_id, customer_id, vehicle_id, rental_date, return_date, total_fee, status
		FROM rental
		WHERE vehicle_id = $1
		ORDER BY rental_date`
	rows, err := tx.QueryContext(ctx, q, vehicleID)
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

func (r *repo) ListByVehicle(ctx context.Context, vehicleID int64) ([]model.MaintenanceRecord, error) {
	const q = `
		SELECT maintenance_id, vehicle_id, maintenance_date, description, cost, status
		FROM maintenance
		WHERE vehicle_id = $1
		ORDER BY maintenance_date DESC`
	return r.scanList(ctx, q, vehicleID)
}

func (r *repo) ListNonCancelled(ctx context.Context) ([]model.MaintenanceRecord, error) {
	const q = `
		SELECT maintenance_id, vehicle_id, maintenance_date, description, cost, status
		FROM maintenance
		WHERE status <> 'Cancelled'
		ORDER BY maintenance_id`
	return r.scanList(ctx, q)
}

const listSelect = `
	SELECT
		m.maintenance_id, m.vehicle_id, m.maintenance_date, m.description, m.cost, m.status,
		v.vehicle_id, v.brand, v.model, v.type, v.color, v.year, v.transmission, v.price_per_day, v.image_path
	FROM maintenance m
	JOIN vehicle v ON v.vehicle_id = m.vehicle_id`

func (r *repo) ListAll(ctx context.Context, status model.MaintenanceStatus) ([]model.MaintenanceRecord, error) {
	q := listSelect
	args := []any{}
	if status != "" {
		q += `
	WHERE m.status = $1`
		args = append(args, status)
	}
	q += `
	ORDER BY m.maintenance_date DESC, m.maintenance_id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MaintenanceRecord
	for rows.Next() {
		var m model.MaintenanceRecord
		var v model.Vehicle
		if err := rows.Scan(
			&m.ID, &m.VehicleID, &m.MaintenanceDate, &m.Description, &m.Cost, &m.Status,
			&v.ID, &v.Brand, &v.Model, &v.Type, &v.Color, &v.Year, &v.Transmission, &v.PricePerDay, &v.ImagePath,
		); err != nil {
			return nil, err
		}
		m.Vehicle = &v
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) scanList(ctx context.Context, q string, args ...any) ([]model.MaintenanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
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
