// repository/vehicle/vehicleRepository.go
package vehiclerepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/umer212dot/Vehicle-Rental-System/model"
)

// availabilityExpr projects the availability flag from the rental and
// maintenance tables instead of storing it. A vehicle is available today
// when no Ongoing rental covers today and no non-cancelled maintenance is
// dated today. The maintenance arm uses the date, not the stored status,
// so the projection holds even between sweep runs.
const availabilityExpr = `
	NOT EXISTS (
		SELECT 1 FROM rental r
		WHERE r.vehicle_id = v.vehicle_id
		  AND r.status = 'Ongoing'
		  AND CURRENT_DATE BETWEEN r.rental_date AND r.return_date
	)
	AND NOT EXISTS (
		SELECT 1 FROM maintenance m
		WHERE m.vehicle_id = v.vehicle_id
		  AND m.status <> 'Cancelled'
		  AND m.maintenance_date = CURRENT_DATE
	)`

const vehicleSelect = `
	SELECT v.vehicle_id, v.brand, v.model, v.type, v.color, v.year, v.transmission,
		v.price_per_day, v.image_path, ` + availabilityExpr + ` AS availability
	FROM vehicle v`

type Repo interface {
	Create(ctx context.Context, v *model.Vehicle) error
	Update(ctx context.Context, v *model.Vehicle) error
	ByID(ctx context.Context, id int64) (*model.Vehicle, error)
	Search(ctx context.Context, f model.VehicleFilter) ([]model.Vehicle, error)
	ModelsByBrand(ctx context.Context, brand string) ([]string, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, v *model.Vehicle) error {
	const q = `
		INSERT INTO vehicle (brand, model, type, color, year, transmission, price_per_day, image_path)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING vehicle_id`
	return r.db.QueryRowContext(ctx, q,
		v.Brand, v.Model, v.Type, v.Color, v.Year, v.Transmission, v.PricePerDay, v.ImagePath,
	).Scan(&v.ID)
}

func (r *repo) Update(ctx context.Context, v *model.Vehicle) error {
	const q = `
		UPDATE vehicle
		SET brand = $2, model = $3, type = $4, color = $5, year = $6,
			transmission = $7, price_per_day = $8, image_path = $9
		WHERE vehicle_id = $1`
	res, err := r.db.ExecContext(ctx, q,
		v.ID, v.Brand, v.Model, v.Type, v.Color, v.Year, v.Transmission, v.PricePerDay, v.ImagePath,
	)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	q := vehicleSelect + ` WHERE v.vehicle_id = $1`
	v := &model.Vehicle{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Brand, &v.Model, &v.Type, &v.Color, &v.Year, &v.Transmission,
		&v.PricePerDay, &v.ImagePath, &v.Availability,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *repo) Search(ctx context.Context, f model.VehicleFilter) ([]model.Vehicle, error) {
	values := []any{}
	where := []string{}

	add := func(clause string, v any) {
		values = append(values, v)
		where = append(where, fmt.Sprintf(clause, len(values)))
	}

	if f.MinPrice != nil {
		add("v.price_per_day >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("v.price_per_day <= $%d", *f.MaxPrice)
	}
	if f.Brand != "" {
		add("v.brand = $%d", f.Brand)
	}
	if f.Model != "" {
		add("v.model = $%d", f.Model)
	}
	if f.Type != "" {
		add("v.type = $%d", f.Type)
	}
	if f.Color != "" {
		add("v.color = $%d", f.Color)
	}
	if f.Transmission != "" {
		add("v.transmission = $%d", f.Transmission)
	}

	q := vehicleSelect
	if len(where) > 0 {
		q += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	if f.Availability != nil {
		// The flag is derived, so it filters the projection, not a column.
		wrap := "available"
		if !*f.Availability {
			wrap = "NOT available"
		}
		q = "SELECT * FROM (" + q + ") s(vehicle_id, brand, model, type, color, year, transmission, price_per_day, image_path, available) WHERE " + wrap
	}
	q += "\n\tORDER BY 1"

	rows, err := r.db.QueryContext(ctx, q, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(
			&v.ID, &v.Brand, &v.Model, &v.Type, &v.Color, &v.Year, &v.Transmission,
			&v.PricePerDay, &v.ImagePath, &v.Availability,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *repo) ModelsByBrand(ctx context.Context, brand string) ([]string, error) {
	const q = `SELECT DISTINCT model FROM vehicle WHERE brand = $1 ORDER BY model`
	rows, err := r.db.QueryContext(ctx, q, brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
