package vehiclesvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/umer212dot/Vehicle-Rental-System/apperr"
	"github.com/umer212dot/Vehicle-Rental-System/model"
)

type Repo interface {
	Create(ctx context.Context, v *model.Vehicle) error
	Update(ctx context.Context, v *model.Vehicle) error
	ByID(ctx context.Context, id int64) (*model.Vehicle, error)
	Search(ctx context.Context, f model.VehicleFilter) ([]model.Vehicle, error)
	ModelsByBrand(ctx context.Context, brand string) ([]string, error)
}

type Service interface {
	Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error)
	Update(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error)
	Detail(ctx context.Context, id int64) (*model.Vehicle, error)
	Search(ctx context.Context, f model.VehicleFilter) ([]model.Vehicle, error)
	ModelsByBrand(ctx context.Context, brand string) ([]string, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func validate(v *model.Vehicle) error {
	if strings.TrimSpace(v.Brand) == "" || strings.TrimSpace(v.Model) == "" {
		return apperr.Validation("brand and model are required")
	}
	if v.PricePerDay.IsNegative() {
		return apperr.Validation("price_per_day must not be negative")
	}
	return nil
}

func (s *service) Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	if err := validate(v); err != nil {
		return nil, err
	}
	if err := s.r.Create(ctx, v); err != nil {
		return nil, err
	}
	// A vehicle with no rentals and no maintenance is available.
	v.Availability = true
	return v, nil
}

func (s *service) Update(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	if v.ID <= 0 {
		return nil, apperr.Validation("vehicle_id is required")
	}
	if err := validate(v); err != nil {
		return nil, err
	}
	if err := s.r.Update(ctx, v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("vehicle not found")
		}
		return nil, err
	}
	return s.r.ByID(ctx, v.ID)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Vehicle, error) {
	v, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.NotFound("vehicle not found")
	}
	return v, nil
}

func (s *service) Search(ctx context.Context, f model.VehicleFilter) ([]model.Vehicle, error) {
	return s.r.Search(ctx, f)
}

func (s *service) ModelsByBrand(ctx context.Context, brand string) ([]string, error) {
	if strings.TrimSpace(brand) == "" {
		return nil, apperr.Validation("brand is required")
	}
	return s.r.ModelsByBrand(ctx, brand)
}
