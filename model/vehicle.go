package model

import "github.com/shopspring/decimal"

type Vehicle struct {
	ID           int64           `json:"vehicle_id"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Type         string          `json:"type"`
	Color        string          `json:"color"`
	Year         int             `json:"year"`
	Transmission string          `json:"transmission"`
	PricePerDay  decimal.Decimal `json:"price_per_day"`
	ImagePath    *string         `json:"image_path,omitempty"`

	// Availability is a projection of the rental and maintenance tables
	// (no Ongoing rental and no Ongoing maintenance today), recomputed on
	// read. It is never written directly.
	Availability bool `json:"availability"`
}

// VehicleFilter narrows vehicle searches. Zero values mean "no filter";
// price bounds default to [0, 99999] when unset.
type VehicleFilter struct {
	Brand        string
	Model        string
	Type         string
	Color        string
	Transmission string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Availability *bool
}
