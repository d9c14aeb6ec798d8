package vehicle

import "github.com/shopspring/decimal"

type VehicleReq struct {
	Brand        string          `json:"brand" validate:"required"`
	Model        string          `json:"model" validate:"required"`
	Type         string          `json:"type" validate:"required"`
	Color        string          `json:"color" validate:"required"`
	Year         int             `json:"year" validate:"required,gte=1950"`
	Transmission string          `json:"transmission" validate:"required,oneof=Automatic Manual"`
	PricePerDay  decimal.Decimal `json:"price_per_day" validate:"required"`
	ImagePath    *string         `json:"image_path"`
}
