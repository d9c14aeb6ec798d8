package rental

import "github.com/shopspring/decimal"

type CreateRentalReq struct {
	CustomerID int64           `json:"customer_id" validate:"required,gt=0"`
	VehicleID  int64           `json:"vehicle_id" validate:"required,gt=0"`
	RentalDate string          `json:"rental_date" validate:"required,datetime=2006-01-02"`
	ReturnDate string          `json:"return_date" validate:"required,datetime=2006-01-02"`
	TotalFee   decimal.Decimal `json:"total_fee"`
}

type UpdateRentalReq struct {
	RentalDate *string `json:"rental_date" validate:"omitempty,datetime=2006-01-02"`
	ReturnDate *string `json:"return_date" validate:"omitempty,datetime=2006-01-02"`
	Status     *string `json:"status" validate:"omitempty,oneof='Awaiting Approval' Pending Ongoing Completed Cancelled"`
}
