package maintenance

import "github.com/shopspring/decimal"

type ScheduleReq struct {
	MaintenanceDate string          `json:"maintenance_date" validate:"required,datetime=2006-01-02"`
	Description     string          `json:"description" validate:"required"`
	Cost            decimal.Decimal `json:"cost"`
}

// UpdateStatusReq mirrors the status editor: cancellation is the only
// manual transition, everything else is derived from the date.
type UpdateStatusReq struct {
	Status string `json:"status" validate:"required,oneof=Cancelled"`
}
