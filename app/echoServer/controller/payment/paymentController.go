package payment

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/umer212dot/Vehicle-Rental-System/apperr"
	"github.com/umer212dot/Vehicle-Rental-System/model"
	rentalsvc "github.com/umer212dot/Vehicle-Rental-System/service/rental"
)

type Controller struct {
	Svc rentalsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type RecordPaymentReq struct {
	RentalID      int64           `json:"rental_id" validate:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentStatus string          `json:"payment_status" validate:"omitempty,oneof=Pending Completed Failed"`
}

// POST /v1/payments
// Accepts a pre-decided payment_status or, when omitted, captures
// through the gateway.
func (h *Controller) Record(c echo.Context) error {
	var req RecordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	p, err := h.Svc.RecordPayment(c.Request().Context(), rentalsvc.PaymentInput{
		RentalID: req.RentalID,
		Amount:   req.Amount,
		Status:   model.PaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		switch apperr.GetCode(err) {
		case apperr.CodeValidation:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		case apperr.CodeNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("payment record", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, p)
}
