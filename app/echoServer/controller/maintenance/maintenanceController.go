package maintenance

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/umer212dot/Vehicle-Rental-System/apperr"
	"github.com/umer212dot/Vehicle-Rental-System/model"
	maintsvc "github.com/umer212dot/Vehicle-Rental-System/service/maintenance"
)

type Controller struct {
	Svc maintsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) writeErr(c echo.Context, op string, err error) error {
	switch apperr.GetCode(err) {
	case apperr.CodeValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case apperr.CodeConflict:
		return c.JSON(http.StatusConflict, echo.Map{
			"message":   err.Error(),
			"conflicts": apperr.ConflictsOf(err),
		})
	case apperr.CodeNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case apperr.CodeIllegalTransition:
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// POST /v1/vehicles/:id/schedule-maintenance  (admin)
func (h *Controller) Schedule(c echo.Context) error {
	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || vehicleID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid vehicle id"})
	}
	var req ScheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	date, _ := time.ParseInLocation("2006-01-02", req.MaintenanceDate, time.Local)
	record, err := h.Svc.Schedule(c.Request().Context(), maintsvc.ScheduleInput{
		VehicleID:   vehicleID,
		Date:        date,
		Description: req.Description,
		Cost:        req.Cost,
	})
	if err != nil {
		return h.writeErr(c, "maintenance schedule", err)
	}
	return c.JSON(http.StatusCreated, record)
}

// PUT /v1/maintenance/:id/status  (admin; Cancelled is the only manual edge)
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "only Cancelled can be set manually"})
	}

	record, err := h.Svc.Cancel(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, "maintenance cancel", err)
	}
	return c.JSON(http.StatusOK, record)
}

// GET /v1/vehicles/:id/maintenance
func (h *Controller) ListByVehicle(c echo.Context) error {
	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || vehicleID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid vehicle id"})
	}
	rows, err := h.Svc.ListByVehicle(c.Request().Context(), vehicleID)
	if err != nil {
		return h.writeErr(c, "maintenance list", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /v1/maintenance/all and /v1/vehicles/maintenance  (admin)
// The fleet tracker narrows with ?status=; without it this is the full
// maintenance log.
func (h *Controller) ListAll(c echo.Context) error {
	status := model.MaintenanceStatus(c.QueryParam("status"))
	rows, err := h.Svc.ListAll(c.Request().Context(), status)
	if err != nil {
		return h.writeErr(c, "maintenance list all", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /v1/bookings/check-date?vehicleId=&date=
// Advisory only; Schedule re-checks authoritatively inside its
// transaction.
func (h *Controller) CheckDate(c echo.Context) error {
	vehicleID, err := strconv.ParseInt(c.QueryParam("vehicleId"), 10, 64)
	if err != nil || vehicleID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid vehicleId"})
	}
	day, err := time.ParseInLocation("2006-01-02", c.QueryParam("date"), time.Local)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "date must be YYYY-MM-DD"})
	}

	booked, err := h.Svc.DateHasBooking(c.Request().Context(), vehicleID, day)
	if err != nil {
		return h.writeErr(c, "booking check-date", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"hasBooking": booked})
}
