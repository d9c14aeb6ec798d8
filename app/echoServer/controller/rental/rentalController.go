package rental

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/umer212dot/Vehicle-Rental-System/apperr"
	"github.com/umer212dot/Vehicle-Rental-System/model"
	rentalsvc "github.com/umer212dot/Vehicle-Rental-System/service/rental"
	"github.com/umer212dot/Vehicle-Rental-System/service/sweep"
)

type Controller struct {
	Svc   rentalsvc.Service
	Sweep *sweep.Sweep
	V     *validator.Validate
	Log   *slog.Logger
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

// POST /v1/rentals
func (h *Controller) Create(c echo.Context) error {
	var req CreateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	// A customer token books for its own customer row.
	if cid, ok := c.Get("customer_id").(int64); ok && cid > 0 {
		req.CustomerID = cid
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	start, _ := time.ParseInLocation("2006-01-02", req.RentalDate, time.Local)
	end, _ := time.ParseInLocation("2006-01-02", req.ReturnDate, time.Local)

	rental, conflicts, err := h.Svc.Create(c.Request().Context(), rentalsvc.CreateInput{
		CustomerID: req.CustomerID,
		VehicleID:  req.VehicleID,
		RentalDate: start,
		ReturnDate: end,
		TotalFee:   req.TotalFee,
	})
	if err != nil {
		return h.writeErr(c, "rental create", err)
	}

	// The booking is queued even when it collides with scheduled
	// maintenance; 409 carries both so the caller can decide.
	if len(conflicts) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"message":   "booking queued, but dates overlap scheduled maintenance",
			"rental":    rental,
			"conflicts": conflicts,
		})
	}
	return c.JSON(http.StatusCreated, rental)
}

// PUT /v1/rentals/:id/approve  (admin)
func (h *Controller) Approve(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rental, err := h.Svc.Approve(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, "rental approve", err)
	}
	return c.JSON(http.StatusOK, rental)
}

// PUT /v1/rentals/:id/reject  (admin)
func (h *Controller) Reject(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rental, err := h.Svc.Reject(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, "rental reject", err)
	}
	return c.JSON(http.StatusOK, rental)
}

// PUT /v1/rentals/:id  (admin override for dates and status)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	in := rentalsvc.UpdateInput{RentalID: id}
	if req.RentalDate != nil {
		t, _ := time.ParseInLocation("2006-01-02", *req.RentalDate, time.Local)
		in.NewStart = &t
	}
	if req.ReturnDate != nil {
		t, _ := time.ParseInLocation("2006-01-02", *req.ReturnDate, time.Local)
		in.NewEnd = &t
	}
	if req.Status != nil {
		st := model.RentalStatus(*req.Status)
		in.NewStatus = &st
	}

	rental, err := h.Svc.UpdateDates(c.Request().Context(), in)
	if err != nil {
		return h.writeErr(c, "rental update", err)
	}
	return c.JSON(http.StatusOK, rental)
}

// GET /v1/rentals/all  (admin)
func (h *Controller) ListAll(c echo.Context) error {
	rows, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		return h.writeErr(c, "rental list all", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /v1/rentals/customer/:customer_id
func (h *Controller) ListByCustomer(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("customer_id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid customer id"})
	}
	// Customers only see their own bookings; admins see anyone's.
	if role, _ := c.Get("role").(string); role != "Admin" {
		if cid, _ := c.Get("customer_id").(int64); cid != id {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		}
	}
	rows, err := h.Svc.ListByCustomer(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, "rental list by customer", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /v1/sweep/run  (admin; also runs on startup and on the timer)
func (h *Controller) RunSweep(c echo.Context) error {
	h.Sweep.Run(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"message": "sweep completed"})
}
