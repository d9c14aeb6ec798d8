package vehicle

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/umer212dot/Vehicle-Rental-System/apperr"
	"github.com/umer212dot/Vehicle-Rental-System/model"
	vehiclesvc "github.com/umer212dot/Vehicle-Rental-System/service/vehicle"
)

type Controller struct {
	Svc vehiclesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) writeErr(c echo.Context, op string, err error) error {
	switch apperr.GetCode(err) {
	case apperr.CodeValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case apperr.CodeNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

func fromReq(req VehicleReq) *model.Vehicle {
	return &model.Vehicle{
		Brand:        req.Brand,
		Model:        req.Model,
		Type:         req.Type,
		Color:        req.Color,
		Year:         req.Year,
		Transmission: req.Transmission,
		PricePerDay:  req.PricePerDay,
		ImagePath:    req.ImagePath,
	}
}

// POST /v1/vehicles  (admin)
func (h *Controller) Create(c echo.Context) error {
	var req VehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	v, err := h.Svc.Create(c.Request().Context(), fromReq(req))
	if err != nil {
		return h.writeErr(c, "vehicle create", err)
	}
	return c.JSON(http.StatusCreated, v)
}

// PUT /v1/vehicles/:id  (admin)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req VehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	v := fromReq(req)
	v.ID = id
	out, err := h.Svc.Update(c.Request().Context(), v)
	if err != nil {
		return h.writeErr(c, "vehicle update", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/vehicles/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	v, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, "vehicle detail", err)
	}
	return c.JSON(http.StatusOK, v)
}

// GET /v1/search
func (h *Controller) Search(c echo.Context) error {
	f := model.VehicleFilter{
		Brand:        c.QueryParam("brand"),
		Model:        c.QueryParam("model"),
		Type:         c.QueryParam("type"),
		Color:        c.QueryParam("color"),
		Transmission: c.QueryParam("transmission"),
	}

	// Default price range mirrors the search page: 0 .. 99999.
	min := decimal.Zero
	max := decimal.NewFromInt(99999)
	if s := c.QueryParam("minPrice"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid minPrice"})
		}
		min = d
	}
	if s := c.QueryParam("maxPrice"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid maxPrice"})
		}
		max = d
	}
	f.MinPrice, f.MaxPrice = &min, &max

	if s := c.QueryParam("availability"); s != "" {
		avail, err := strconv.ParseBool(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid availability"})
		}
		f.Availability = &avail
	}

	rows, err := h.Svc.Search(c.Request().Context(), f)
	if err != nil {
		return h.writeErr(c, "vehicle search", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /v1/models/:brand
func (h *Controller) ModelsByBrand(c echo.Context) error {
	rows, err := h.Svc.ModelsByBrand(c.Request().Context(), c.Param("brand"))
	if err != nil {
		return h.writeErr(c, "models by brand", err)
	}
	return c.JSON(http.StatusOK, rows)
}
