package echoServer

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/umer212dot/Vehicle-Rental-System/app/echoServer/controller/auth"
	"github.com/umer212dot/Vehicle-Rental-System/app/echoServer/controller/maintenance"
	"github.com/umer212dot/Vehicle-Rental-System/app/echoServer/controller/payment"
	"github.com/umer212dot/Vehicle-Rental-System/app/echoServer/controller/rental"
	"github.com/umer212dot/Vehicle-Rental-System/app/echoServer/controller/vehicle"
)

type C struct {
	Auth        *auth.Controller
	Vehicle     *vehicle.Controller
	Rental      *rental.Controller
	Maintenance *maintenance.Controller
	Payment     *payment.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)
	pub.GET("/search", c.Vehicle.Search)
	pub.GET("/models/:brand", c.Vehicle.ModelsByBrand)
	pub.GET("/vehicles/:id", c.Vehicle.Detail)

	// Authenticated
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	authed.Use(JWTAuth(c.JWTSecret))

	authed.POST("/rentals", c.Rental.Create)
	authed.GET("/rentals/customer/:customer_id", c.Rental.ListByCustomer)
	authed.POST("/payments", c.Payment.Record)
	authed.GET("/vehicles/:id/maintenance", c.Maintenance.ListByVehicle)
	authed.GET("/bookings/check-date", c.Maintenance.CheckDate)

	// Admin
	admin := authed.Group("", AdminOnly())
	admin.GET("/rentals/all", c.Rental.ListAll)
	admin.PUT("/rentals/:id/approve", c.Rental.Approve)
	admin.PUT("/rentals/:id/reject", c.Rental.Reject)
	admin.PUT("/rentals/:id", c.Rental.Update)
	admin.POST("/sweep/run", c.Rental.RunSweep)

	admin.POST("/vehicles", c.Vehicle.Create)
	admin.PUT("/vehicles/:id", c.Vehicle.Update)

	admin.POST("/vehicles/:id/schedule-maintenance", c.Maintenance.Schedule)
	admin.PUT("/maintenance/:id/status", c.Maintenance.UpdateStatus)
	admin.GET("/maintenance/all", c.Maintenance.ListAll)
	admin.GET("/vehicles/maintenance", c.Maintenance.ListAll)
}
