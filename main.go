// Package main vehicle rental API.
//
// @title           Vehicle Rental API
// @version         1.0
// @description     Vehicle rental service (vehicles, bookings, maintenance, payments).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/umer212dot/Vehicle-Rental-System/app/echoServer"
	authctrl "github.com/umer212dot/Vehicle-Rental-System/app/echoServer/controller/auth"
	maintctrl "github.com/umer212dot/Vehicle-Rental-System/app/echoServer/controller/maintenance"
	paymentctrl "github.com/umer212dot/Vehicle-Rental-System/app/echoServer/controller/payment"
	rentalctrl "github.com/umer212dot/Vehicle-Rental-System/app/echoServer/controller/rental"
	vehiclectrl "github.com/umer212dot/Vehicle-Rental-System/app/echoServer/controller/vehicle"
	"github.com/umer212dot/Vehicle-Rental-System/app/echoServer/validation"
	"github.com/umer212dot/Vehicle-Rental-System/config"
	"github.com/umer212dot/Vehicle-Rental-System/repository/gateway"
	maintrepo "github.com/umer212dot/Vehicle-Rental-System/repository/maintenance"
	rentalrepo "github.com/umer212dot/Vehicle-Rental-System/repository/rental"
	userrepo "github.com/umer212dot/Vehicle-Rental-System/repository/user"
	vehiclerepo "github.com/umer212dot/Vehicle-Rental-System/repository/vehicle"
	authsvc "github.com/umer212dot/Vehicle-Rental-System/service/auth"
	maintsvc "github.com/umer212dot/Vehicle-Rental-System/service/maintenance"
	rentalsvc "github.com/umer212dot/Vehicle-Rental-System/service/rental"
	"github.com/umer212dot/Vehicle-Rental-System/service/sweep"
	vehiclesvc "github.com/umer212dot/Vehicle-Rental-System/service/vehicle"
	"github.com/umer212dot/Vehicle-Rental-System/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(db)
	vr := vehiclerepo.New(db)
	rr := rentalrepo.New(db)
	mr := maintrepo.New(db)

	var gw gateway.Repo
	if cfg.GatewayURL != "" {
		gw = gateway.NewHTTP(cfg.GatewayAPIKey, cfg.GatewayURL)
	} else {
		gw = gateway.NewSimulator()
	}

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	vs := vehiclesvc.New(vr)
	rs := rentalsvc.New(rr, gw, log)
	ms := maintsvc.New(mr, log)

	// availability sweep: once at startup, then on the interval
	sw := sweep.New(rs, ms, log, cfg.SweepInterval)
	sw.Start(ctx)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	vehicleC := &vehiclectrl.Controller{Svc: vs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, Sweep: sw, V: v, Log: log}
	maintC := &maintctrl.Controller{Svc: ms, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:        authC,
		Vehicle:     vehicleC,
		Rental:      rentalC,
		Maintenance: maintC,
		Payment:     paymentC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "sweep_interval", cfg.SweepInterval.String())

	e.Logger.Fatal(e.Start(":" + port))
}
