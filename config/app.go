package config

import "time"

type App struct {
	Port           string        `env:"APP_PORT" default:"8080"`
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	JWTSecret      string        `env:"JWT_SECRET,required"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" default:"migrations"`
	SweepInterval  time.Duration `env:"SWEEP_INTERVAL" default:"24h"`
	GatewayURL     string        `env:"PAYMENT_GATEWAY_URL"`
	GatewayAPIKey  string        `env:"PAYMENT_GATEWAY_API_KEY"`
	Env            string        `env:"APP_ENV" default:"dev"`
}
