package config

import (
	"context"
	"errors"

	"github.com/sethvargo/go-envconfig"
)

const devSecret = "dev-secret-change-in-production"

var (
	ErrInsecureSecret  = errors.New("JWT_SECRET must not be the development placeholder in production")
	ErrDatabaseMissing = errors.New("DATABASE_DSN is required")
)

type Config struct {
	Port           string   `env:"PORT,default=8080"`
	Env            string   `env:"ENV,default=development"`
	DatabaseDSN    string   `env:"DATABASE_DSN"`
	JWTSecret      string   `env:"JWT_SECRET,required"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:3000"`
	OTLPEndpoint   string   `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	LogLevel       string   `env:"LOG_LEVEL,default=info"`
}

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects the development placeholder as the signing secret in
// production.
func (c Config) Validate() error {
	if c.Env == "production" && c.JWTSecret == devSecret {
		return ErrInsecureSecret
	}
	return nil
}

// RequireDatabase fails when no MySQL DSN is configured. Every command except
// an in-memory serve needs one.
func (c Config) RequireDatabase() error {
	if c.DatabaseDSN == "" {
		return ErrDatabaseMissing
	}
	return nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}
