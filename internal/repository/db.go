package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/preptrack/preptrack-go/internal/repository/migrations"
)

// NewDB opens a MySQL connection pool for dsn and verifies it is reachable.
// Timestamps are read back as UTC time.Time values.
func NewDB(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	// UPDATE reports matched rows rather than changed rows.
	cfg.ClientFoundRows = true

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating mysql connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// MigrateDirection selects which goose command Migrate runs.
type MigrateDirection string

const (
	MigrateUp     MigrateDirection = "up"
	MigrateDown   MigrateDirection = "down"
	MigrateStatus MigrateDirection = "status"
)

var gooseRun = goose.RunContext

// Migrate applies the embedded schema migrations in the given direction.
func Migrate(ctx context.Context, db *sql.DB, direction MigrateDirection, logger zerolog.Logger) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{logger})
	if err := goose.SetDialect("mysql"); err != nil {
		return err
	}

	switch direction {
	case MigrateUp, MigrateDown, MigrateStatus:
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	if err := gooseRun(ctx, string(direction), db, "."); err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}

type gooseLogger struct {
	l zerolog.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Info().Str("component", "goose").Msgf(strings.TrimSuffix(format, "\n"), v...)
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Fatal().Str("component", "goose").Msgf(strings.TrimSuffix(format, "\n"), v...)
}
