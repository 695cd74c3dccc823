package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"pharmacy/m/internal/apperror"
	"pharmacy/m/internal/config"
)

const probeTimeout = 5 * time.Second

// Open prepares a handle for the configured target. It does not contact the
// store; use Probe for that.
func Open(cfg config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName(cfg.Driver), cfg.Connection)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	if cfg.Driver != config.DriverPostgres {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Probe checks once that the store is reachable.
func Probe(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return apperror.Wrap(apperror.CodeConnectivity, "database unreachable", err)
	}
	return nil
}

// Classify wraps a driver error as a connectivity error or a storage fault.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isConnectivity(err) {
		return apperror.Wrap(apperror.CodeConnectivity, op, err)
	}
	return apperror.Wrap(apperror.CodeStorage, op, err)
}

func isConnectivity(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func driverName(driver string) string {
	if driver == config.DriverPostgres {
		return "pgx"
	}
	return "sqlite"
}
