// Package database owns the lifecycle of the backing stores: it opens,
// configures, and verifies the MariaDB pool and the Redis client at
// startup, and applies pending schema migrations. Both connections are
// created once and handed to the rest of the application through
// dependency injection.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// Registers the "mysql" driver with database/sql.
	_ "github.com/go-sql-driver/mysql"

	"github.com/keyxmakerx/unical/internal/config"
)

// pingTimeout bounds each individual connectivity probe.
const pingTimeout = 5 * time.Second

// maxConnectAttempts is how many times startup waits for MariaDB.
// Container orchestrators frequently start the app before the database
// accepts connections; retrying here avoids a crash-loop.
const maxConnectAttempts = 10

// NewMariaDB opens a MariaDB connection pool with the configured limits
// and waits for the server to accept connections, backing off
// exponentially between attempts.
func NewMariaDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening mariadb connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := awaitReady(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// awaitReady pings the pool until it answers or the attempt budget runs
// out. The backoff doubles per attempt, capped at 30 seconds.
func awaitReady(db *sql.DB) error {
	backoff := time.Second
	var pingErr error

	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		pingErr = db.PingContext(ctx)
		cancel()

		if pingErr == nil {
			return nil
		}
		if attempt == maxConnectAttempts {
			break
		}

		slog.Warn("mariadb not ready, retrying...",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", maxConnectAttempts),
			slog.Duration("backoff", backoff),
			slog.Any("error", pingErr),
		)
		time.Sleep(backoff)
		backoff = min(backoff*2, 30*time.Second)
	}

	return fmt.Errorf("pinging mariadb after %d attempts: %w", maxConnectAttempts, pingErr)
}
