// Package store provides persistent storage over database/sql. Postgres
// (lib/pq) backs production deployments; SQLite (modernc.org/sqlite) backs
// local development and tests.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"       // Postgres driver
	_ "modernc.org/sqlite"      // Pure-Go SQLite driver

	"github.com/saymetristan/whaapy-ai/internal/config"
	"github.com/saymetristan/whaapy-ai/internal/logging"
)

// DB wraps a SQL database connection with dialect and migration support.
type DB struct {
	sql     *sql.DB
	dialect dialect
	log     *logging.Logger
}

// Open connects to the store named by cfg.URL and runs migrations.
// A postgres:// or postgresql:// URL selects Postgres; anything else is
// treated as a SQLite path (":memory:" for an in-memory database).
func Open(cfg config.DatabaseConfig, log *logging.Logger) (*DB, error) {
	var (
		d          dialect
		driverName string
	)
	if isPostgresURL(cfg.URL) {
		d = postgresDialect{}
		driverName = "postgres"
	} else {
		d = sqliteDialect{}
		driverName = "sqlite"
	}

	sqlDB, err := sql.Open(driverName, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", d.Name(), err)
	}

	if d.Name() == "sqlite" {
		// SQLite supports one writer at a time; a single connection
		// serializes access and prevents "database is locked" errors.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)

		if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("setting WAL mode: %w", err)
		}
		if _, err := sqlDB.Exec("PRAGMA busy_timeout=10000"); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("setting busy timeout: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	db := &DB{sql: sqlDB, dialect: d, log: log.Sub("store")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connecting to %s: %w", d.Name(), err)
	}

	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	db.log.Info().Str("dialect", d.Name()).Msg("database opened")
	return db, nil
}

func isPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.log.Info().Msg("closing database")
	return db.sql.Close()
}

// Ping verifies store connectivity with a trivial query.
func (db *DB) Ping(ctx context.Context) error {
	var one int
	return db.sql.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

// SQL returns the underlying *sql.DB for direct queries.
func (db *DB) SQL() *sql.DB {
	return db.sql
}

// migrate runs all pending migrations.
func (db *DB) migrate() error {
	if _, err := db.sql.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := db.isMigrationApplied(m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		db.log.Info().Int("version", m.Version).Str("name", m.Name).Msg("applying migration")

		tx, err := db.sql.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}

		if _, err := tx.Exec(
			db.dialect.Rebind("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)"),
			m.Version, now(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func (db *DB) isMigrationApplied(version int) (bool, error) {
	var count int
	err := db.sql.QueryRow(
		db.dialect.Rebind("SELECT COUNT(*) FROM schema_migrations WHERE version = ?"),
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking migration %d: %w", version, err)
	}
	return count > 0, nil
}

// Timestamps are stored as RFC3339 UTC text so both dialects compare and
// group them identically.

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
