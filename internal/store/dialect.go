package store

import (
	"fmt"
	"strings"
)

// dialect abstracts the SQL differences between Postgres and SQLite that
// the stores actually hit: placeholder style, row locking, and period
// truncation for analytics grouping.
type dialect interface {
	Name() string
	// Rebind converts ?-style placeholders to the dialect's native form.
	Rebind(query string) string
	// LockClause returns a row-locking suffix for SELECT inside a
	// transaction, or empty where the engine serializes writers anyway.
	LockClause() string
	// PeriodExpr returns an expression producing a textual time bucket for
	// the created_at column at the given granularity (hour, day, week,
	// month).
	PeriodExpr(granularity string) string
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Rebind(query string) string { return query }

// SQLite runs on a single connection, so transactions already serialize.
func (sqliteDialect) LockClause() string { return "" }

func (sqliteDialect) PeriodExpr(granularity string) string {
	switch granularity {
	case "hour":
		return "strftime('%Y-%m-%d %H:00', created_at)"
	case "week":
		// Monday of the week containing created_at.
		return "date(created_at, 'weekday 0', '-6 days')"
	case "month":
		return "strftime('%Y-%m', created_at)"
	default:
		return "strftime('%Y-%m-%d', created_at)"
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (postgresDialect) LockClause() string { return " FOR UPDATE" }

func (postgresDialect) PeriodExpr(granularity string) string {
	// created_at is RFC3339 text; cast before truncating.
	switch granularity {
	case "hour":
		return "TO_CHAR(DATE_TRUNC('hour', created_at::timestamptz), 'YYYY-MM-DD HH24:00')"
	case "week":
		return "TO_CHAR(DATE_TRUNC('week', created_at::timestamptz), 'YYYY-MM-DD')"
	case "month":
		return "TO_CHAR(DATE_TRUNC('month', created_at::timestamptz), 'YYYY-MM')"
	default:
		return "TO_CHAR(DATE_TRUNC('day', created_at::timestamptz), 'YYYY-MM-DD')"
	}
}
