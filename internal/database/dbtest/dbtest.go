// Package dbtest opens the integration-test database. Tests that call
// Open are skipped when PostgreSQL is not reachable.
package dbtest

import (
	"context"
	"database/sql"
	"net"
	"net/url"
	"os"
	"testing"

	"pressroom/internal/database"
)

// DSN builds the test connection string from the POSTGRES_* variables,
// falling back to the development defaults.
func DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(env("POSTGRES_USER", "pressroom"), env("POSTGRES_PASSWORD", "changeme")),
		Host:     net.JoinHostPort(env("POSTGRES_HOST", "localhost"), env("POSTGRES_PORT", "5432")),
		Path:     env("POSTGRES_DB", "pressroom"),
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Open connects to the test database and applies migrations. The pool is
// closed when the test ends.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Connect(ctx, DSN())
	if err != nil {
		t.Skipf("skipping integration test: PostgreSQL not reachable: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
