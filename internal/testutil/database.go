// Package testutil provides shared helpers for tests: an in-memory database,
// fluent row builders, request helpers, and a mock market client.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/stockpilot/backend/internal/database"

	_ "modernc.org/sqlite"
)

// SetupTestDB creates an in-memory SQLite database with the full schema
// applied. The connection pool is capped at one connection so every query sees
// the same in-memory database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// CountRows returns the number of rows in a table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}

// AssertRowCount fails the test when a table does not hold the expected number
// of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	if count := CountRows(t, db, table); count != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, count)
	}
}
