package db

import (
	"database/sql"
	"testing"
)

// NewTestDB opens an in-memory SQLite database with the wardrobe schema
// applied, cleaned up with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := EnsureSchema(database); err != nil {
		database.Close()
		t.Fatalf("applying test database schema: %v", err)
	}

	t.Cleanup(func() { database.Close() })

	return database
}
