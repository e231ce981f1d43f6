package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/MenteSana-Clinic/intake-service/internal/db"
)

// SetupTestDB connects to the local test database and applies the
// schema. Override the connection with TEST_DB_* variables.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		testEnv("TEST_DB_HOST", "localhost"),
		testEnv("TEST_DB_PORT", "5432"),
		testEnv("TEST_DB_USER", "postgres"),
		testEnv("TEST_DB_PASSWORD", "postgres"),
		testEnv("TEST_DB_NAME", "intake_test"),
	)

	database, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := database.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if err := db.Migrate(context.Background(), database); err != nil {
		t.Fatalf("Failed to apply schema to test database: %v", err)
	}

	return database
}

// SetupTestTransaction creates a test database connection and begins a transaction
// The transaction is automatically rolled back when the test ends
// This ensures test isolation without needing cleanup
func SetupTestTransaction(t *testing.T) (*sql.DB, *sql.Tx) {
	t.Helper()

	database := SetupTestDB(t)

	tx, err := database.BeginTx(context.Background(), nil)
	if err != nil {
		database.Close()
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		tx.Rollback()
		database.Close()
	})

	return database, tx
}

// CleanupTestDB cleans up test data from the database
// Use this if you're not using transactions
func CleanupTestDB(t *testing.T, database *sql.DB) {
	t.Helper()

	for _, table := range []string{"patients", "users"} {
		if _, err := database.Exec("TRUNCATE TABLE " + table + " CASCADE"); err != nil {
			t.Logf("Warning: Failed to clean up %s: %v", table, err)
		}
	}
}

func testEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
