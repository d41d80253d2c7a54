package testhelpers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/tripautostrade/area-directory/internal/repository/postgres"
	"go.uber.org/zap"
)

// TestDB represents a test database connection
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
	// Table is unique per test so parallel packages do not collide
	Table string
}

// SetupTestDB connects to the test database and creates a fresh service areas table.
// The test is skipped when no database is reachable.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5433"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "areas_test"),
		getEnv("TEST_DB_SSLMODE", "disable"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", connStr)
	if err != nil {
		t.Skipf("Postgres not available for integration tests: %v", err)
	}

	tdb := &TestDB{
		DB:     db,
		Logger: zap.NewNop(),
		Table:  "service_areas_" + strings.ReplaceAll(uuid.NewString()[:8], "-", ""),
	}

	if err := tdb.PG().Migrate(context.Background(), tdb.Table); err != nil {
		db.Close()
		t.Fatalf("Failed to create test table: %v", err)
	}

	t.Cleanup(func() {
		_, _ = db.Exec("DROP TABLE IF EXISTS " + postgres.QuoteTable(tdb.Table))
		db.Close()
	})

	return tdb
}

// PG wraps the connection into the repository DB type
func (tdb *TestDB) PG() *postgres.DB {
	return postgres.NewDBForTest(tdb.DB, tdb.Logger)
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
