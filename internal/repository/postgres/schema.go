package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// QuoteTable quotes a possibly schema-qualified table name ("public.service_areas").
func QuoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// Migrate creates the service areas table when it does not exist.
func (db *DB) Migrate(ctx context.Context, table string) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			brand      TEXT NOT NULL,
			latitude   DOUBLE PRECISION NOT NULL,
			longitude  DOUBLE PRECISION NOT NULL,
			highway    TEXT,
			direction  TEXT,
			km         DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, QuoteTable(table))

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}

	db.logger.Info("Schema ready", zap.String("table", table))
	return nil
}
