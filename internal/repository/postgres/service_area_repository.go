package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tripautostrade/area-directory/internal/domain"
	"github.com/tripautostrade/area-directory/internal/domain/repository"
	"go.uber.org/zap"
)

// ServiceAreaRepository читает и пишет таблицу areas di servizio
type ServiceAreaRepository interface {
	repository.AreaSource
	repository.AreaWriter
}

type serviceAreaRepository struct {
	db     *sqlx.DB
	table  string
	logger *zap.Logger
}

func NewServiceAreaRepository(db *DB, table string) ServiceAreaRepository {
	return &serviceAreaRepository{
		db:     db.DB,
		table:  QuoteTable(table),
		logger: db.logger,
	}
}

func (r *serviceAreaRepository) FetchAll(ctx context.Context) ([]domain.ServiceArea, error) {
	query := fmt.Sprintf(`
		SELECT id, name, brand, latitude, longitude, highway, direction, km
		FROM %s
		ORDER BY id
	`, r.table)

	var rows []domain.ServiceAreaRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("Failed to fetch service areas", zap.Error(err))
		return nil, fmt.Errorf("fetch service areas: %w", err)
	}

	areas := make([]domain.ServiceArea, 0, len(rows))
	for _, row := range rows {
		areas = append(areas, row.ToServiceArea())
	}

	r.logger.Debug("Fetched service areas", zap.Int("count", len(areas)))
	return areas, nil
}

func (r *serviceAreaRepository) InsertBatch(ctx context.Context, rows []domain.ServiceAreaRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	// sqlx expands the VALUES tuple once per row; it must end the statement
	query := fmt.Sprintf(`INSERT INTO %s (name, brand, latitude, longitude, highway, direction, km)
		VALUES (:name, :brand, :latitude, :longitude, :highway, :direction, :km)`, r.table)

	res, err := r.db.NamedExecContext(ctx, query, rows)
	if err != nil {
		r.logger.Error("Failed to insert service areas", zap.Int("rows", len(rows)), zap.Error(err))
		return 0, fmt.Errorf("insert service areas: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return len(rows), nil
	}
	return int(n), nil
}
