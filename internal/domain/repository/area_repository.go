package repository

import (
	"context"

	"github.com/tripautostrade/area-directory/internal/domain"
)

// AreaSource - удалённый источник истины для списка areas di servizio
type AreaSource interface {
	// FetchAll возвращает все записи в порядке источника
	FetchAll(ctx context.Context) ([]domain.ServiceArea, error)
}

// AreaWriter записывает новые области (используется импортёром)
type AreaWriter interface {
	// InsertBatch вставляет пакет строк и возвращает количество вставленных
	InsertBatch(ctx context.Context, rows []domain.ServiceAreaRow) (int, error)
}
