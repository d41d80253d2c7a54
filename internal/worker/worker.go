package worker

import (
	"context"
)

// Worker - фоновая задача с управляемым жизненным циклом
type Worker interface {
	// Start блокирует до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру о завершении
	Stop() error

	// Name возвращает имя воркера
	Name() string
}
