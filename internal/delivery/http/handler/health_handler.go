package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tripautostrade/area-directory/internal/pkg/utils"
	"github.com/tripautostrade/area-directory/internal/usecase"
	"github.com/tripautostrade/area-directory/internal/usecase/dto"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Pinger - зависимость, доступность которой проверяет health
type Pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	areaUC   *usecase.AreaUseCase
	redis    Pinger
	database Pinger
	logger   *zap.Logger
}

// NewHealthHandler - database может быть nil, если источник не PostgreSQL
func NewHealthHandler(areaUC *usecase.AreaUseCase, redis, database Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		areaUC:   areaUC,
		redis:    redis,
		database: database,
		logger:   logger,
	}
}

// Health godoc
// @Summary Состояние сервиса
// @Description Liveness и состояние каталога. Недоступность Redis не делает сервис нездоровым: каталог работает без снимка. Недоступность PostgreSQL тоже: каталог отдаёт последний список.
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.HealthResponse}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	return utils.SendSuccess(c, dto.HealthResponse{
		Status:    "healthy",
		Directory: h.areaUC.State(),
		Redis:     h.check(ctx, "redis", h.redis),
		Database:  h.check(ctx, "postgres", h.database),
	}, nil)
}

func (h *HealthHandler) check(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Health(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
		return "down"
	}
	return "up"
}
