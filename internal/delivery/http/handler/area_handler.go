package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tripautostrade/area-directory/internal/domain"
	"github.com/tripautostrade/area-directory/internal/pkg/errors"
	"github.com/tripautostrade/area-directory/internal/pkg/utils"
	"github.com/tripautostrade/area-directory/internal/pkg/validator"
	"github.com/tripautostrade/area-directory/internal/usecase"
	"github.com/tripautostrade/area-directory/internal/usecase/dto"
	"go.uber.org/zap"
)

// AreaHandler - обработчик запросов к каталогу areas di servizio
type AreaHandler struct {
	areaUC *usecase.AreaUseCase
	logger *zap.Logger
}

// NewAreaHandler - создание нового AreaHandler
func NewAreaHandler(areaUC *usecase.AreaUseCase, logger *zap.Logger) *AreaHandler {
	return &AreaHandler{
		areaUC: areaUC,
		logger: logger,
	}
}

// List godoc
// @Summary Список areas di servizio
// @Description Поиск по названию (без учёта регистра) и фильтр по бренду. Если переданы lat/lon, каждый результат содержит расстояние от точки.
// @Tags Areas
// @Produce json
// @Param q query string false "Подстрока названия"
// @Param brand query string false "Бренд (Autogrill, Chef Express, Sarni, Altro) или ALL"
// @Param lat query number false "Широта точки отсчёта"
// @Param lon query number false "Долгота точки отсчёта"
// @Param sort query string false "Порядок: source или distance" default(source)
// @Param limit query int false "Максимальное количество результатов"
// @Success 200 {object} utils.SuccessResponse{data=dto.AreaListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/areas [get]
func (h *AreaHandler) List(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.ListAreasRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.areaUC.List(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, listMeta(result, req.Limit, start))
}

// Nearby godoc
// @Summary Ближайшие areas di servizio
// @Description Areas в радиусе от точки, отсортированные по расстоянию
// @Tags Areas
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param radius_km query number false "Радиус в километрах (0.1 - 1000)" default(50)
// @Param brand query string false "Бренд или ALL"
// @Param limit query int false "Максимальное количество результатов" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.AreaListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/areas/nearby [get]
func (h *AreaHandler) Nearby(c *fiber.Ctx) error {
	start := time.Now()

	if c.Query("lat") == "" || c.Query("lon") == "" {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"lat": "required",
			"lon": "required",
		}))
	}

	var req dto.NearbyAreasRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.areaUC.Nearby(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, listMeta(result, req.Limit, start))
}

// GetByID godoc
// @Summary Карточка area di servizio
// @Description Детали area: бренд с цветом, трасса и километр, направление, расстояние от точки если переданы lat/lon
// @Tags Areas
// @Produce json
// @Param id path int true "ID area"
// @Param lat query number false "Широта точки отсчёта"
// @Param lon query number false "Долгота точки отсчёта"
// @Success 200 {object} utils.SuccessResponse{data=dto.AreaView}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/areas/{id} [get]
func (h *AreaHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": "must be an integer",
		}))
	}

	var req dto.AreaDetailRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	view, err := h.areaUC.GetByID(int64(id), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, view, nil)
}

// Refresh godoc
// @Summary Обновить каталог
// @Description Принудительно загружает список из удалённого источника. При ошибке и наличии данных возвращает refreshed=false.
// @Tags Areas
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.RefreshResponse}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/areas/refresh [post]
func (h *AreaHandler) Refresh(c *fiber.Ctx) error {
	result, err := h.areaUC.Refresh(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	fresh := result.State.Fresh()
	return utils.SendSuccess(c, result, &utils.Meta{
		Fresh: &fresh,
		State: string(result.State.Status),
	})
}

// Brands godoc
// @Summary Бренды
// @Description Список брендов с цветами пинов
// @Tags Areas
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.BrandView}
// @Router /api/v1/brands [get]
func (h *AreaHandler) Brands(c *fiber.Ctx) error {
	brands := h.areaUC.Brands()
	return utils.SendSuccess(c, brands, &utils.Meta{
		Total: len(brands),
	})
}

// Distance godoc
// @Summary Расстояние между точками
// @Description Расстояние по большому кругу (haversine) и его текстовое представление
// @Tags Geo
// @Produce json
// @Param from_lat query number true "Широта начала"
// @Param from_lon query number true "Долгота начала"
// @Param to_lat query number true "Широта конца"
// @Param to_lon query number true "Долгота конца"
// @Success 200 {object} utils.SuccessResponse{data=dto.DistanceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/distance [get]
func (h *AreaHandler) Distance(c *fiber.Ctx) error {
	missing := make(map[string]interface{})
	for _, key := range []string{"from_lat", "from_lon", "to_lat", "to_lon"} {
		if c.Query(key) == "" {
			missing[key] = "required"
		}
	}
	if len(missing) > 0 {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(missing))
	}

	var req dto.DistanceRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.areaUC.Distance(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func listMeta(result *dto.AreaListResponse, limit int, start time.Time) *utils.Meta {
	fresh := result.State.Fresh()
	return &utils.Meta{
		Total:    result.Total,
		Limit:    limit,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
		Fresh:    &fresh,
		State:    stateLabel(result.State),
	}
}

// stateLabel - "ready", "ready:cached", "loading" и т.д.
func stateLabel(s domain.DirectoryState) string {
	if s.Status == domain.StatusReady && s.FromCache {
		return string(s.Status) + ":cached"
	}
	return string(s.Status)
}
