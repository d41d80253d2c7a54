package usecase

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/tripautostrade/area-directory/internal/domain"
	"github.com/tripautostrade/area-directory/internal/pkg/errors"
	"github.com/tripautostrade/area-directory/internal/pkg/utils"
	"github.com/tripautostrade/area-directory/internal/usecase/dto"
	"go.uber.org/zap"
)

const (
	defaultNearbyRadiusKm = 50.0
	defaultNearbyLimit    = 20
	sortByDistance        = "distance"
)

// AreaCatalog is the read side of the area directory used by queries.
type AreaCatalog interface {
	Areas() []domain.ServiceArea
	Search(filter domain.SearchFilter) []domain.ServiceArea
	Get(id int64) (domain.ServiceArea, bool)
	State() domain.DirectoryState
	Err() error
	Refresh(ctx context.Context) error
}

type AreaUseCase struct {
	catalog AreaCatalog
	logger  *zap.Logger
}

func NewAreaUseCase(catalog AreaCatalog, logger *zap.Logger) *AreaUseCase {
	return &AreaUseCase{
		catalog: catalog,
		logger:  logger,
	}
}

// List - поиск по названию и фильтр по бренду, с расстоянием от точки если она задана
func (uc *AreaUseCase) List(req dto.ListAreasRequest) (*dto.AreaListResponse, error) {
	if err := uc.catalog.Err(); err != nil {
		return nil, err
	}

	var origin *domain.GeoPoint
	if req.Lat != nil && req.Lon != nil {
		if !utils.ValidateCoordinates(*req.Lat, *req.Lon) {
			return nil, errors.ErrInvalidCoordinates
		}
		origin = &domain.GeoPoint{Latitude: *req.Lat, Longitude: *req.Lon}
	}
	if req.Sort == sortByDistance && origin == nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"sort": "distance sort requires lat and lon",
		})
	}

	// state is taken before the search so a concurrent refresh never makes it look fresher
	state := uc.catalog.State()
	areas := uc.catalog.Search(domain.SearchFilter{Query: req.Query, Brand: brandFilter(req.Brand)})

	views := make([]dto.AreaView, 0, len(areas))
	for _, a := range areas {
		views = append(views, toAreaView(a, origin))
	}

	if req.Sort == sortByDistance {
		slices.SortStableFunc(views, func(a, b dto.AreaView) int {
			switch {
			case *a.DistanceM < *b.DistanceM:
				return -1
			case *a.DistanceM > *b.DistanceM:
				return 1
			}
			return 0
		})
	}

	total := len(views)
	if req.Limit > 0 && len(views) > req.Limit {
		views = views[:req.Limit]
	}

	return &dto.AreaListResponse{
		Areas: views,
		Total: total,
		State: state,
	}, nil
}

// Nearby - areas в радиусе от точки, ближайшие первыми
func (uc *AreaUseCase) Nearby(req dto.NearbyAreasRequest) (*dto.AreaListResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	if req.RadiusKm == 0 {
		req.RadiusKm = defaultNearbyRadiusKm
	}
	if !utils.ValidateRadius(req.RadiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	if req.Limit == 0 {
		req.Limit = defaultNearbyLimit
	}

	if err := uc.catalog.Err(); err != nil {
		return nil, err
	}

	state := uc.catalog.State()
	origin := domain.GeoPoint{Latitude: req.Lat, Longitude: req.Lon}
	radiusM := req.RadiusKm * 1000

	views := make([]dto.AreaView, 0)
	for _, a := range uc.catalog.Search(domain.SearchFilter{Brand: brandFilter(req.Brand)}) {
		v := toAreaView(a, &origin)
		if *v.DistanceM <= radiusM {
			views = append(views, v)
		}
	}

	slices.SortStableFunc(views, func(a, b dto.AreaView) int {
		switch {
		case *a.DistanceM < *b.DistanceM:
			return -1
		case *a.DistanceM > *b.DistanceM:
			return 1
		}
		return 0
	})

	total := len(views)
	if len(views) > req.Limit {
		views = views[:req.Limit]
	}

	return &dto.AreaListResponse{
		Areas: views,
		Total: total,
		State: state,
	}, nil
}

// GetByID - карточка area di servizio
func (uc *AreaUseCase) GetByID(id int64, req dto.AreaDetailRequest) (*dto.AreaView, error) {
	var origin *domain.GeoPoint
	if req.Lat != nil && req.Lon != nil {
		if !utils.ValidateCoordinates(*req.Lat, *req.Lon) {
			return nil, errors.ErrInvalidCoordinates
		}
		origin = &domain.GeoPoint{Latitude: *req.Lat, Longitude: *req.Lon}
	}

	area, ok := uc.catalog.Get(id)
	if !ok {
		if err := uc.catalog.Err(); err != nil {
			return nil, err
		}
		return nil, errors.ErrAreaNotFound
	}

	view := toAreaView(area, origin)
	return &view, nil
}

// Brands returns the brand vocabulary with pin colours, followed by brands
// outside the vocabulary that appear in the current list (source order).
func (uc *AreaUseCase) Brands() []dto.BrandView {
	brands := domain.KnownBrands()
	result := make([]dto.BrandView, 0, len(brands))
	for _, b := range brands {
		result = append(result, dto.BrandView{Name: b, Color: b.Color()})
	}

	seen := make(map[domain.Brand]bool)
	for _, a := range uc.catalog.Areas() {
		if a.Brand == "" || a.Brand.IsKnown() || seen[a.Brand] {
			continue
		}
		seen[a.Brand] = true
		result = append(result, dto.BrandView{Name: a.Brand, Color: a.Brand.Color()})
	}
	return result
}

// brandFilter - пустой параметр brand означает "все бренды"
func brandFilter(brand string) string {
	if strings.TrimSpace(brand) == "" {
		return domain.BrandAll
	}
	return brand
}

// Distance - расстояние по большому кругу между двумя точками
func (uc *AreaUseCase) Distance(req dto.DistanceRequest) (*dto.DistanceResponse, error) {
	if !utils.ValidateCoordinates(req.FromLat, req.FromLon) || !utils.ValidateCoordinates(req.ToLat, req.ToLon) {
		return nil, errors.ErrInvalidCoordinates
	}

	meters := utils.HaversineDistance(
		domain.GeoPoint{Latitude: req.FromLat, Longitude: req.FromLon},
		domain.GeoPoint{Latitude: req.ToLat, Longitude: req.ToLon},
	)

	return &dto.DistanceResponse{
		Meters: meters,
		Text:   utils.FormatDistance(meters),
	}, nil
}

// Refresh triggers a manual refresh. A failed fetch is reported as not refreshed
// unless no data can be shown at all.
func (uc *AreaUseCase) Refresh(ctx context.Context) (*dto.RefreshResponse, error) {
	err := uc.catalog.Refresh(ctx)
	if err != nil {
		uc.logger.Warn("Manual refresh failed", zap.Error(err))
		if appErr := uc.catalog.Err(); appErr != nil {
			return nil, appErr
		}
	}

	return &dto.RefreshResponse{
		Refreshed: err == nil,
		State:     uc.catalog.State(),
	}, nil
}

// State returns the current directory state.
func (uc *AreaUseCase) State() domain.DirectoryState {
	return uc.catalog.State()
}

func toAreaView(a domain.ServiceArea, origin *domain.GeoPoint) dto.AreaView {
	v := dto.AreaView{
		ID:         a.ID,
		Name:       a.Name,
		Brand:      a.Brand,
		BrandColor: a.Brand.Color(),
		Location:   a.Location,
		Highway:    a.Highway,
		Direction:  a.Direction,
		Km:         a.Km,
		Info:       infoLine(a),
	}

	if origin != nil {
		d := utils.HaversineDistance(*origin, a.Location)
		v.DistanceM = &d
		v.DistanceText = utils.FormatDistance(d)
	}

	return v
}

// infoLine builds "A1 · Km 260.5" from whichever parts are present.
func infoLine(a domain.ServiceArea) string {
	parts := make([]string, 0, 2)
	if a.Highway != nil && *a.Highway != "" {
		parts = append(parts, *a.Highway)
	}
	if a.Km != nil {
		parts = append(parts, "Km "+strconv.FormatFloat(*a.Km, 'f', -1, 64))
	}
	return strings.Join(parts, " · ")
}
