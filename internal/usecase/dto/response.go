package dto

import "github.com/tripautostrade/area-directory/internal/domain"

// AreaView - area di servizio в том виде, в каком её показывает клиент
type AreaView struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Brand      domain.Brand    `json:"brand"`
	BrandColor string          `json:"brand_color"`
	Location   domain.GeoPoint `json:"location"`
	Highway    *string         `json:"highway,omitempty"`
	Direction  *string         `json:"direction,omitempty"`
	Km         *float64        `json:"km,omitempty"`
	// Info - строка "A1 · Km 260.5", пустая если нет ни трассы, ни километра
	Info         string   `json:"info,omitempty"`
	DistanceM    *float64 `json:"distance_m,omitempty"`
	DistanceText string   `json:"distance_text,omitempty"`
}

// AreaListResponse - ответ списка areas
type AreaListResponse struct {
	Areas []AreaView            `json:"areas"`
	Total int                   `json:"total"`
	State domain.DirectoryState `json:"state"`
}

// BrandView - бренд с цветом пина
type BrandView struct {
	Name  domain.Brand `json:"name"`
	Color string       `json:"color"`
}

// DistanceResponse - расстояние между двумя точками
type DistanceResponse struct {
	Meters float64 `json:"meters"`
	Text   string  `json:"text"`
}

// RefreshResponse - результат ручного обновления
type RefreshResponse struct {
	Refreshed bool                  `json:"refreshed"`
	State     domain.DirectoryState `json:"state"`
}

// HealthResponse - состояние сервиса
type HealthResponse struct {
	Status    string                `json:"status"`
	Directory domain.DirectoryState `json:"directory"`
	Redis     string                `json:"redis"`
	Database  string                `json:"database"`
}

// ImportReport - итог импорта GeoJSON
type ImportReport struct {
	TotalFeatures int                  `json:"total_features"`
	ValidRows     int                  `json:"valid_rows"`
	Skipped       int                  `json:"skipped"`
	Inserted      int                  `json:"inserted"`
	FailedChunks  int                  `json:"failed_chunks"`
	Brands        map[domain.Brand]int `json:"brands"`
	DryRun        bool                 `json:"dry_run"`
}
