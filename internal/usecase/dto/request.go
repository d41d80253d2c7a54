package dto

// ListAreasRequest - запрос списка areas di servizio с поиском и фильтром по бренду
type ListAreasRequest struct {
	Query string   `query:"q" json:"q" validate:"omitempty,max=100"`
	Brand string   `query:"brand" json:"brand" validate:"omitempty,max=50"`
	Lat   *float64 `query:"lat" json:"lat,omitempty" validate:"required_with=Lon,omitempty,min=-90,max=90"`
	Lon   *float64 `query:"lon" json:"lon,omitempty" validate:"required_with=Lat,omitempty,min=-180,max=180"`
	Sort  string   `query:"sort" json:"sort" validate:"omitempty,oneof=source distance"`
	Limit int      `query:"limit" json:"limit" validate:"omitempty,min=1,max=1000"`
}

// NearbyAreasRequest - запрос ближайших areas di servizio в радиусе
type NearbyAreasRequest struct {
	Lat      float64 `query:"lat" json:"lat" validate:"min=-90,max=90"`
	Lon      float64 `query:"lon" json:"lon" validate:"min=-180,max=180"`
	RadiusKm float64 `query:"radius_km" json:"radius_km" validate:"omitempty,min=0.1,max=1000"`
	Brand    string  `query:"brand" json:"brand" validate:"omitempty,max=50"`
	Limit    int     `query:"limit" json:"limit" validate:"omitempty,min=1,max=500"`
}

// AreaDetailRequest - точка отсчёта для расстояния в карточке area
type AreaDetailRequest struct {
	Lat *float64 `query:"lat" json:"lat,omitempty" validate:"required_with=Lon,omitempty,min=-90,max=90"`
	Lon *float64 `query:"lon" json:"lon,omitempty" validate:"required_with=Lat,omitempty,min=-180,max=180"`
}

// DistanceRequest - расстояние между двумя точками
type DistanceRequest struct {
	FromLat float64 `query:"from_lat" json:"from_lat"`
	FromLon float64 `query:"from_lon" json:"from_lon"`
	ToLat   float64 `query:"to_lat" json:"to_lat"`
	ToLon   float64 `query:"to_lon" json:"to_lon"`
}
