package domain

// GeoPoint - точка в градусах WGS84
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
