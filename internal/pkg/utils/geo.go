package utils

import (
	"fmt"
	"math"

	"github.com/tripautostrade/area-directory/internal/domain"
)

// earthRadiusM - средний радиус Земли в метрах
const earthRadiusM = 6371000.0

func toRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// HaversineDistance вычисляет расстояние по большому кругу между двумя точками в метрах
func HaversineDistance(a, b domain.GeoPoint) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// asin is undefined above 1; rounding can push h there for antipodal points
	return 2 * earthRadiusM * math.Asin(math.Min(1, math.Sqrt(h)))
}

// FormatDistance форматирует расстояние: "850 m" до километра, "12.3 km" дальше
func FormatDistance(meters float64) string {
	if meters < 0 || math.IsNaN(meters) {
		meters = 0
	}

	rounded := math.Round(meters)
	if rounded < 1000 {
		return fmt.Sprintf("%d m", int(rounded))
	}

	return fmt.Sprintf("%.1f km", meters/1000)
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius проверяет валидность радиуса (0.1 - 1000 км)
func ValidateRadius(radiusKm float64) bool {
	return radiusKm >= 0.1 && radiusKm <= 1000
}
