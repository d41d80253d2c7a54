package domain

// ServiceArea представляет area di servizio на автостраде.
// Запись принадлежит удалённому источнику, клиент её не изменяет.
type ServiceArea struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Brand     Brand    `json:"brand"`
	Location  GeoPoint `json:"location"`
	Highway   *string  `json:"highway,omitempty"`
	Direction *string  `json:"direction,omitempty"`
	Km        *float64 `json:"km,omitempty"`
}

// ServiceAreaRow - плоская строка таблицы service_areas
type ServiceAreaRow struct {
	ID        int64    `json:"id,omitempty" db:"id"`
	Name      string   `json:"name" db:"name"`
	Brand     string   `json:"brand" db:"brand"`
	Latitude  float64  `json:"latitude" db:"latitude"`
	Longitude float64  `json:"longitude" db:"longitude"`
	Highway   *string  `json:"highway,omitempty" db:"highway"`
	Direction *string  `json:"direction,omitempty" db:"direction"`
	Km        *float64 `json:"km,omitempty" db:"km"`
}

// ToServiceArea converts the flat storage row into the domain value.
func (r ServiceAreaRow) ToServiceArea() ServiceArea {
	return ServiceArea{
		ID:    r.ID,
		Name:  r.Name,
		Brand: Brand(r.Brand),
		Location: GeoPoint{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		},
		Highway:   r.Highway,
		Direction: r.Direction,
		Km:        r.Km,
	}
}

// NewServiceAreaRow - новая строка для вставки (ID назначает база)
func NewServiceAreaRow(a ServiceArea) ServiceAreaRow {
	return ServiceAreaRow{
		Name:      a.Name,
		Brand:     string(a.Brand),
		Latitude:  a.Location.Latitude,
		Longitude: a.Location.Longitude,
		Highway:   a.Highway,
		Direction: a.Direction,
		Km:        a.Km,
	}
}
