package testhelpers

import (
	"context"
	"testing"

	"github.com/tripautostrade/area-directory/internal/domain"
	"github.com/tripautostrade/area-directory/internal/repository/postgres"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// FixtureAreas returns the three stations shipped with the first app release.
func FixtureAreas() []domain.ServiceAreaRow {
	return []domain.ServiceAreaRow{
		{Name: "Cantagallo", Brand: "Autogrill", Latitude: 44.023, Longitude: 11.124, Highway: strPtr("A1"), Direction: strPtr("Milano → Bologna"), Km: floatPtr(260.5)},
		{Name: "Secchia Ovest", Brand: "Chef Express", Latitude: 44.679, Longitude: 10.639, Highway: strPtr("A1")},
		{Name: "Villoresi Ovest", Brand: "Autogrill", Latitude: 45.570, Longitude: 9.025},
	}
}

// LoadFixtures inserts rows into the test table
func (tdb *TestDB) LoadFixtures(t *testing.T, rows []domain.ServiceAreaRow) {
	t.Helper()

	repo := postgres.NewServiceAreaRepository(tdb.PG(), tdb.Table)
	if _, err := repo.InsertBatch(context.Background(), rows); err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
}
