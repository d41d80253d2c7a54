package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripautostrade/area-directory/internal/domain"
	"github.com/tripautostrade/area-directory/internal/repository/postgres"
	"github.com/tripautostrade/area-directory/internal/repository/postgres/testhelpers"
)

func TestServiceAreaRepository_FetchAll(t *testing.T) {
	tdb := testhelpers.SetupTestDB(t)
	repo := postgres.NewServiceAreaRepository(tdb.PG(), tdb.Table)
	ctx := context.Background()

	t.Run("empty table", func(t *testing.T) {
		areas, err := repo.FetchAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, areas)
	})

	t.Run("rows are mapped into nested locations", func(t *testing.T) {
		tdb.LoadFixtures(t, testhelpers.FixtureAreas())

		areas, err := repo.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, areas, 3)

		assert.Equal(t, "Cantagallo", areas[0].Name)
		assert.Equal(t, domain.BrandAutogrill, areas[0].Brand)
		assert.InDelta(t, 44.023, areas[0].Location.Latitude, 1e-9)
		require.NotNil(t, areas[0].Highway)
		assert.Equal(t, "A1", *areas[0].Highway)
		require.NotNil(t, areas[0].Km)
		assert.InDelta(t, 260.5, *areas[0].Km, 1e-9)

		assert.Nil(t, areas[2].Highway)
		assert.Nil(t, areas[2].Direction)
		assert.Nil(t, areas[2].Km)
	})
}

func TestServiceAreaRepository_InsertBatch(t *testing.T) {
	tdb := testhelpers.SetupTestDB(t)
	repo := postgres.NewServiceAreaRepository(tdb.PG(), tdb.Table)
	ctx := context.Background()

	n, err := repo.InsertBatch(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.InsertBatch(ctx, testhelpers.FixtureAreas())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestQuoteTable(t *testing.T) {
	assert.Equal(t, `"service_areas"`, postgres.QuoteTable("service_areas"))
	assert.Equal(t, `"public"."service_areas"`, postgres.QuoteTable("public.service_areas"))
	assert.Equal(t, `"areas""; drop"`, postgres.QuoteTable(`areas"; drop`))
}
