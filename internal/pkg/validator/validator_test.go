package validator

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripautostrade/area-directory/internal/pkg/errors"
)

type point struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

func TestValidate(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		assert.NoError(t, Validate(&point{Lat: 45, Lon: 9}))
	})

	t.Run("field errors become INVALID_REQUEST", func(t *testing.T) {
		err := Validate(&point{Lat: 95, Lon: 9})
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrInvalidRequest))

		var appErr *errors.AppError
		require.True(t, stderrors.As(err, &appErr))
		assert.Equal(t, "max", appErr.Details["Lat"])
	})
}
