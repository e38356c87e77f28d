package kernel_test

import (
	"testing"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("valid coordinates", func(t *testing.T) {
		loc, err := kernel.NewLocation(1.3521, 103.8198)

		require.NoError(t, err)
		assert.InDelta(t, 1.3521, loc.Latitude(), 1e-9)
		assert.InDelta(t, 103.8198, loc.Longitude(), 1e-9)
		assert.False(t, loc.IsZero())
	})

	t.Run("latitude out of range", func(t *testing.T) {
		_, err := kernel.NewLocation(91, 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("longitude out of range", func(t *testing.T) {
		_, err := kernel.NewLocation(0, -181)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("null island is a valid constructed location", func(t *testing.T) {
		loc, err := kernel.NewLocation(0, 0)

		require.NoError(t, err)
		assert.False(t, loc.IsZero())
		require.NoError(t, loc.Validate())
	})
}

func TestLocation_ZeroValue(t *testing.T) {
	var loc kernel.Location

	assert.True(t, loc.IsZero())
	require.Error(t, loc.Validate())
}

func TestLocation_DistanceTo(t *testing.T) {
	singapore, _ := kernel.NewLocation(1.3521, 103.8198)
	kualaLumpur, _ := kernel.NewLocation(3.1390, 101.6869)

	distance := singapore.DistanceTo(kualaLumpur)

	// Roughly 316 km between the two city centers.
	assert.InDelta(t, 316000, distance, 10000)
	assert.Zero(t, singapore.DistanceTo(singapore))
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation(10, 20)
	b, _ := kernel.NewLocation(10, 20)
	c, _ := kernel.NewLocation(10, 21)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(kernel.Location{}))
}
