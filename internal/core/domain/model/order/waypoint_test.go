package order_test

import (
	"testing"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waypointEntry(t *testing.T, code order.ActivityCode) order.ActivityEntry {
	t.Helper()

	loc, err := kernel.NewLocation(1.3, 103.8)
	require.NoError(t, err)
	activity, err := order.NewActivity("Update", "", code)
	require.NoError(t, err)
	entry, err := order.NewActivityEntry(activity, loc, nil, time.Now())
	require.NoError(t, err)
	return entry
}

func TestNewWaypoint(t *testing.T) {
	place := testPlace(t, "Stop")

	w, err := order.NewWaypoint(place, 0)

	require.NoError(t, err)
	assert.Equal(t, order.WaypointPending, w.Status())
	assert.Equal(t, "waypoint", w.PublicID().Type())
	assert.Empty(t, w.Activities())

	t.Run("negative sequence", func(t *testing.T) {
		_, err := order.NewWaypoint(place, -1)
		require.Error(t, err)
	})

	t.Run("zero place", func(t *testing.T) {
		_, err := order.NewWaypoint(order.Place{}, 0)
		require.Error(t, err)
	})
}

func TestWaypoint_RecordActivity(t *testing.T) {
	t.Run("progress activity marks en route", func(t *testing.T) {
		w, _ := order.NewWaypoint(testPlace(t, "Stop"), 0)

		w.RecordActivity(waypointEntry(t, order.ActivityDriverEnRoute))

		assert.Equal(t, order.WaypointEnRoute, w.Status())
		assert.Len(t, w.Activities(), 1)
	})

	t.Run("completed activity completes the stop", func(t *testing.T) {
		w, _ := order.NewWaypoint(testPlace(t, "Stop"), 0)

		w.RecordActivity(waypointEntry(t, order.ActivityCompleted))

		assert.Equal(t, order.WaypointCompleted, w.Status())
	})

	t.Run("canceled activity cancels the stop", func(t *testing.T) {
		w, _ := order.NewWaypoint(testPlace(t, "Stop"), 0)

		w.RecordActivity(waypointEntry(t, order.ActivityCanceled))

		assert.Equal(t, order.WaypointCanceled, w.Status())
	})
}

func TestWaypointStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.WaypointPending.IsTerminal())
	assert.False(t, order.WaypointEnRoute.IsTerminal())
	assert.True(t, order.WaypointCompleted.IsTerminal())

	// A canceled stop still blocks order completion.
	assert.False(t, order.WaypointCanceled.IsTerminal())
}

func TestWaypointStatus_Validate(t *testing.T) {
	require.NoError(t, order.WaypointPending.Validate())
	require.Error(t, order.WaypointStatus("SHIPPED").Validate())
}

func TestWaypoint_MatchesRef(t *testing.T) {
	w, _ := order.NewWaypoint(testPlace(t, "Stop"), 0)

	assert.True(t, w.MatchesRef(w.PublicID()))
	assert.True(t, w.MatchesRef(w.Place().PublicID()))
	assert.False(t, w.MatchesRef(kernel.NewPublicID("waypoint")))
}
