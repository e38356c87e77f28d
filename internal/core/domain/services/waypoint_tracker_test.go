package services_test

import (
	"testing"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMultiDropOrder(t *testing.T, stops int) *order.Order {
	t.Helper()

	waypoints := make([]*order.Waypoint, 0, stops)
	for i := 0; i < stops; i++ {
		loc, err := kernel.NewLocation(1.30+float64(i)*0.01, 103.85)
		require.NoError(t, err)
		place, err := order.NewPlace("Stop", loc)
		require.NoError(t, err)
		w, err := order.NewWaypoint(place, i)
		require.NoError(t, err)
		waypoints = append(waypoints, w)
	}
	payload, err := order.NewPayload(nil, nil, nil, waypoints, nil)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "default", payload)
	require.NoError(t, err)
	return o
}

func activityEntry(t *testing.T, code order.ActivityCode) order.ActivityEntry {
	t.Helper()

	loc, err := kernel.NewLocation(1.3, 103.8)
	require.NoError(t, err)
	activity, err := order.NewActivity("Update", "", code)
	require.NoError(t, err)
	entry, err := order.NewActivityEntry(activity, loc, nil, time.Now())
	require.NoError(t, err)
	return entry
}

func TestWaypointTracker_IsMultiDrop(t *testing.T) {
	tracker := services.NewWaypointTracker()

	assert.True(t, tracker.IsMultiDrop(newMultiDropOrder(t, 2)))
	assert.False(t, tracker.IsMultiDrop(newSingleLegOrder(t)))
	assert.False(t, tracker.IsMultiDrop(newMultiDropOrder(t, 1)))
}

func TestWaypointTracker_AllTerminal(t *testing.T) {
	tracker := services.NewWaypointTracker()

	t.Run("vacuously true without waypoints", func(t *testing.T) {
		assert.True(t, tracker.AllTerminal(newSingleLegOrder(t)))
	})

	t.Run("false while stops remain", func(t *testing.T) {
		o := newMultiDropOrder(t, 2)
		o.Payload().Waypoints()[0].RecordActivity(activityEntry(t, order.ActivityCompleted))

		assert.False(t, tracker.AllTerminal(o))
	})

	t.Run("canceled stop is not terminal", func(t *testing.T) {
		o := newMultiDropOrder(t, 2)
		o.Payload().Waypoints()[0].RecordActivity(activityEntry(t, order.ActivityCompleted))
		o.Payload().Waypoints()[1].RecordActivity(activityEntry(t, order.ActivityCanceled))

		assert.False(t, tracker.AllTerminal(o))
	})

	t.Run("true when every stop completed", func(t *testing.T) {
		o := newMultiDropOrder(t, 2)
		o.Payload().Waypoints()[0].RecordActivity(activityEntry(t, order.ActivityCompleted))
		o.Payload().Waypoints()[1].RecordActivity(activityEntry(t, order.ActivityCompleted))

		assert.True(t, tracker.AllTerminal(o))
	})
}

func TestWaypointTracker_SetFirstWaypoint(t *testing.T) {
	tracker := services.NewWaypointTracker()

	t.Run("seeds first pending stop", func(t *testing.T) {
		o := newMultiDropOrder(t, 3)

		require.NoError(t, tracker.SetFirstWaypoint(o))

		current := o.Payload().CurrentWaypoint()
		require.NotNil(t, current)
		assert.True(t, current.ID().IsEqual(o.Payload().Waypoints()[0].ID()))
	})

	t.Run("keeps an existing pointer", func(t *testing.T) {
		o := newMultiDropOrder(t, 3)
		require.NoError(t, o.Payload().SetCurrentWaypoint(o.Payload().Waypoints()[2]))

		require.NoError(t, tracker.SetFirstWaypoint(o))

		assert.True(t, o.Payload().CurrentWaypoint().ID().IsEqual(o.Payload().Waypoints()[2].ID()))
	})

	t.Run("no-op on single leg", func(t *testing.T) {
		o := newSingleLegOrder(t)

		require.NoError(t, tracker.SetFirstWaypoint(o))
		assert.Nil(t, o.Payload().CurrentWaypointID())
	})
}

func TestWaypointTracker_RecordCurrentWaypointActivity(t *testing.T) {
	tracker := services.NewWaypointTracker()

	t.Run("records on current stop", func(t *testing.T) {
		o := newMultiDropOrder(t, 2)
		require.NoError(t, tracker.SetFirstWaypoint(o))

		tracker.RecordCurrentWaypointActivity(o, activityEntry(t, order.ActivityCompleted))

		assert.Equal(t, order.WaypointCompleted, o.Payload().Waypoints()[0].Status())
		assert.Equal(t, order.WaypointPending, o.Payload().Waypoints()[1].Status())
	})

	t.Run("no-op without pointer", func(t *testing.T) {
		o := newMultiDropOrder(t, 2)

		tracker.RecordCurrentWaypointActivity(o, activityEntry(t, order.ActivityCompleted))

		assert.Equal(t, order.WaypointPending, o.Payload().Waypoints()[0].Status())
	})
}

func TestWaypointTracker_AdvanceToNextWaypoint(t *testing.T) {
	tracker := services.NewWaypointTracker()

	t.Run("advances past completed stops", func(t *testing.T) {
		o := newMultiDropOrder(t, 3)
		require.NoError(t, tracker.SetFirstWaypoint(o))
		tracker.RecordCurrentWaypointActivity(o, activityEntry(t, order.ActivityCompleted))

		next, err := tracker.AdvanceToNextWaypoint(o)

		require.NoError(t, err)
		require.NotNil(t, next)
		assert.True(t, next.ID().IsEqual(o.Payload().Waypoints()[1].ID()))
		assert.True(t, o.Payload().CurrentWaypoint().ID().IsEqual(next.ID()))
	})

	t.Run("clears pointer when sequence exhausted", func(t *testing.T) {
		o := newMultiDropOrder(t, 2)
		o.Payload().Waypoints()[0].RecordActivity(activityEntry(t, order.ActivityCompleted))
		o.Payload().Waypoints()[1].RecordActivity(activityEntry(t, order.ActivityCompleted))
		require.NoError(t, o.Payload().SetCurrentWaypoint(o.Payload().Waypoints()[1]))

		next, err := tracker.AdvanceToNextWaypoint(o)

		require.NoError(t, err)
		assert.Nil(t, next)
		assert.Nil(t, o.Payload().CurrentWaypointID())
	})
}
