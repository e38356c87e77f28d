package queries_test

import (
	"context"
	"testing"
	"time"

	"fleetops/internal/core/application/usecases/queries"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByPublicID(ctx context.Context, publicID kernel.PublicID) (*order.Order, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, publicID kernel.PublicID) (*order.Order, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllDueForDispatch(_ context.Context, _ time.Time) ([]*order.Order, error) {
	return nil, nil
}

// fakeFlow answers flow queries with fixed activities.
type fakeFlow struct {
	next     order.Activity
	waypoint order.Activity
}

func (f fakeFlow) NextActivity(_ *order.Order) (order.Activity, error) { return f.next, nil }

func (f fakeFlow) AfterNextActivity(_ *order.Order) (order.Activity, error) { return f.next, nil }

func (f fakeFlow) WaypointActivity(_ *order.Order, _ *order.Waypoint) (order.Activity, error) {
	return f.waypoint, nil
}

func testActivity(t *testing.T, code order.ActivityCode) order.Activity {
	t.Helper()
	a, err := order.NewActivity(string(code), "", code)
	require.NoError(t, err)
	return a
}

func testOrder(t *testing.T, stops int) *order.Order {
	t.Helper()

	loc, err := kernel.NewLocation(1.3, 103.8)
	require.NoError(t, err)

	var payload *order.Payload
	if stops > 0 {
		waypoints := make([]*order.Waypoint, 0, stops)
		for i := 0; i < stops; i++ {
			place, perr := order.NewPlace("Stop", loc)
			require.NoError(t, perr)
			w, werr := order.NewWaypoint(place, i)
			require.NoError(t, werr)
			waypoints = append(waypoints, w)
		}
		payload, err = order.NewPayload(nil, nil, nil, waypoints, nil)
	} else {
		pickup, perr := order.NewPlace("Pickup", loc)
		require.NoError(t, perr)
		dropoff, derr := order.NewPlace("Dropoff", loc)
		require.NoError(t, derr)
		payload, err = order.NewPayload(&pickup, &dropoff, nil, nil, nil)
	}
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "default", payload)
	require.NoError(t, err)
	return o
}

func TestGetNextActivityQueryHandler_Handle_OrderLevel(t *testing.T) {
	ctx := context.Background()
	o := testOrder(t, 0)
	query, err := queries.NewGetNextActivityQuery(o.PublicID(), "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetByPublicID", mock.Anything, o.PublicID()).Return(o, nil).Once()
	flow := fakeFlow{next: testActivity(t, order.ActivityDispatched)}

	h := queries.NewGetNextActivityQueryHandler(repo, flow)
	resp, err := h.Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, string(order.ActivityDispatched), resp.Code)
	repo.AssertExpectations(t)
}

func TestGetNextActivityQueryHandler_Handle_WaypointScoped(t *testing.T) {
	ctx := context.Background()
	o := testOrder(t, 2)
	target := o.Payload().Waypoints()[1]
	query, err := queries.NewGetNextActivityQuery(o.PublicID(), target.PublicID().String())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetByPublicID", mock.Anything, o.PublicID()).Return(o, nil).Once()
	flow := fakeFlow{
		next:     testActivity(t, order.ActivityCompleted),
		waypoint: testActivity(t, order.ActivityDriverEnRoute),
	}

	h := queries.NewGetNextActivityQueryHandler(repo, flow)
	resp, err := h.Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, string(order.ActivityDriverEnRoute), resp.Code)
}

func TestGetNextActivityQueryHandler_Handle_UnknownWaypoint(t *testing.T) {
	ctx := context.Background()
	o := testOrder(t, 2)
	query, err := queries.NewGetNextActivityQuery(o.PublicID(), "waypoint_nope99")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetByPublicID", mock.Anything, o.PublicID()).Return(o, nil).Once()

	h := queries.NewGetNextActivityQueryHandler(repo, fakeFlow{})
	_, err = h.Handle(ctx, query)

	require.ErrorIs(t, err, order.ErrInvalidDestination)
}

func TestGetNextActivityQueryHandler_Handle_NotConstructed(t *testing.T) {
	h := queries.NewGetNextActivityQueryHandler(new(MockOrderRepository), fakeFlow{})
	_, err := h.Handle(context.Background(), queries.GetNextActivityQuery{})
	require.ErrorIs(t, err, queries.ErrGetNextActivityQueryIsNotConstructed)
}
