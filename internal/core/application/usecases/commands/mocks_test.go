package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/domain/events"
	"fleetops/internal/core/domain/model/driver"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/model/proof"
	"fleetops/internal/core/ports"

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

func (m *MockOrderRepository) GetAllDueForDispatch(ctx context.Context, at time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetByPublicID(_ context.Context, _ kernel.PublicID) (*driver.Driver, error) {
	return nil, errors.New("not implemented in mock")
}

type MockProofRepository struct{ mock.Mock }

func (m *MockProofRepository) Add(ctx context.Context, record *proof.Proof) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockProofRepository) Get(_ context.Context, _ kernel.UUID) (*proof.Proof, error) {
	return nil, errors.New("not implemented in mock")
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) ProofRepository() ports.ProofRepository {
	args := m.Called()
	return args.Get(0).(ports.ProofRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockProofUoWFactory struct{ mock.Mock }

func (m *MockProofUoWFactory) Create() commands.ProofUoW {
	args := m.Called()
	return args.Get(0).(commands.ProofUoW)
}

// fakeFlow answers flow queries with fixed activities.
type fakeFlow struct {
	next      order.Activity
	afterNext order.Activity
}

func (f fakeFlow) NextActivity(_ *order.Order) (order.Activity, error) {
	return f.next, nil
}

func (f fakeFlow) AfterNextActivity(_ *order.Order) (order.Activity, error) {
	return f.afterNext, nil
}

func (f fakeFlow) WaypointActivity(_ *order.Order, _ *order.Waypoint) (order.Activity, error) {
	return f.next, nil
}

// fakePublisher records published events for assertions.
type fakePublisher struct {
	published []events.DomainEvent
}

func (p *fakePublisher) Publish(_ context.Context, event events.DomainEvent) {
	p.published = append(p.published, event)
}

func (p *fakePublisher) names() []string {
	names := make([]string, 0, len(p.published))
	for _, e := range p.published {
		names = append(names, e.Name())
	}
	return names
}

type MockVendorGateway struct{ mock.Mock }

func (m *MockVendorGateway) Dispatch(ctx context.Context, o *order.Order) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

type MockFileStore struct{ mock.Mock }

func (m *MockFileStore) Put(ctx context.Context, name string, data []byte) (ports.StoredFile, error) {
	args := m.Called(ctx, name, data)
	return args.Get(0).(ports.StoredFile), args.Error(1)
}

// test fixtures

func mustActivity(t *testing.T, code order.ActivityCode) order.Activity {
	t.Helper()
	a, err := order.NewActivity(string(code), "", code)
	require.NoError(t, err)
	return a
}

func testLocation(t *testing.T) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(1.3, 103.8)
	require.NoError(t, err)
	return loc
}

func singleLegOrder(t *testing.T) *order.Order {
	t.Helper()

	pickup, err := order.NewPlace("Pickup", testLocation(t))
	require.NoError(t, err)
	dropoff, err := order.NewPlace("Dropoff", testLocation(t))
	require.NoError(t, err)
	e1, err := order.NewEntity("Parcel 1")
	require.NoError(t, err)
	e2, err := order.NewEntity("Parcel 2")
	require.NoError(t, err)
	payload, err := order.NewPayload(&pickup, &dropoff, nil, nil, []*order.Entity{e1, e2})
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "default", payload)
	require.NoError(t, err)
	return o
}

func multiDropOrder(t *testing.T, stops int) *order.Order {
	t.Helper()

	waypoints := make([]*order.Waypoint, 0, stops)
	for i := 0; i < stops; i++ {
		place, err := order.NewPlace("Stop", testLocation(t))
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

// startedOrder rigs an order into a dispatched, started state with a driver.
func startedOrder(t *testing.T, o *order.Order) (*order.Order, kernel.UUID) {
	t.Helper()

	driverID := kernel.NewUUID()
	require.NoError(t, o.AssignDriver(driverID))
	require.NoError(t, o.Dispatch())
	require.NoError(t, o.MarkStarted(time.Now()))
	return o, driverID
}

func testDriver(t *testing.T, id kernel.UUID) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(id, "Alice", testLocation(t))
	require.NoError(t, err)
	return d
}
