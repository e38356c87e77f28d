package commands_test

import (
	"context"
	"testing"
	"time"

	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteOrderCommandHandler_Handle_IncompleteWaypoints(t *testing.T) {
	ctx := context.Background()
	o := multiDropOrder(t, 3)
	startedOrder(t, o)
	cmd, err := commands.NewCompleteOrderCommand(o.PublicID(), kernel.Location{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("GetForUpdate", mock.Anything, o.PublicID()).Return(o, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := &fakePublisher{}

	h := commands.NewCompleteOrderCommandHandler(factory, publisher)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrIncompleteWaypoints)
	assert.Equal(t, order.Started, o.Status())
	assert.Empty(t, publisher.published)
}

func TestCompleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	o := multiDropOrder(t, 2)
	_, driverID := startedOrder(t, o)
	drv := testDriver(t, driverID)
	require.NoError(t, drv.AssignCurrentJob(o.ID()))

	entry, err := order.NewActivityEntry(mustActivity(t, order.ActivityCompleted), testLocation(t), nil, time.Now())
	require.NoError(t, err)
	o.Payload().Waypoints()[0].RecordActivity(entry)
	o.Payload().Waypoints()[1].RecordActivity(entry)

	cmd, _ := commands.NewCompleteOrderCommand(o.PublicID(), kernel.Location{})

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("GetForUpdate", mock.Anything, o.PublicID()).Return(o, nil).Once()
	orderRepo.On("Update", mock.Anything, o).Return(nil).Once()
	driverRepo.On("Get", mock.Anything, driverID).Return(drv, nil).Once()
	driverRepo.On("Update", mock.Anything, drv).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := &fakePublisher{}

	h := commands.NewCompleteOrderCommandHandler(factory, publisher)
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, got.Status())
	assert.Equal(t, order.ActivityCompleted, got.LastActivity().Activity().Code())
	assert.True(t, drv.IsIdle())
	assert.Equal(t, []string{"order.completed"}, publisher.names())
}

func TestCompleteOrderCommandHandler_Handle_SingleLegVacuouslyComplete(t *testing.T) {
	ctx := context.Background()
	o := singleLegOrder(t)
	_, driverID := startedOrder(t, o)
	drv := testDriver(t, driverID)
	cmd, _ := commands.NewCompleteOrderCommand(o.PublicID(), kernel.Location{})

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("GetForUpdate", mock.Anything, o.PublicID()).Return(o, nil).Once()
	orderRepo.On("Update", mock.Anything, o).Return(nil).Once()
	driverRepo.On("Get", mock.Anything, driverID).Return(drv, nil).Once()
	driverRepo.On("Update", mock.Anything, drv).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteOrderCommandHandler(factory, &fakePublisher{})
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, got.Status())
}
