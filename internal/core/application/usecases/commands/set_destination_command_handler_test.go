package commands_test

import (
	"context"
	"testing"

	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetDestinationCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	o := multiDropOrder(t, 3)
	target := o.Payload().Waypoints()[2]
	cmd, err := commands.NewSetDestinationCommand(o.PublicID(), target.Place().PublicID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, o.PublicID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetDestinationCommandHandler(factory)
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, got.Payload().CurrentWaypoint())
	assert.True(t, got.Payload().CurrentWaypoint().ID().IsEqual(target.ID()))
}

func TestSetDestinationCommandHandler_Handle_InvalidDestination(t *testing.T) {
	ctx := context.Background()
	o := multiDropOrder(t, 2)
	require.NoError(t, o.Payload().SetCurrentWaypoint(o.Payload().Waypoints()[0]))
	cmd, _ := commands.NewSetDestinationCommand(o.PublicID(), kernel.NewPublicID("place"))

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, o.PublicID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetDestinationCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidDestination)
	// The pointer is untouched on rejection.
	assert.True(t, o.Payload().CurrentWaypoint().ID().IsEqual(o.Payload().Waypoints()[0].ID()))
}
