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

func TestNewScheduleOrderCommand(t *testing.T) {
	o := singleLegOrder(t)

	t.Run("requires a time", func(t *testing.T) {
		_, err := commands.NewScheduleOrderCommand(o.PublicID(), time.Time{})
		require.ErrorIs(t, err, commands.ErrScheduleTimeIsRequired)
	})

	t.Run("not constructed", func(t *testing.T) {
		var cmd commands.ScheduleOrderCommand
		require.Error(t, cmd.Validate())
	})
}

func TestScheduleOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	o := singleLegOrder(t)
	at := time.Now().Add(3 * time.Hour)
	cmd, err := commands.NewScheduleOrderCommand(o.PublicID(), at)
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

	h := commands.NewScheduleOrderCommandHandler(factory)
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, got.ScheduledAt())
	assert.Equal(t, at, *got.ScheduledAt())
	orderRepo.AssertExpectations(t)
}

func TestScheduleOrderCommandHandler_Handle_AlreadyDispatched(t *testing.T) {
	ctx := context.Background()
	o := singleLegOrder(t)
	require.NoError(t, o.AssignDriver(kernel.NewUUID()))
	require.NoError(t, o.Dispatch())
	cmd, _ := commands.NewScheduleOrderCommand(o.PublicID(), time.Now().Add(time.Hour))

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("GetForUpdate", mock.Anything, o.PublicID()).Return(o, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewScheduleOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrAlreadyDispatched)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
