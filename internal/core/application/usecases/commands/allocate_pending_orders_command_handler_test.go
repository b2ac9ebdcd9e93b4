package commands_test

import (
	"context"
	"errors"
	"testing"

	"stitchfactory/internal/core/application/usecases/commands"
	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderProcessor struct{ mock.Mock }

func (m *MockOrderProcessor) Handle(
	ctx context.Context,
	command commands.ProcessOrderCommand,
) (commands.ProcessOrderResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.ProcessOrderResult), args.Error(1)
}

func newSweepMocks(ctx context.Context, pendingIDs []kernel.UUID) (*MockOrderUoWFactory, *MockOrderProcessor) {
	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetIDsWithPendingItems", ctx).Return(pendingIDs, nil)

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	processor := new(MockOrderProcessor)
	return factory, processor
}

func TestAllocatePendingOrdersCommandHandler_Handle_ProcessesEveryPendingOrder(t *testing.T) {
	ctx := t.Context()

	first := kernel.NewUUID()
	second := kernel.NewUUID()
	factory, processor := newSweepMocks(ctx, []kernel.UUID{first, second})

	processor.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ProcessOrderCommand) bool {
		return cmd.OrderID().IsEqual(first)
	})).Return(commands.ProcessOrderResult{Success: true, OrderStatus: order.Wash}, nil).Once()
	processor.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ProcessOrderCommand) bool {
		return cmd.OrderID().IsEqual(second)
	})).Return(commands.ProcessOrderResult{Success: true, OrderStatus: order.InProduction}, nil).Once()

	handler := commands.NewAllocatePendingOrdersCommandHandler(factory, processor)
	err := handler.Handle(ctx, commands.NewAllocatePendingOrdersCommand())

	require.NoError(t, err)
	processor.AssertExpectations(t)
}

func TestAllocatePendingOrdersCommandHandler_Handle_NoPendingOrders(t *testing.T) {
	ctx := t.Context()

	factory, processor := newSweepMocks(ctx, []kernel.UUID{})

	handler := commands.NewAllocatePendingOrdersCommandHandler(factory, processor)
	err := handler.Handle(ctx, commands.NewAllocatePendingOrdersCommand())

	require.NoError(t, err)
	processor.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestAllocatePendingOrdersCommandHandler_Handle_FailingOrderDoesNotStopSweep(t *testing.T) {
	ctx := t.Context()

	broken := kernel.NewUUID()
	healthy := kernel.NewUUID()
	factory, processor := newSweepMocks(ctx, []kernel.UUID{broken, healthy})

	processor.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ProcessOrderCommand) bool {
		return cmd.OrderID().IsEqual(broken)
	})).Return(commands.ProcessOrderResult{}, errors.New("connection reset")).Once()
	processor.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ProcessOrderCommand) bool {
		return cmd.OrderID().IsEqual(healthy)
	})).Return(commands.ProcessOrderResult{Success: true, OrderStatus: order.Wash}, nil).Once()

	handler := commands.NewAllocatePendingOrdersCommandHandler(factory, processor)
	err := handler.Handle(ctx, commands.NewAllocatePendingOrdersCommand())

	require.Error(t, err)
	assert.Contains(t, err.Error(), broken.String())
	assert.Contains(t, err.Error(), "connection reset")
	processor.AssertExpectations(t)
}

func TestAllocatePendingOrdersCommandHandler_Handle_PartialItemFailureIsReported(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	factory, processor := newSweepMocks(ctx, []kernel.UUID{orderID})

	processor.On("Handle", ctx, mock.Anything).
		Return(commands.ProcessOrderResult{Success: false, OrderStatus: order.Placed}, nil).Once()

	handler := commands.NewAllocatePendingOrdersCommandHandler(factory, processor)
	err := handler.Handle(ctx, commands.NewAllocatePendingOrdersCommand())

	require.Error(t, err)
	assert.Contains(t, err.Error(), orderID.String())
}

func TestAllocatePendingOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	processor := new(MockOrderProcessor)
	handler := commands.NewAllocatePendingOrdersCommandHandler(factory, processor)

	err := handler.Handle(t.Context(), commands.AllocatePendingOrdersCommand{})

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAllocatePendingOrdersCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
