package commands_test

import (
	"context"
	"errors"
	"testing"

	"stitchfactory/internal/core/application/usecases/commands"
	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/unit"
	"stitchfactory/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUnitUoW struct{ mock.Mock }

func (m *MockUnitUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitUoW) UnitRepository() ports.UnitRepository {
	args := m.Called()
	return args.Get(0).(ports.UnitRepository)
}

type MockUnitUoWFactory struct{ mock.Mock }

func (m *MockUnitUoWFactory) Create() commands.UnitUoW {
	args := m.Called()
	return args.Get(0).(commands.UnitUoW)
}

func TestAddInventoryUnitCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	unitID := kernel.NewUUID()
	cmd, err := commands.NewAddInventoryUnitCommand(unitID, "ST-32-X-36-RAW", unit.Production, "")
	require.NoError(t, err)

	unitRepo := new(MockUnitRepository)
	uow := new(MockUnitUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UnitRepository").Return(unitRepo).Once(),
		unitRepo.On("Add", ctx, mock.AnythingOfType("*unit.InventoryUnit")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUnitUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddInventoryUnitCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	unitRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	addCall := findCall(t, &unitRepo.Mock, "Add")
	added := addCall.Arguments[1].(*unit.InventoryUnit)
	assert.Equal(t, unitID, added.ID())
	assert.Equal(t, unit.Production, added.PrimaryStatus())
	assert.Equal(t, unit.Uncommitted, added.SecondaryStatus())
}

func TestAddInventoryUnitCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewAddInventoryUnitCommand(kernel.NewUUID(), "ST-32-X-34-IND", unit.Stock, "B-02")
	require.NoError(t, err)

	unitRepo := new(MockUnitRepository)
	uow := new(MockUnitUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UnitRepository").Return(unitRepo).Once(),
		unitRepo.On("Add", ctx, mock.AnythingOfType("*unit.InventoryUnit")).
			Return(errors.New("insert error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUnitUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddInventoryUnitCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "insert error")
}

func TestAddInventoryUnitCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AddInventoryUnitCommand{} // not constructed properly

	factory := new(MockUnitUoWFactory)
	handler := commands.NewAddInventoryUnitCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAddInventoryUnitCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
