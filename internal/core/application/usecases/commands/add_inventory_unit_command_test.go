package commands_test

import (
	"testing"

	"stitchfactory/internal/core/application/usecases/commands"
	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/core/domain/model/unit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddInventoryUnitCommand_Success(t *testing.T) {
	unitID := kernel.NewUUID()
	cmd, err := commands.NewAddInventoryUnitCommand(unitID, "ST-32-X-34-IND", unit.Stock, "A-17")

	require.NoError(t, err)
	assert.Equal(t, unitID, cmd.UnitID())
	assert.Equal(t, "ST-32-X-34-IND", cmd.Variant().String())
	assert.Equal(t, unit.Stock, cmd.PrimaryStatus())
	assert.Equal(t, "A-17", cmd.Location())
	require.NoError(t, cmd.Validate())
}

func TestNewAddInventoryUnitCommand_MalformedSku(t *testing.T) {
	_, err := commands.NewAddInventoryUnitCommand(kernel.NewUUID(), "not-a-sku", unit.Stock, "")
	require.Error(t, err)
	require.ErrorIs(t, err, sku.ErrMalformedSku)
}

func TestNewAddInventoryUnitCommand_WashStatusRejected(t *testing.T) {
	_, err := commands.NewAddInventoryUnitCommand(kernel.NewUUID(), "ST-32-X-34-IND", unit.Wash, "")
	require.Error(t, err)
}

func TestAddInventoryUnitCommand_ValidateZeroValue(t *testing.T) {
	cmd := commands.AddInventoryUnitCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrAddInventoryUnitCommandIsNotConstructed)
}
