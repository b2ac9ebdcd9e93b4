package production_test

import (
	"testing"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/production"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnitEntry(t *testing.T) {
	t.Run("binds line item to committed unit", func(t *testing.T) {
		unitID := kernel.NewUUID()

		e, err := production.NewUnitEntry(kernel.NewUUID(), 5, kernel.NewUUID(), kernel.NewUUID(), unitID)
		require.NoError(t, err)

		assert.Equal(t, int64(5), e.Position())
		require.NotNil(t, e.UnitID())
		assert.True(t, unitID.IsEqual(*e.UnitID()))
		assert.Nil(t, e.RequestID())
	})

	t.Run("rejects non-positive position", func(t *testing.T) {
		_, err := production.NewUnitEntry(kernel.NewUUID(), 0, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
		require.Error(t, err)

		_, err = production.NewUnitEntry(kernel.NewUUID(), -3, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
		require.Error(t, err)
	})
}

func TestNewRequestEntry(t *testing.T) {
	requestID := kernel.NewUUID()

	e, err := production.NewRequestEntry(kernel.NewUUID(), 9, kernel.NewUUID(), kernel.NewUUID(), requestID)
	require.NoError(t, err)

	require.NotNil(t, e.RequestID())
	assert.True(t, requestID.IsEqual(*e.RequestID()))
	assert.Nil(t, e.UnitID())
}

func TestRestoreWaitlistEntry(t *testing.T) {
	t.Run("restores unit-bound entry", func(t *testing.T) {
		unitID := kernel.NewUUID()

		e, err := production.RestoreWaitlistEntry(kernel.NewUUID(), 12, kernel.NewUUID(), kernel.NewUUID(), &unitID, nil)
		require.NoError(t, err)

		assert.NoError(t, e.Validate())
		require.NotNil(t, e.UnitID())
		assert.True(t, unitID.IsEqual(*e.UnitID()))
	})

	t.Run("rejects entry referencing both unit and request", func(t *testing.T) {
		unitID, requestID := kernel.NewUUID(), kernel.NewUUID()

		_, err := production.RestoreWaitlistEntry(kernel.NewUUID(), 12, kernel.NewUUID(), kernel.NewUUID(), &unitID, &requestID)
		require.Error(t, err)
	})

	t.Run("rejects entry referencing neither", func(t *testing.T) {
		_, err := production.RestoreWaitlistEntry(kernel.NewUUID(), 12, kernel.NewUUID(), kernel.NewUUID(), nil, nil)
		require.Error(t, err)
	})
}

func TestWaitlistEntryValidate_NotConstructed(t *testing.T) {
	var e production.WaitlistEntry
	assert.ErrorIs(t, e.Validate(), production.ErrWaitlistEntryIsNotConstructed)
}
