package finishing_test

import (
	"testing"
	"time"

	"stitchfactory/internal/core/domain/model/finishing"
	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/sku"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	t.Run("creates request for universal substitute", func(t *testing.T) {
		unitID := kernel.NewUUID()

		r, err := finishing.NewRequest(
			kernel.NewUUID(), unitID, kernel.NewUUID(), kernel.NewUUID(),
			true, sku.FinishIndigo,
		)
		require.NoError(t, err)

		assert.True(t, unitID.IsEqual(r.UnitID()))
		assert.True(t, r.IsUniversalMatch())
		assert.Equal(t, sku.FinishIndigo, r.TargetFinish())
		assert.False(t, r.CreatedAt().IsZero())
	})

	t.Run("rejects unknown target finish", func(t *testing.T) {
		_, err := finishing.NewRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			false, sku.Finish("XXX"),
		)
		require.Error(t, err)
	})
}

func TestRestoreRequest_KeepsCreationTime(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	r, err := finishing.RestoreRequest(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		false, sku.FinishStone, createdAt,
	)
	require.NoError(t, err)

	assert.NoError(t, r.Validate())
	assert.Equal(t, createdAt, r.CreatedAt())
}

func TestRequestValidate_NotConstructed(t *testing.T) {
	var r finishing.Request
	assert.ErrorIs(t, r.Validate(), finishing.ErrRequestIsNotConstructed)
}
