package services_test

import (
	"testing"
	"time"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/core/domain/model/unit"
	"stitchfactory/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSku(t *testing.T, raw string) sku.SKU {
	t.Helper()
	s, err := sku.Parse(raw)
	require.NoError(t, err)
	return s
}

func restoredUnit(t *testing.T, raw string, primary unit.PrimaryStatus, age time.Duration) *unit.InventoryUnit {
	t.Helper()
	u, err := unit.RestoreInventoryUnit(
		kernel.NewUUID(), mustSku(t, raw), primary, unit.Uncommitted, "A-01",
		nil, time.Now().Add(-age),
	)
	require.NoError(t, err)
	return u
}

func TestCandidateSelector_SelectExact(t *testing.T) {
	selector := services.NewCandidateSelector()
	target := mustSku(t, "ST-32-X-32-STA")

	t.Run("stock beats production", func(t *testing.T) {
		older := restoredUnit(t, "ST-32-X-32-STA", unit.Production, 2*time.Hour)
		newer := restoredUnit(t, "ST-32-X-32-STA", unit.Stock, time.Hour)

		got, err := selector.SelectExact(target, []*unit.InventoryUnit{older, newer})
		require.NoError(t, err)
		assert.True(t, got.IsEqual(newer))
	})

	t.Run("oldest wins within same primary status", func(t *testing.T) {
		older := restoredUnit(t, "ST-32-X-32-STA", unit.Stock, 2*time.Hour)
		newer := restoredUnit(t, "ST-32-X-32-STA", unit.Stock, time.Hour)

		got, err := selector.SelectExact(target, []*unit.InventoryUnit{newer, older})
		require.NoError(t, err)
		assert.True(t, got.IsEqual(older))
	})

	t.Run("different variant never matches", func(t *testing.T) {
		other := restoredUnit(t, "ST-32-X-34-STA", unit.Stock, time.Hour)

		_, err := selector.SelectExact(target, []*unit.InventoryUnit{other})
		require.ErrorIs(t, err, services.ErrNoCandidateFound)
	})

	t.Run("reserved unit is not eligible", func(t *testing.T) {
		reserved := restoredUnit(t, "ST-32-X-32-STA", unit.Stock, time.Hour)
		require.NoError(t, reserved.Assign(kernel.NewUUID(), kernel.NewUUID()))

		_, err := selector.SelectExact(target, []*unit.InventoryUnit{reserved})
		require.ErrorIs(t, err, services.ErrNoCandidateFound)
	})

	t.Run("empty candidate list", func(t *testing.T) {
		_, err := selector.SelectExact(target, nil)
		require.ErrorIs(t, err, services.ErrNoCandidateFound)
	})
}

func TestCandidateSelector_SelectUniversal(t *testing.T) {
	selector := services.NewCandidateSelector()

	t.Run("raw unit of sufficient length substitutes", func(t *testing.T) {
		target := mustSku(t, "ST-32-X-34-STA")
		raw := restoredUnit(t, "ST-32-X-36-RAW", unit.Stock, time.Hour)

		got, err := selector.SelectUniversal(target, []*unit.InventoryUnit{raw})
		require.NoError(t, err)
		assert.True(t, got.IsEqual(raw))
	})

	t.Run("never selects a shorter unit", func(t *testing.T) {
		target := mustSku(t, "ST-32-X-34-STA")
		short := restoredUnit(t, "ST-32-X-32-RAW", unit.Stock, time.Hour)

		_, err := selector.SelectUniversal(target, []*unit.InventoryUnit{short})
		require.ErrorIs(t, err, services.ErrNoCandidateFound)
	})

	t.Run("smallest sufficient length wins", func(t *testing.T) {
		target := mustSku(t, "ST-32-X-32-STA")
		long := restoredUnit(t, "ST-32-X-36-RAW", unit.Stock, 3*time.Hour)
		exact := restoredUnit(t, "ST-32-X-32-RAW", unit.Stock, time.Hour)
		mid := restoredUnit(t, "ST-32-X-34-RAW", unit.Stock, 2*time.Hour)

		got, err := selector.SelectUniversal(target, []*unit.InventoryUnit{long, exact, mid})
		require.NoError(t, err)
		assert.True(t, got.IsEqual(exact))
	})

	t.Run("oldest wins among equal lengths", func(t *testing.T) {
		target := mustSku(t, "ST-32-X-32-STA")
		older := restoredUnit(t, "ST-32-X-36-RAW", unit.Production, 5*time.Hour)
		newer := restoredUnit(t, "ST-32-X-36-RAW", unit.Production, time.Hour)

		got, err := selector.SelectUniversal(target, []*unit.InventoryUnit{newer, older})
		require.NoError(t, err)
		assert.True(t, got.IsEqual(older))
	})

	t.Run("wash group decides the universal finish", func(t *testing.T) {
		darkTarget := mustSku(t, "ST-32-X-32-JAG")
		rawLight := restoredUnit(t, "ST-32-X-36-RAW", unit.Stock, time.Hour)
		rawDark := restoredUnit(t, "ST-32-X-36-BRW", unit.Stock, time.Hour)

		got, err := selector.SelectUniversal(darkTarget, []*unit.InventoryUnit{rawLight, rawDark})
		require.NoError(t, err)
		assert.True(t, got.IsEqual(rawDark))
	})

	t.Run("prefix must match", func(t *testing.T) {
		target := mustSku(t, "ST-32-X-32-STA")
		otherWaist := restoredUnit(t, "ST-34-X-36-RAW", unit.Stock, time.Hour)
		otherShape := restoredUnit(t, "ST-32-T-36-RAW", unit.Stock, time.Hour)

		_, err := selector.SelectUniversal(target, []*unit.InventoryUnit{otherWaist, otherShape})
		require.ErrorIs(t, err, services.ErrNoCandidateFound)
	})
}
