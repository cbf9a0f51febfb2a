package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-relief/internal/domain/entity"
	"github.com/jhoicas/stock-relief/internal/domain/inventory"
)

func key(loc, prod string) entity.StockKey {
	return entity.StockKey{LocationID: loc, ProductID: prod}
}

func TestEffect_Transferencia(t *testing.T) {
	m := &entity.Movement{FromLocationID: "L1", ToLocationID: "L2", ProductID: "P3", Qty: 27}
	eff := inventory.Effect(m)
	assert.Equal(t, int64(-27), eff[key("L1", "P3")])
	assert.Equal(t, int64(27), eff[key("L2", "P3")])
	assert.Len(t, eff, 2)
}

func TestEffect_SinUbicaciones(t *testing.T) {
	assert.Empty(t, inventory.Effect(&entity.Movement{ProductID: "P1", Qty: 5}))
}

func TestReplay_SumaEntradasMenosSalidas(t *testing.T) {
	ledger := []*entity.Movement{
		{ToLocationID: "L1", ProductID: "P3", Qty: 40},
		{FromLocationID: "L1", ToLocationID: "L2", ProductID: "P3", Qty: 27},
		{FromLocationID: "L2", ProductID: "P3", Qty: 7},
		{ToLocationID: "L2", ProductID: "P1", Qty: 120},
	}
	totals := inventory.Replay(ledger)
	assert.Equal(t, int64(13), totals[key("L1", "P3")])
	assert.Equal(t, int64(20), totals[key("L2", "P3")])
	assert.Equal(t, int64(120), totals[key("L2", "P1")])
}

func TestCompare(t *testing.T) {
	ledger := map[entity.StockKey]int64{
		key("L1", "P1"): 10,
		key("L2", "P1"): 5,
		key("L3", "P1"): 0,
	}
	snapshots := []*entity.StockSnapshot{
		{LocationID: "L1", ProductID: "P1", AvailableStock: 10},
		{LocationID: "L4", ProductID: "P1", AvailableStock: 3},
	}

	diffs := inventory.Compare(snapshots, ledger)
	assert.ElementsMatch(t, []inventory.Discrepancy{
		{Key: key("L4", "P1"), Snapshot: 3, Ledger: 0},
		{Key: key("L2", "P1"), Ledger: 5, Missing: true},
	}, diffs)
}
