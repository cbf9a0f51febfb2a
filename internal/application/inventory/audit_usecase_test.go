package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_DetectaSnapshotAlterado(t *testing.T) {
	f := newFixture(t)
	f.create(t, P1, "", L1, 10)
	f.create(t, P1, L1, L2, 4)
	ctx := context.Background()

	ok, err := f.audit.Reconcile(ctx)
	require.NoError(t, err)
	assert.True(t, ok.Consistent)
	assert.Equal(t, 2, ok.Movements)
	assert.Equal(t, 2, ok.StockRows)

	// escritura directa sobre el snapshot, fuera del motor
	_, err = f.store.StockRepository().UpsertDelta(ctx, L2, P1, 3)
	require.NoError(t, err)

	res, err := f.audit.Reconcile(ctx)
	require.NoError(t, err)
	assert.False(t, res.Consistent)
	require.Len(t, res.Discrepancies, 1)
	d := res.Discrepancies[0]
	assert.Equal(t, L2, d.LocationID)
	assert.Equal(t, int64(7), d.Snapshot)
	assert.Equal(t, int64(4), d.Ledger)
}
