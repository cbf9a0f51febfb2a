package demo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-relief/internal/application/demo"
	"github.com/jhoicas/stock-relief/internal/application/inventory"
	"github.com/jhoicas/stock-relief/internal/application/usecase"
	"github.com/jhoicas/stock-relief/internal/infrastructure/memory"
	"github.com/jhoicas/stock-relief/pkg/logger"
)

func TestLoad_StockConsistenteConElLibro(t *testing.T) {
	store := memory.NewStore()
	log := logger.Nop()
	ref := usecase.NewReferenceUseCase(store.ProductRepository(), store.LocationRepository())
	proc := inventory.NewTransferProcessor(store, store.ProductRepository(), store.LocationRepository(), log)
	ctx := context.Background()

	res, err := demo.Load(ctx, ref, proc, log)
	require.NoError(t, err)

	assert.Equal(t, 12, res.Products)
	assert.Equal(t, 7, res.Locations)
	assert.Equal(t, 16, res.Applied)
	assert.Equal(t, 6, res.Rejected)

	audit, err := inventory.NewAuditUseCase(store, log).Reconcile(ctx)
	require.NoError(t, err)
	assert.True(t, audit.Consistent)
	assert.Equal(t, 16, audit.Movements)
	assert.Equal(t, 12, audit.StockRows)
}

func TestLoad_SegundaCargaFallaPorDuplicado(t *testing.T) {
	store := memory.NewStore()
	log := logger.Nop()
	ref := usecase.NewReferenceUseCase(store.ProductRepository(), store.LocationRepository())
	proc := inventory.NewTransferProcessor(store, store.ProductRepository(), store.LocationRepository(), log)

	_, err := demo.Load(context.Background(), ref, proc, log)
	require.NoError(t, err)

	_, err = demo.Load(context.Background(), ref, proc, log)
	assert.Error(t, err)
}
