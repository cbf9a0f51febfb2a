package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-relief/internal/application/dto"
	"github.com/jhoicas/stock-relief/internal/application/inventory"
	"github.com/jhoicas/stock-relief/internal/domain"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
)

func TestQueryUseCase_ListaYDetalle(t *testing.T) {
	f := newFixture(t)
	f.create(t, P1, "", L1, 10)
	f.create(t, P3, "", L2, 5)
	m := f.create(t, P1, L1, L2, 4)
	uc := inventory.NewQueryUseCase(f.store.MovementRepository(), f.store.StockRepository())
	ctx := context.Background()

	got, err := uc.GetMovement(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "transfer", got.Kind)
	require.NotNil(t, got.FromLocationID)
	assert.Equal(t, L1, *got.FromLocationID)

	_, err = uc.GetMovement(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	movs, err := uc.ListMovements(ctx, repository.MovementFilter{LocationID: L2})
	require.NoError(t, err)
	assert.Len(t, movs.Items, 2)
	assert.Equal(t, inventory.DefaultMovementPage, movs.Page.Limit)
	assert.Equal(t, m.ID, movs.Items[0].ID, "el más reciente primero")

	stock, err := uc.ListStock(ctx, repository.StockFilter{SortBy: repository.StockSortAvailable, Desc: true})
	require.NoError(t, err)
	require.Len(t, stock.Items, 3)
	assert.Equal(t, inventory.DefaultStockPage, stock.Page.Limit)
	assert.Equal(t, int64(6), stock.Items[0].AvailableStock)
	assert.Equal(t, int64(4), stock.Items[2].AvailableStock)
}

func TestQueryUseCase_FiltroPorFecha(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.proc.CreateFromRequest(ctx, dto.CreateMovementRequest{ProductID: P1, ToLocationID: L1, Qty: 3, MovementDate: "2024-01-10"})
	require.NoError(t, err)
	_, err = f.proc.CreateFromRequest(ctx, dto.CreateMovementRequest{ProductID: P1, ToLocationID: L1, Qty: 4, MovementDate: "2024-02-10"})
	require.NoError(t, err)
	uc := inventory.NewQueryUseCase(f.store.MovementRepository(), f.store.StockRepository())

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	list, err := uc.ListMovements(ctx, repository.MovementFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "2024-02-10", list.Items[0].MovementDate)
}

func TestCreateFromRequest_FechaInvalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.proc.CreateFromRequest(context.Background(), dto.CreateMovementRequest{ProductID: P1, ToLocationID: L1, Qty: 1, MovementDate: "10/01/2024"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.ledgerSize(t))
}

func TestAmendFromRequest_SinCantidad(t *testing.T) {
	f := newFixture(t)
	m := f.create(t, P1, "", L1, 1)

	_, err := f.proc.AmendFromRequest(context.Background(), m.ID, dto.AmendMovementRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	qty := int64(9)
	res, err := f.proc.AmendFromRequest(context.Background(), m.ID, dto.AmendMovementRequest{Qty: &qty})
	require.NoError(t, err)
	assert.Equal(t, int64(9), res.Movement.Qty)
	require.Len(t, res.Stock, 1)
	assert.Equal(t, int64(9), res.Stock[0].AvailableStock)
}
