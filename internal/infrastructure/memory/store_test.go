package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-relief/internal/domain"
	"github.com/jhoicas/stock-relief/internal/domain/entity"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
	"github.com/jhoicas/stock-relief/internal/infrastructure/memory"
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.ProductRepository().Create(ctx, &entity.Product{ID: "P1", Name: "Mantas"}))
	require.NoError(t, s.LocationRepository().Create(ctx, &entity.Location{ID: "L1", Name: "Centro 1"}))
	require.NoError(t, s.LocationRepository().Create(ctx, &entity.Location{ID: "L2", Name: "Centro 2"}))
	return s
}

func TestStockRepo_UpsertDelta_CreaFilaConDeltaPositivo(t *testing.T) {
	ctx := context.Background()
	repo := seededStore(t).StockRepository()

	s, err := repo.UpsertDelta(ctx, "L1", "P1", 120)
	require.NoError(t, err)
	assert.Equal(t, int64(120), s.AvailableStock)
	assert.NotEmpty(t, s.ID)

	s, err = repo.UpsertDelta(ctx, "L1", "P1", -20)
	require.NoError(t, err)
	assert.Equal(t, int64(100), s.AvailableStock)
}

func TestStockRepo_UpsertDelta_NegativoSinFila(t *testing.T) {
	ctx := context.Background()
	repo := seededStore(t).StockRepository()

	_, err := repo.UpsertDelta(ctx, "L1", "P1", -1)
	require.ErrorIs(t, err, domain.ErrNoStockRecord)

	s, err := repo.Find(ctx, "L1", "P1")
	require.NoError(t, err)
	assert.Nil(t, s, "no debe crear la fila")
}

func TestStockRepo_UpsertDelta_ResultadoNegativo(t *testing.T) {
	ctx := context.Background()
	repo := seededStore(t).StockRepository()
	_, err := repo.UpsertDelta(ctx, "L1", "P1", 10)
	require.NoError(t, err)

	_, err = repo.UpsertDelta(ctx, "L1", "P1", -11)
	var se *domain.StockError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), se.Available)

	s, err := repo.Find(ctx, "L1", "P1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.AvailableStock)
}

func TestStockRepo_UpsertDelta_ReferenciaInexistente(t *testing.T) {
	_, err := seededStore(t).StockRepository().UpsertDelta(context.Background(), "L9", "P1", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockRepo_List_OrdenYFiltro(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	require.NoError(t, s.ProductRepository().Create(ctx, &entity.Product{ID: "P2", Name: "Agua"}))
	repo := s.StockRepository()
	for _, c := range []struct {
		loc, prod string
		qty       int64
	}{{"L1", "P2", 5}, {"L1", "P1", 50}, {"L2", "P1", 1}} {
		_, err := repo.UpsertDelta(ctx, c.loc, c.prod, c.qty)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx, repository.StockFilter{SortBy: repository.StockSortAvailable, Desc: true})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{50, 5, 1}, []int64{list[0].AvailableStock, list[1].AvailableStock, list[2].AvailableStock})

	list, err = repo.List(ctx, repository.StockFilter{LocationID: "L1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "P1", list[0].ProductID)
}

func TestMovementRepo_CantidadNegativa(t *testing.T) {
	ctx := context.Background()
	repo := seededStore(t).MovementRepository()

	err := repo.Create(ctx, &entity.Movement{ProductID: "P1", ToLocationID: "L1", Qty: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	m := &entity.Movement{ProductID: "P1", ToLocationID: "L1", Qty: 3, MovementDate: time.Now()}
	require.NoError(t, repo.Create(ctx, m))
	_, err = repo.UpdateQty(ctx, m.ID, -4)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementRepo_ListPorUbicacionYFecha(t *testing.T) {
	ctx := context.Background()
	repo := seededStore(t).MovementRepository()
	d1 := time.Date(2018, 1, 9, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2018, 3, 7, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &entity.Movement{ProductID: "P1", ToLocationID: "L1", Qty: 1, MovementDate: d1}))
	require.NoError(t, repo.Create(ctx, &entity.Movement{ProductID: "P1", FromLocationID: "L1", ToLocationID: "L2", Qty: 1, MovementDate: d2}))
	require.NoError(t, repo.Create(ctx, &entity.Movement{ProductID: "P1", ToLocationID: "L2", Qty: 1, MovementDate: d2}))

	list, err := repo.List(ctx, repository.MovementFilter{LocationID: "L1"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, d2, list[0].MovementDate, "más reciente primero")

	list, err = repo.List(ctx, repository.MovementFilter{From: &d2})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestStore_Run_RollbackAnteError(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	boom := errors.New("boom")

	err := s.Run(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		if _, err := stockRepo.UpsertDelta(ctx, "L1", "P1", 10); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, &entity.Movement{ProductID: "P1", ToLocationID: "L1", Qty: 10}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	stock, err := s.StockRepository().Find(ctx, "L1", "P1")
	require.NoError(t, err)
	assert.Nil(t, stock)
	all, err := s.MovementRepository().ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_Run_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := seededStore(t)

	err := s.Run(ctx, func(_ repository.MovementRepository, stockRepo repository.StockRepository) error {
		_, err := stockRepo.UpsertDelta(ctx, "L1", "P1", 10)
		cancel()
		return err
	})
	require.ErrorIs(t, err, context.Canceled)

	stock, err := s.StockRepository().Find(context.Background(), "L1", "P1")
	require.NoError(t, err)
	assert.Nil(t, stock, "el cambio no debe confirmarse")
}
