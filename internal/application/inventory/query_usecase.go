package inventory

import (
	"context"

	"github.com/jhoicas/stock-relief/internal/application/dto"
	"github.com/jhoicas/stock-relief/internal/domain"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
)

// Tamaños de página por defecto de los listados.
const (
	DefaultMovementPage = 20
	DefaultStockPage    = 35
	MaxPage             = 200
)

// QueryUseCase consultas de solo lectura sobre el libro y el snapshot (listados y exportación).
// No participa en las invariantes del motor.
type QueryUseCase struct {
	movRepo   repository.MovementRepository
	stockRepo repository.StockRepository
}

// NewQueryUseCase construye el caso de uso con repos sobre el pool (fuera de transacción).
func NewQueryUseCase(movRepo repository.MovementRepository, stockRepo repository.StockRepository) *QueryUseCase {
	return &QueryUseCase{movRepo: movRepo, stockRepo: stockRepo}
}

// GetMovement obtiene un movimiento por ID.
func (uc *QueryUseCase) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	out := toMovementResponse(m)
	return &out, nil
}

// ListMovements lista movimientos (más recientes primero).
func (uc *QueryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	page := dto.PageRequest{Limit: filter.Limit, Offset: filter.Offset}
	page.DefaultPage(DefaultMovementPage, MaxPage)
	filter.Limit, filter.Offset = page.Limit, page.Offset

	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListStock lista el stock disponible por (ubicación, producto).
func (uc *QueryUseCase) ListStock(ctx context.Context, filter repository.StockFilter) (*dto.StockListResponse, error) {
	page := dto.PageRequest{Limit: filter.Limit, Offset: filter.Offset}
	page.DefaultPage(DefaultStockPage, MaxPage)
	filter.Limit, filter.Offset = page.Limit, page.Offset
	if filter.SortBy != repository.StockSortAvailable {
		filter.SortBy = repository.StockSortProduct
	}

	list, err := uc.stockRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toStockResponse(s))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
