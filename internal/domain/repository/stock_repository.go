package repository

import (
	"context"

	"github.com/jhoicas/stock-relief/internal/domain/entity"
)

// Orden de listado de stock.
const (
	StockSortProduct   = "product_id"
	StockSortAvailable = "available_stock"
)

// StockFilter filtros para listar stock. Campos vacíos no filtran.
type StockFilter struct {
	LocationID string
	ProductID  string
	SortBy     string // product_id (por defecto) o available_stock
	Desc       bool
	Limit      int
	Offset     int
}

// StockRepository define el puerto para consultar/actualizar el snapshot de stock por ubicación+producto.
// Usado dentro de transacciones para garantizar consistencia con el libro de movimientos.
type StockRepository interface {
	// Find devuelve nil, nil si no existe fila para el par.
	Find(ctx context.Context, locationID, productID string) (*entity.StockSnapshot, error)
	// FindForUpdate igual que Find pero bloquea la fila (SELECT FOR UPDATE).
	FindForUpdate(ctx context.Context, locationID, productID string) (*entity.StockSnapshot, error)
	// UpsertDelta suma delta (puede ser negativo) al stock disponible, creando la fila si no existe.
	// Falla con *domain.StockError: Kind ErrNoStockRecord si delta < 0 y no hay fila,
	// Kind ErrInsufficientStock si el resultado sería negativo. En ambos casos no escribe nada.
	UpsertDelta(ctx context.Context, locationID, productID string, delta int64) (*entity.StockSnapshot, error)
	List(ctx context.Context, filter StockFilter) ([]*entity.StockSnapshot, error)
	ListAll(ctx context.Context) ([]*entity.StockSnapshot, error)
}
