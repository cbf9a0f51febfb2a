package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-relief/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos. LocationID coincide con origen o destino.
type MovementFilter struct {
	ProductID  string
	LocationID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// MovementRepository define el puerto de persistencia del libro de movimientos.
// No valida stock: solo la restricción estructural Qty >= 0.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// GetForUpdate bloquea la fila del movimiento hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Movement, error)
	UpdateQty(ctx context.Context, id string, qty int64) (*entity.Movement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	ListAll(ctx context.Context) ([]*entity.Movement, error)
}
