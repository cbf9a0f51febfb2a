package repository

import (
	"context"

	"github.com/jhoicas/stock-relief/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (datos de referencia).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Location, error)
}
