package repository

import (
	"context"

	"github.com/jhoicas/stock-relief/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (datos de referencia).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
