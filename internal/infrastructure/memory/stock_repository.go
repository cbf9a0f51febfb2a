package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-relief/internal/domain"
	"github.com/jhoicas/stock-relief/internal/domain/entity"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo snapshot de stock en memoria, único por (ubicación, producto).
type StockRepo struct {
	store *Store
	tx    *state
}

// Find devuelve nil, nil si no existe fila.
func (r *StockRepo) Find(_ context.Context, locationID, productID string) (*entity.StockSnapshot, error) {
	var out *entity.StockSnapshot
	err := r.store.view(r.tx, func(st *state) error {
		if s, ok := st.stock[entity.StockKey{LocationID: locationID, ProductID: productID}]; ok {
			c := *s
			out = &c
		}
		return nil
	})
	return out, err
}

// FindForUpdate en memoria equivale a Find (la transacción ya es exclusiva).
func (r *StockRepo) FindForUpdate(ctx context.Context, locationID, productID string) (*entity.StockSnapshot, error) {
	return r.Find(ctx, locationID, productID)
}

// UpsertDelta suma delta al stock del par, creando la fila si no existe y delta >= 0.
func (r *StockRepo) UpsertDelta(_ context.Context, locationID, productID string, delta int64) (*entity.StockSnapshot, error) {
	if !r.store.productExists(productID) || !r.store.locationExists(locationID) {
		return nil, domain.ErrNotFound
	}
	if err := r.store.fault(OpStockUpsert); err != nil {
		return nil, err
	}
	var out *entity.StockSnapshot
	err := r.store.view(r.tx, func(st *state) error {
		key := entity.StockKey{LocationID: locationID, ProductID: productID}
		now := r.store.now()
		cur, ok := st.stock[key]
		if !ok {
			if delta < 0 {
				return &domain.StockError{Kind: domain.ErrNoStockRecord, LocationID: locationID, ProductID: productID}
			}
			cur = &entity.StockSnapshot{
				ID:             uuid.New().String(),
				LocationID:     locationID,
				ProductID:      productID,
				AvailableStock: delta,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			st.stock[key] = cur
		} else {
			if cur.AvailableStock+delta < 0 {
				return &domain.StockError{
					Kind:       domain.ErrInsufficientStock,
					LocationID: locationID,
					ProductID:  productID,
					Available:  cur.AvailableStock,
				}
			}
			cur.AvailableStock += delta
			cur.UpdatedAt = now
		}
		c := *cur
		out = &c
		return nil
	})
	return out, err
}

// List lista stock filtrado y ordenado por producto (por defecto) o por stock disponible.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter) ([]*entity.StockSnapshot, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.StockSnapshot, 0, len(all))
	for _, s := range all {
		if filter.LocationID != "" && s.LocationID != filter.LocationID {
			continue
		}
		if filter.ProductID != "" && s.ProductID != filter.ProductID {
			continue
		}
		list = append(list, s)
	}
	less := func(a, b *entity.StockSnapshot) bool {
		if filter.SortBy == repository.StockSortAvailable && a.AvailableStock != b.AvailableStock {
			return a.AvailableStock < b.AvailableStock
		}
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		return a.LocationID < b.LocationID
	}
	sort.SliceStable(list, func(i, j int) bool {
		if filter.Desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
	return paginate(list, filter.Limit, filter.Offset), nil
}

// ListAll devuelve todas las filas de stock (copias).
func (r *StockRepo) ListAll(_ context.Context) ([]*entity.StockSnapshot, error) {
	var list []*entity.StockSnapshot
	err := r.store.view(r.tx, func(st *state) error {
		for _, s := range st.stock {
			c := *s
			list = append(list, &c)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].LocationID != list[j].LocationID {
			return list[i].LocationID < list[j].LocationID
		}
		return list[i].ProductID < list[j].ProductID
	})
	return list, err
}
