package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-relief/internal/domain"
	"github.com/jhoicas/stock-relief/internal/domain/entity"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria.
type MovementRepo struct {
	store *Store
	tx    *state
}

// Create persiste un movimiento. Verifica Qty >= 0 y las referencias (como las FK de PostgreSQL).
func (r *MovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	if movement.Qty < 0 {
		return domain.ErrInvalidInput
	}
	if !r.store.productExists(movement.ProductID) {
		return domain.ErrNotFound
	}
	for _, id := range []string{movement.FromLocationID, movement.ToLocationID} {
		if id != "" && !r.store.locationExists(id) {
			return domain.ErrNotFound
		}
	}
	if err := r.store.fault(OpMovementCreate); err != nil {
		return err
	}
	return r.store.view(r.tx, func(st *state) error {
		if movement.ID == "" {
			movement.ID = uuid.New().String()
		}
		if _, ok := st.movements[movement.ID]; ok {
			return domain.ErrDuplicate
		}
		now := r.store.now()
		movement.CreatedAt = now
		movement.UpdatedAt = now
		c := *movement
		st.movements[c.ID] = &c
		st.nextSeq++
		st.seq[c.ID] = st.nextSeq
		return nil
	})
}

// GetByID obtiene un movimiento; nil, nil si no existe.
func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.store.view(r.tx, func(st *state) error {
		if m, ok := st.movements[id]; ok {
			c := *m
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya es exclusiva.
func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.GetByID(ctx, id)
}

// UpdateQty actualiza la cantidad de un movimiento existente.
func (r *MovementRepo) UpdateQty(_ context.Context, id string, qty int64) (*entity.Movement, error) {
	if qty < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := r.store.fault(OpMovementUpdate); err != nil {
		return nil, err
	}
	var out *entity.Movement
	err := r.store.view(r.tx, func(st *state) error {
		m, ok := st.movements[id]
		if !ok {
			return domain.ErrNotFound
		}
		m.Qty = qty
		m.UpdatedAt = r.store.now()
		c := *m
		out = &c
		return nil
	})
	return out, err
}

// List lista movimientos por fecha descendente.
func (r *MovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	var list []*entity.Movement
	err := r.store.view(r.tx, func(st *state) error {
		for _, m := range st.movements {
			if filter.ProductID != "" && m.ProductID != filter.ProductID {
				continue
			}
			if filter.LocationID != "" && m.FromLocationID != filter.LocationID && m.ToLocationID != filter.LocationID {
				continue
			}
			if filter.From != nil && m.MovementDate.Before(*filter.From) {
				continue
			}
			if filter.To != nil && m.MovementDate.After(*filter.To) {
				continue
			}
			c := *m
			list = append(list, &c)
		}
		sort.Slice(list, func(i, j int) bool {
			a, b := list[i], list[j]
			if !a.MovementDate.Equal(b.MovementDate) {
				return a.MovementDate.After(b.MovementDate)
			}
			return st.seq[a.ID] > st.seq[b.ID]
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paginate(list, filter.Limit, filter.Offset), nil
}

// ListAll devuelve el libro completo en orden de inserción.
func (r *MovementRepo) ListAll(_ context.Context) ([]*entity.Movement, error) {
	var list []*entity.Movement
	err := r.store.view(r.tx, func(st *state) error {
		for _, m := range st.movements {
			c := *m
			list = append(list, &c)
		}
		sort.Slice(list, func(i, j int) bool { return st.seq[list[i].ID] < st.seq[list[j].ID] })
		return nil
	})
	return list, err
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
