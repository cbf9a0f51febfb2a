package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-relief/internal/domain"
	"github.com/jhoicas/stock-relief/internal/domain/entity"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
)

// ProductRepo productos en memoria (nombre único).
type ProductRepo struct {
	store *Store
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.store.refMu.Lock()
	defer r.store.refMu.Unlock()
	if _, ok := r.store.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, p := range r.store.products {
		if p.Name == product.Name {
			return domain.ErrDuplicate
		}
	}
	c := *product
	r.store.products[c.ID] = &c
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.store.refMu.RLock()
	defer r.store.refMu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.store.refMu.RLock()
	list := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		c := *p
		list = append(list, &c)
	}
	r.store.refMu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

// LocationRepo ubicaciones en memoria (nombre único).
type LocationRepo struct {
	store *Store
}

func (r *LocationRepo) Create(_ context.Context, location *entity.Location) error {
	r.store.refMu.Lock()
	defer r.store.refMu.Unlock()
	if _, ok := r.store.locations[location.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, l := range r.store.locations {
		if l.Name == location.Name {
			return domain.ErrDuplicate
		}
	}
	c := *location
	r.store.locations[c.ID] = &c
	return nil
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	r.store.refMu.RLock()
	defer r.store.refMu.RUnlock()
	l, ok := r.store.locations[id]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

func (r *LocationRepo) List(_ context.Context, limit, offset int) ([]*entity.Location, error) {
	r.store.refMu.RLock()
	list := make([]*entity.Location, 0, len(r.store.locations))
	for _, l := range r.store.locations {
		c := *l
		list = append(list, &c)
	}
	r.store.refMu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}
