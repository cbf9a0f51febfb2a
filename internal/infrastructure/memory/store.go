// Package memory implementa los puertos de persistencia en memoria, con transacciones
// copy-on-write serializadas. Se usa en tests y con STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/stock-relief/internal/application/inventory"
	"github.com/jhoicas/stock-relief/internal/domain/entity"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store estado en memoria: libro de movimientos, snapshot de stock y datos de referencia.
// Run toma un lock exclusivo, trabaja sobre una copia y la publica solo si fn no falla.
type Store struct {
	mu    sync.Mutex
	state *state

	refMu     sync.RWMutex
	products  map[string]*entity.Product
	locations map[string]*entity.Location

	faultMu sync.Mutex
	faults  map[string]error

	now func() time.Time
}

type state struct {
	movements map[string]*entity.Movement
	seq       map[string]int64 // orden de inserción, desempate en listados
	nextSeq   int64
	stock     map[entity.StockKey]*entity.StockSnapshot
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		state: &state{
			movements: map[string]*entity.Movement{},
			seq:       map[string]int64{},
			stock:     map[entity.StockKey]*entity.StockSnapshot{},
		},
		products:  map[string]*entity.Product{},
		locations: map[string]*entity.Location{},
		faults:    map[string]error{},
		now:       time.Now,
	}
}

// Operaciones en las que se puede inyectar un fallo de almacenamiento.
const (
	OpMovementCreate = "movements.create"
	OpMovementUpdate = "movements.update"
	OpStockUpsert    = "stock.upsert"
	OpCommit         = "commit"
)

// InjectFault hace que la próxima ejecución de op devuelva err (una sola vez).
func (s *Store) InjectFault(op string, err error) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	err, ok := s.faults[op]
	if !ok {
		return nil
	}
	delete(s.faults, op)
	return err
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.clone()
	if err := fn(&MovementRepo{store: s, tx: tx}, &StockRepo{store: s, tx: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	if err := s.fault(OpCommit); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.state = tx
	return nil
}

// MovementRepository devuelve el repo de movimientos fuera de transacción (autocommit).
func (s *Store) MovementRepository() *MovementRepo { return &MovementRepo{store: s} }

// StockRepository devuelve el repo de stock fuera de transacción (autocommit).
func (s *Store) StockRepository() *StockRepo { return &StockRepo{store: s} }

// ProductRepository devuelve el repo de productos.
func (s *Store) ProductRepository() *ProductRepo { return &ProductRepo{store: s} }

// LocationRepository devuelve el repo de ubicaciones.
func (s *Store) LocationRepository() *LocationRepo { return &LocationRepo{store: s} }

// view ejecuta fn sobre el estado de la tx, o sobre el estado confirmado tomando el lock.
func (s *Store) view(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

func (st *state) clone() *state {
	out := &state{
		movements: make(map[string]*entity.Movement, len(st.movements)),
		seq:       make(map[string]int64, len(st.seq)),
		nextSeq:   st.nextSeq,
		stock:     make(map[entity.StockKey]*entity.StockSnapshot, len(st.stock)),
	}
	for id, m := range st.movements {
		c := *m
		out.movements[id] = &c
	}
	for id, n := range st.seq {
		out.seq[id] = n
	}
	for k, s := range st.stock {
		c := *s
		out.stock[k] = &c
	}
	return out
}

func (s *Store) productExists(id string) bool {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	_, ok := s.products[id]
	return ok
}

func (s *Store) locationExists(id string) bool {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	_, ok := s.locations[id]
	return ok
}
