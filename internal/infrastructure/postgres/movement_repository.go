package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-relief/internal/domain"
	"github.com/jhoicas/stock-relief/internal/domain/entity"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, movement_date, from_location_id, to_location_id, product_id, qty, time_created, time_updated`

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento. Asigna ID si viene vacío; las fechas de auditoría las pone la BD.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, movement_date, from_location_id, to_location_id, product_id, qty, time_created, time_updated)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING time_created, time_updated`
	err := r.q.QueryRow(ctx, query,
		movement.ID, movement.MovementDate, nullable(movement.FromLocationID), nullable(movement.ToLocationID),
		movement.ProductID, movement.Qty,
	).Scan(&movement.CreatedAt, &movement.UpdatedAt)
	if err != nil {
		return mapWriteError("insert movement", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; nil, nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	return r.findOne(ctx, "get movement", query, id)
}

// GetForUpdate obtiene el movimiento bloqueando su fila hasta el fin de la tx.
func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1 FOR UPDATE`
	return r.findOne(ctx, "get movement for update", query, id)
}

// UpdateQty cambia la cantidad de un movimiento y devuelve la fila actualizada.
func (r *MovementRepo) UpdateQty(ctx context.Context, id string, qty int64) (*entity.Movement, error) {
	query := `
		UPDATE movements SET qty = $2, time_updated = now()
		WHERE id = $1
		RETURNING ` + movementColumns
	m, err := scanMovement(r.q.QueryRow(ctx, query, id, qty))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapWriteError("update movement qty", err)
	}
	return m, nil
}

// List lista movimientos por fecha descendente con filtros opcionales.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	limit := any(nil)
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	query := `SELECT ` + movementColumns + `
		FROM movements
		WHERE ($1 = '' OR product_id::text = $1)
			AND ($2 = '' OR from_location_id::text = $2 OR to_location_id::text = $2)
			AND ($3::date IS NULL OR movement_date >= $3::date)
			AND ($4::date IS NULL OR movement_date <= $4::date)
		ORDER BY movement_date DESC, time_created DESC, id DESC
		LIMIT $5 OFFSET $6`
	return r.findMany(ctx, "list movements", query,
		filter.ProductID, filter.LocationID, filter.From, filter.To, limit, filter.Offset)
}

// ListAll devuelve el libro completo en orden de inserción (para replay).
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements ORDER BY time_created, id`
	return r.findMany(ctx, "list all movements", query)
}

func (r *MovementRepo) findOne(ctx context.Context, op, query string, args ...any) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap(op, err)
	}
	return m, nil
}

func (r *MovementRepo) findMany(ctx context.Context, op, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return list, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var from, to *string
	if err := row.Scan(&m.ID, &m.MovementDate, &from, &to, &m.ProductID, &m.Qty, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if from != nil {
		m.FromLocationID = *from
	}
	if to != nil {
		m.ToLocationID = *to
	}
	return &m, nil
}

// nullable convierte "" en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
