package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-relief/internal/domain"
	"github.com/jhoicas/stock-relief/internal/domain/entity"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, location_id, product_id, available_stock, time_created, time_updated`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Find obtiene el stock de un producto en una ubicación; nil, nil si no hay fila.
func (r *StockRepo) Find(ctx context.Context, locationID, productID string) (*entity.StockSnapshot, error) {
	query := `SELECT ` + stockColumns + `
		FROM product_stock WHERE location_id = $1 AND product_id = $2`
	return r.findOne(ctx, "get stock", query, locationID, productID)
}

// FindForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) FindForUpdate(ctx context.Context, locationID, productID string) (*entity.StockSnapshot, error) {
	query := `SELECT ` + stockColumns + `
		FROM product_stock WHERE location_id = $1 AND product_id = $2
		FOR UPDATE`
	return r.findOne(ctx, "get stock for update", query, locationID, productID)
}

// UpsertDelta suma delta al stock disponible en una sola sentencia.
// delta >= 0: INSERT ... ON CONFLICT DO UPDATE (crea la fila si no existe).
// delta < 0: UPDATE condicionado a que el resultado no sea negativo; si no afecta filas se
// consulta el estado actual para devolver el StockError adecuado.
func (r *StockRepo) UpsertDelta(ctx context.Context, locationID, productID string, delta int64) (*entity.StockSnapshot, error) {
	if delta >= 0 {
		query := `
			INSERT INTO product_stock (id, location_id, product_id, available_stock, time_created, time_updated)
			VALUES (gen_random_uuid(), $1, $2, $3, now(), now())
			ON CONFLICT (location_id, product_id)
			DO UPDATE SET available_stock = product_stock.available_stock + EXCLUDED.available_stock,
				time_updated = now()
			RETURNING ` + stockColumns
		s, err := scanStock(r.q.QueryRow(ctx, query, locationID, productID, delta))
		if err != nil {
			return nil, mapWriteError("upsert stock", err)
		}
		return s, nil
	}

	query := `
		UPDATE product_stock SET available_stock = available_stock + $3, time_updated = now()
		WHERE location_id = $1 AND product_id = $2 AND available_stock + $3 >= 0
		RETURNING ` + stockColumns
	s, err := scanStock(r.q.QueryRow(ctx, query, locationID, productID, delta))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) && !isCheckViolation(err) {
		return nil, wrap("update stock", err)
	}

	cur, ferr := r.Find(ctx, locationID, productID)
	if ferr != nil {
		return nil, ferr
	}
	if cur == nil {
		return nil, &domain.StockError{Kind: domain.ErrNoStockRecord, LocationID: locationID, ProductID: productID}
	}
	return nil, &domain.StockError{
		Kind:       domain.ErrInsufficientStock,
		LocationID: locationID,
		ProductID:  productID,
		Available:  cur.AvailableStock,
	}
}

// List lista stock filtrado; orden por producto (por defecto) o por stock disponible.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter) ([]*entity.StockSnapshot, error) {
	dir := "ASC"
	if filter.Desc {
		dir = "DESC"
	}
	order := "product_id " + dir + ", location_id " + dir
	if filter.SortBy == repository.StockSortAvailable {
		order = "available_stock " + dir + ", " + order
	}
	limit := any(nil)
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	query := `SELECT ` + stockColumns + `
		FROM product_stock
		WHERE ($1 = '' OR location_id::text = $1) AND ($2 = '' OR product_id::text = $2)
		ORDER BY ` + order + `
		LIMIT $3 OFFSET $4`
	return r.findMany(ctx, "list stock", query, filter.LocationID, filter.ProductID, limit, filter.Offset)
}

// ListAll devuelve todas las filas de stock ordenadas por ubicación y producto.
func (r *StockRepo) ListAll(ctx context.Context) ([]*entity.StockSnapshot, error) {
	query := `SELECT ` + stockColumns + ` FROM product_stock ORDER BY location_id, product_id`
	return r.findMany(ctx, "list all stock", query)
}

func (r *StockRepo) findOne(ctx context.Context, op, query string, args ...any) (*entity.StockSnapshot, error) {
	s, err := scanStock(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap(op, err)
	}
	return s, nil
}

func (r *StockRepo) findMany(ctx context.Context, op, query string, args ...any) ([]*entity.StockSnapshot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()
	var list []*entity.StockSnapshot
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return list, nil
}

func scanStock(row pgx.Row) (*entity.StockSnapshot, error) {
	var s entity.StockSnapshot
	if err := row.Scan(&s.ID, &s.LocationID, &s.ProductID, &s.AvailableStock, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
