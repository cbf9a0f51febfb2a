package inventory

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/stock-relief/internal/domain"
	"github.com/jhoicas/stock-relief/internal/domain/entity"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
	"github.com/jhoicas/stock-relief/pkg/logger"
)

const instrumentationName = "github.com/jhoicas/stock-relief/internal/application/inventory"

// TransferProcessor es el motor de traslados: valida y aplica el alta o la enmienda de un movimiento
// como una única transacción sobre el libro (movements) y el snapshot (product_stock).
// Las filas de stock tocadas se bloquean (SELECT FOR UPDATE) en orden de location_id.
type TransferProcessor struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	log          *logger.Logger
	now          func() time.Time

	tracer   trace.Tracer
	applied  metric.Int64Counter
	rejected metric.Int64Counter
}

// NewTransferProcessor construye el motor. Los repos de producto/ubicación se usan fuera de la tx
// (datos de referencia inmutables para el motor).
func NewTransferProcessor(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	log *logger.Logger,
) *TransferProcessor {
	meter := otel.Meter(instrumentationName)
	applied, err := meter.Int64Counter("stock.movements.applied",
		metric.WithDescription("movimientos aplicados (alta o enmienda)"))
	if err != nil {
		applied = noop.Int64Counter{}
	}
	rejected, err := meter.Int64Counter("stock.movements.rejected",
		metric.WithDescription("movimientos rechazados por validación o error de almacenamiento"))
	if err != nil {
		rejected = noop.Int64Counter{}
	}
	return &TransferProcessor{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		log:          log,
		now:          time.Now,
		tracer:       otel.Tracer(instrumentationName),
		applied:      applied,
		rejected:     rejected,
	}
}

// CreateMovementInput entrada para registrar un movimiento.
// FromLocationID vacío = entrada desde fuera del sistema; ToLocationID vacío = salida del sistema.
type CreateMovementInput struct {
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Qty            int64
	MovementDate   time.Time // cero = fecha de hoy
}

// AmendMovementInput entrada para corregir la cantidad de un movimiento existente.
// Las ubicaciones del movimiento no cambian.
type AmendMovementInput struct {
	MovementID string
	Qty        int64
}

// TransferResult movimiento persistido y filas de stock afectadas por la operación.
type TransferResult struct {
	Movement *entity.Movement
	Stocks   []*entity.StockSnapshot
}

// Create valida y registra un movimiento nuevo.
//  1. Rechaza si no hay origen ni destino.
//  2. Destino: suma Qty (siempre permitido, crea la fila si no existe).
//  3. Origen: sin fila -> ErrNoStockRecord; stock < Qty -> ErrInsufficientStock; si no, resta Qty.
//  4. Persiste el movimiento. Cualquier fallo revierte todo.
func (p *TransferProcessor) Create(ctx context.Context, in CreateMovementInput) (*TransferResult, error) {
	ctx, span := p.tracer.Start(ctx, "inventory.Create", trace.WithAttributes(
		attribute.String("product_id", in.ProductID),
		attribute.String("from_location_id", in.FromLocationID),
		attribute.String("to_location_id", in.ToLocationID),
		attribute.Int64("qty", in.Qty),
	))
	defer span.End()

	res, err := p.create(ctx, in)
	p.record(ctx, span, "create", "", err)
	return res, err
}

func (p *TransferProcessor) create(ctx context.Context, in CreateMovementInput) (*TransferResult, error) {
	if in.FromLocationID == "" && in.ToLocationID == "" {
		return nil, domain.ErrMissingLocations
	}
	if in.ProductID == "" || in.Qty < 0 || in.FromLocationID == in.ToLocationID {
		return nil, domain.ErrInvalidInput
	}
	if err := p.checkReferences(ctx, in.ProductID, in.FromLocationID, in.ToLocationID); err != nil {
		return nil, err
	}

	date := in.MovementDate
	if date.IsZero() {
		date = p.now()
	}
	date = truncateDay(date)

	var result *TransferResult
	err := p.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		locked, err := lockPairs(ctx, stockRepo, in.ProductID, in.FromLocationID, in.ToLocationID)
		if err != nil {
			return err
		}
		touched := make([]*entity.StockSnapshot, 0, 2)

		if in.ToLocationID != "" {
			s, err := stockRepo.UpsertDelta(ctx, in.ToLocationID, in.ProductID, in.Qty)
			if err != nil {
				return withLeg(err, domain.LegTo)
			}
			touched = append(touched, s)
		}

		if in.FromLocationID != "" {
			cur := locked[in.FromLocationID]
			if cur == nil {
				return stockErr(domain.ErrNoStockRecord, domain.LegFrom, in.FromLocationID, in.ProductID, 0)
			}
			if cur.AvailableStock < in.Qty {
				return stockErr(domain.ErrInsufficientStock, domain.LegFrom, in.FromLocationID, in.ProductID, cur.AvailableStock)
			}
			s, err := stockRepo.UpsertDelta(ctx, in.FromLocationID, in.ProductID, -in.Qty)
			if err != nil {
				return withLeg(err, domain.LegFrom)
			}
			touched = append(touched, s)
		}

		mov := &entity.Movement{
			MovementDate:   date,
			FromLocationID: in.FromLocationID,
			ToLocationID:   in.ToLocationID,
			ProductID:      in.ProductID,
			Qty:            in.Qty,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		result = &TransferResult{Movement: mov, Stocks: touched}
		return nil
	})
	if err != nil {
		return nil, p.describe(ctx, err)
	}
	return result, nil
}

// Amend cambia la cantidad de un movimiento ajustando el snapshot por la diferencia, no por el total.
//   - Origen: delta = Qty anterior - Qty nueva. Sin fila -> ErrNoStockRecord; stock + delta < 0 -> ErrInsufficientStock.
//   - Destino: delta = Qty nueva - Qty anterior. Sin fila y delta < 0 -> ErrNoStockRecord;
//     sin fila y delta >= 0 -> se crea; stock + delta < 0 -> ErrInsufficientStock.
//
// El movimiento se lee y bloquea dentro de la misma transacción (estado previo a la enmienda).
func (p *TransferProcessor) Amend(ctx context.Context, in AmendMovementInput) (*TransferResult, error) {
	ctx, span := p.tracer.Start(ctx, "inventory.Amend", trace.WithAttributes(
		attribute.String("movement_id", in.MovementID),
		attribute.Int64("qty", in.Qty),
	))
	defer span.End()

	res, err := p.amend(ctx, in)
	p.record(ctx, span, "amend", in.MovementID, err)
	return res, err
}

func (p *TransferProcessor) amend(ctx context.Context, in AmendMovementInput) (*TransferResult, error) {
	if in.MovementID == "" || in.Qty < 0 {
		return nil, domain.ErrInvalidInput
	}

	var result *TransferResult
	err := p.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		old, err := movRepo.GetForUpdate(ctx, in.MovementID)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		locked, err := lockPairs(ctx, stockRepo, old.ProductID, old.FromLocationID, old.ToLocationID)
		if err != nil {
			return err
		}
		touched := make([]*entity.StockSnapshot, 0, 2)

		if old.HasFrom() {
			delta := old.Qty - in.Qty
			cur := locked[old.FromLocationID]
			if cur == nil {
				return stockErr(domain.ErrNoStockRecord, domain.LegFrom, old.FromLocationID, old.ProductID, 0)
			}
			if cur.AvailableStock+delta < 0 {
				return stockErr(domain.ErrInsufficientStock, domain.LegFrom, old.FromLocationID, old.ProductID, cur.AvailableStock)
			}
			s, err := stockRepo.UpsertDelta(ctx, old.FromLocationID, old.ProductID, delta)
			if err != nil {
				return withLeg(err, domain.LegFrom)
			}
			touched = append(touched, s)
		}

		if old.HasTo() {
			delta := in.Qty - old.Qty
			cur := locked[old.ToLocationID]
			switch {
			case cur == nil && delta < 0:
				return stockErr(domain.ErrNoStockRecord, domain.LegTo, old.ToLocationID, old.ProductID, 0)
			case cur != nil && cur.AvailableStock+delta < 0:
				return stockErr(domain.ErrInsufficientStock, domain.LegTo, old.ToLocationID, old.ProductID, cur.AvailableStock)
			}
			s, err := stockRepo.UpsertDelta(ctx, old.ToLocationID, old.ProductID, delta)
			if err != nil {
				return withLeg(err, domain.LegTo)
			}
			touched = append(touched, s)
		}

		updated, err := movRepo.UpdateQty(ctx, old.ID, in.Qty)
		if err != nil {
			return err
		}
		result = &TransferResult{Movement: updated, Stocks: touched}
		return nil
	})
	if err != nil {
		return nil, p.describe(ctx, err)
	}
	return result, nil
}

// lockPairs bloquea las filas de stock del producto en las ubicaciones dadas, en orden de location_id,
// para que dos traslados en sentidos opuestos no se bloqueen mutuamente.
// Devuelve el stock actual por ubicación (nil si la fila no existe).
func lockPairs(ctx context.Context, stockRepo repository.StockRepository, productID string, locationIDs ...string) (map[string]*entity.StockSnapshot, error) {
	ids := make([]string, 0, len(locationIDs))
	for _, id := range locationIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := make(map[string]*entity.StockSnapshot, len(ids))
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		s, err := stockRepo.FindForUpdate(ctx, id, productID)
		if err != nil {
			return nil, err
		}
		out[id] = s
	}
	return out, nil
}

// checkReferences verifica que producto y ubicaciones existan (fuera de la transacción).
func (p *TransferProcessor) checkReferences(ctx context.Context, productID string, locationIDs ...string) error {
	product, err := p.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	for _, id := range locationIDs {
		if id == "" {
			continue
		}
		loc, err := p.locationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// describe completa los nombres de producto y ubicación de un StockError para el mensaje al usuario.
// Se ejecuta después del Rollback; si la consulta falla se deja el error con los IDs.
func (p *TransferProcessor) describe(ctx context.Context, err error) error {
	var se *domain.StockError
	if !errors.As(err, &se) {
		return err
	}
	if product, lerr := p.productRepo.GetByID(ctx, se.ProductID); lerr == nil && product != nil {
		se.ProductName = product.Name
	}
	if loc, lerr := p.locationRepo.GetByID(ctx, se.LocationID); lerr == nil && loc != nil {
		se.LocationName = loc.Name
	}
	return err
}

func (p *TransferProcessor) record(ctx context.Context, span trace.Span, op, movementID string, err error) {
	opAttr := attribute.String("op", op)
	if err == nil {
		p.applied.Add(ctx, 1, metric.WithAttributes(opAttr))
		return
	}
	reason := rejectionReason(err)
	p.rejected.Add(ctx, 1, metric.WithAttributes(opAttr, attribute.String("reason", reason)))
	span.RecordError(err)

	if reason == "storage" {
		span.SetStatus(codes.Error, err.Error())
		p.log.Error().Err(err).Str("op", op).Str("movement_id", movementID).Msg("error de almacenamiento en movimiento")
		return
	}
	ev := p.log.Warn().Err(err).Str("op", op).Str("reason", reason)
	if movementID != "" {
		ev = ev.Str("movement_id", movementID)
	}
	var se *domain.StockError
	if errors.As(err, &se) {
		ev = ev.Str("leg", string(se.Leg)).
			Str("location_id", se.LocationID).
			Str("product_id", se.ProductID).
			Int64("available", se.Available)
	}
	ev.Msg("movimiento rechazado")
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingLocations):
		return "missing_locations"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNoStockRecord):
		return "no_stock_record"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	}
	return "storage"
}

func stockErr(kind error, leg domain.Leg, locationID, productID string, available int64) error {
	return &domain.StockError{
		Kind:       kind,
		Leg:        leg,
		LocationID: locationID,
		ProductID:  productID,
		Available:  available,
	}
}

// withLeg marca el lado del movimiento en un rechazo devuelto por el propio store.
func withLeg(err error, leg domain.Leg) error {
	var se *domain.StockError
	if errors.As(err, &se) && se.Leg == "" {
		se.Leg = leg
	}
	return err
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
