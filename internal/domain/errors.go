package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrMissingLocations  = errors.New(`"ubicación origen" y "ubicación destino" no pueden estar vacías a la vez`)
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNoStockRecord     = errors.New("sin stock registrado")
)

// Leg identifica el lado de un movimiento que afecta el stock.
type Leg string

const (
	LegFrom Leg = "from" // salida desde la ubicación origen
	LegTo   Leg = "to"   // entrada en la ubicación destino
)

// StockError rechazo de un movimiento por stock. Kind es ErrInsufficientStock o ErrNoStockRecord;
// Available es siempre el stock actual del par (ubicación, producto) antes de aplicar el delta.
type StockError struct {
	Kind         error
	Leg          Leg
	LocationID   string
	ProductID    string
	LocationName string
	ProductName  string
	Available    int64
}

func (e *StockError) Error() string {
	product := nameOr(e.ProductName, e.ProductID)
	location := nameOr(e.LocationName, e.LocationID)
	if errors.Is(e.Kind, ErrNoStockRecord) {
		return fmt.Sprintf(`stock cero de "%s" disponible en "%s" (%s)`, product, location, e.Leg)
	}
	return fmt.Sprintf(`stock insuficiente de "%s" en "%s" (%s): disponible %d`, product, location, e.Leg, e.Available)
}

// Unwrap permite errors.Is(err, domain.ErrInsufficientStock).
func (e *StockError) Unwrap() error { return e.Kind }

func nameOr(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
