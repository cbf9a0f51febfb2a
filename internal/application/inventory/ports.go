package inventory

import (
	"context"

	"github.com/jhoicas/stock-relief/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ningún cambio es visible; si no, Commit.
// Garantiza atomicidad para el motor de traslados.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// StockSheetGenerator genera la planilla imprimible de stock (PDF).
type StockSheetGenerator interface {
	GenerateStockSheet(ctx context.Context, sheet StockSheet) ([]byte, error)
}
