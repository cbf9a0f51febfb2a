package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-relief/internal/application/dto"
	"github.com/jhoicas/stock-relief/internal/domain/inventory"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
	"github.com/jhoicas/stock-relief/pkg/logger"
)

// AuditUseCase concilia el snapshot de stock contra una reproducción completa del libro.
type AuditUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewAuditUseCase construye el caso de uso. Usa una transacción para leer libro y snapshot
// desde la misma vista de la base.
func NewAuditUseCase(txRunner TxRunner, log *logger.Logger) *AuditUseCase {
	return &AuditUseCase{txRunner: txRunner, log: log}
}

// Reconcile reproduce todos los movimientos y devuelve los pares cuyo snapshot difiere.
func (uc *AuditUseCase) Reconcile(ctx context.Context) (*dto.AuditResponse, error) {
	out := &dto.AuditResponse{Discrepancies: []dto.DiscrepancyResponse{}}
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		movements, err := movRepo.ListAll(ctx)
		if err != nil {
			return err
		}
		snapshots, err := stockRepo.ListAll(ctx)
		if err != nil {
			return err
		}
		out.Movements = len(movements)
		out.StockRows = len(snapshots)
		for _, d := range inventory.Compare(snapshots, inventory.Replay(movements)) {
			out.Discrepancies = append(out.Discrepancies, dto.DiscrepancyResponse{
				LocationID: d.Key.LocationID,
				ProductID:  d.Key.ProductID,
				Snapshot:   d.Snapshot,
				Ledger:     d.Ledger,
				Missing:    d.Missing,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out.Discrepancies, func(i, j int) bool {
		a, b := out.Discrepancies[i], out.Discrepancies[j]
		if a.LocationID != b.LocationID {
			return a.LocationID < b.LocationID
		}
		return a.ProductID < b.ProductID
	})
	out.Consistent = len(out.Discrepancies) == 0
	if !out.Consistent {
		uc.log.Warn().Int("discrepancies", len(out.Discrepancies)).Msg("snapshot de stock no coincide con el libro")
	}
	return out, nil
}
