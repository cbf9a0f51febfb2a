package inventory

import "github.com/jhoicas/stock-relief/internal/domain/entity"

// Effect devuelve el delta neto que un movimiento aplica a cada par (ubicación, producto):
// -Qty en origen y +Qty en destino. Un movimiento sin ubicaciones no tiene efecto.
func Effect(m *entity.Movement) map[entity.StockKey]int64 {
	out := make(map[entity.StockKey]int64, 2)
	if m.HasTo() {
		out[entity.StockKey{LocationID: m.ToLocationID, ProductID: m.ProductID}] += m.Qty
	}
	if m.HasFrom() {
		out[entity.StockKey{LocationID: m.FromLocationID, ProductID: m.ProductID}] -= m.Qty
	}
	return out
}

// Replay recalcula el stock de cada par a partir del libro completo (entradas menos salidas).
// Es la referencia contra la que se compara el snapshot materializado.
func Replay(movements []*entity.Movement) map[entity.StockKey]int64 {
	totals := make(map[entity.StockKey]int64)
	for _, m := range movements {
		for k, d := range Effect(m) {
			totals[k] += d
		}
	}
	return totals
}

// Discrepancy diferencia entre el snapshot y el libro para un par.
type Discrepancy struct {
	Key      entity.StockKey
	Snapshot int64
	Ledger   int64
	Missing  bool // el libro tiene stock para el par pero no existe fila de snapshot
}

// Compare contrasta los snapshots con el resultado de Replay.
// Un par sin fila y con total de libro cero no se considera discrepancia (el snapshot se crea de forma perezosa).
func Compare(snapshots []*entity.StockSnapshot, ledger map[entity.StockKey]int64) []Discrepancy {
	var out []Discrepancy
	seen := make(map[entity.StockKey]bool, len(snapshots))
	for _, s := range snapshots {
		k := s.Key()
		seen[k] = true
		if want := ledger[k]; want != s.AvailableStock {
			out = append(out, Discrepancy{Key: k, Snapshot: s.AvailableStock, Ledger: want})
		}
	}
	for k, want := range ledger {
		if seen[k] || want == 0 {
			continue
		}
		out = append(out, Discrepancy{Key: k, Ledger: want, Missing: true})
	}
	return out
}
