package entity

import "time"

// Tipos de movimiento según las ubicaciones informadas.
const (
	MovementKindInbound  = "inbound"  // solo destino: entra stock al sistema
	MovementKindOutbound = "outbound" // solo origen: sale stock del sistema
	MovementKindTransfer = "transfer" // origen y destino
)

// Movement representa un registro del libro de movimientos (tabla movements).
// FromLocationID / ToLocationID vacíos significan "sin ubicación" (NULL).
type Movement struct {
	ID             string
	MovementDate   time.Time
	FromLocationID string
	ToLocationID   string
	ProductID      string
	Qty            int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (m *Movement) HasFrom() bool { return m.FromLocationID != "" }
func (m *Movement) HasTo() bool   { return m.ToLocationID != "" }

// Kind devuelve inbound, outbound o transfer; vacío si no tiene ninguna ubicación.
func (m *Movement) Kind() string {
	switch {
	case m.HasFrom() && m.HasTo():
		return MovementKindTransfer
	case m.HasTo():
		return MovementKindInbound
	case m.HasFrom():
		return MovementKindOutbound
	}
	return ""
}
