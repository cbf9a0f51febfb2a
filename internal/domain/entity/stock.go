package entity

import "time"

// StockSnapshot stock disponible actual de un producto en una ubicación (tabla product_stock).
// Derivado del libro de movimientos; único por (LocationID, ProductID).
type StockSnapshot struct {
	ID             string
	LocationID     string
	ProductID      string
	AvailableStock int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Key devuelve la clave (ubicación, producto) del snapshot.
func (s *StockSnapshot) Key() StockKey {
	return StockKey{LocationID: s.LocationID, ProductID: s.ProductID}
}

// StockKey par (ubicación, producto).
type StockKey struct {
	LocationID string
	ProductID  string
}
