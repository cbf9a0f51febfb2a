package dto

import "time"

// CreateMovementRequest body para POST /api/movements.
// Debe indicar from_location_id, to_location_id o ambos.
type CreateMovementRequest struct {
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id,omitempty"`
	ToLocationID   string `json:"to_location_id,omitempty"`
	Qty            int64  `json:"qty"`
	MovementDate   string `json:"movement_date,omitempty"` // YYYY-MM-DD; vacío = hoy
}

// AmendMovementRequest body para PATCH /api/movements/{id}. Solo la cantidad es editable.
type AmendMovementRequest struct {
	Qty *int64 `json:"qty"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID             string    `json:"id"`
	MovementDate   string    `json:"movement_date"`
	FromLocationID *string   `json:"from_location_id"`
	ToLocationID   *string   `json:"to_location_id"`
	ProductID      string    `json:"product_id"`
	Qty            int64     `json:"qty"`
	Kind           string    `json:"kind"`
	CreatedAt      time.Time `json:"time_created"`
	UpdatedAt      time.Time `json:"time_updated"`
}

// StockResponse salida de una fila de stock (ubicación, producto).
type StockResponse struct {
	ID             string    `json:"id"`
	LocationID     string    `json:"location_id"`
	ProductID      string    `json:"product_id"`
	AvailableStock int64     `json:"available_stock"`
	CreatedAt      time.Time `json:"time_created"`
	UpdatedAt      time.Time `json:"time_updated"`
}

// TransferResponse resultado de un alta o enmienda: el movimiento y las filas de stock afectadas.
type TransferResponse struct {
	Movement MovementResponse `json:"movement"`
	Stock    []StockResponse  `json:"stock"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockListResponse lista paginada de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// DiscrepancyResponse par cuyo snapshot no coincide con el libro.
type DiscrepancyResponse struct {
	LocationID string `json:"location_id"`
	ProductID  string `json:"product_id"`
	Snapshot   int64  `json:"snapshot"`
	Ledger     int64  `json:"ledger"`
	Missing    bool   `json:"missing_row"`
}

// AuditResponse resultado de la conciliación snapshot vs. libro.
type AuditResponse struct {
	Consistent    bool                  `json:"consistent"`
	Movements     int                   `json:"movements"`
	StockRows     int                   `json:"stock_rows"`
	Discrepancies []DiscrepancyResponse `json:"discrepancies"`
}
