package inventory

import (
	"github.com/jhoicas/stock-relief/internal/application/dto"
	"github.com/jhoicas/stock-relief/internal/domain/entity"
)

func toTransferResponse(res *TransferResult) *dto.TransferResponse {
	stock := make([]dto.StockResponse, 0, len(res.Stocks))
	for _, s := range res.Stocks {
		stock = append(stock, toStockResponse(s))
	}
	return &dto.TransferResponse{
		Movement: toMovementResponse(res.Movement),
		Stock:    stock,
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		MovementDate:   m.MovementDate.Format(DateLayout),
		FromLocationID: optional(m.FromLocationID),
		ToLocationID:   optional(m.ToLocationID),
		ProductID:      m.ProductID,
		Qty:            m.Qty,
		Kind:           m.Kind(),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toStockResponse(s *entity.StockSnapshot) dto.StockResponse {
	return dto.StockResponse{
		ID:             s.ID,
		LocationID:     s.LocationID,
		ProductID:      s.ProductID,
		AvailableStock: s.AvailableStock,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
