package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-relief/internal/application/dto"
	"github.com/jhoicas/stock-relief/internal/domain"
)

// DateLayout formato de movement_date en la API.
const DateLayout = "2006-01-02"

// CreateFromRequest adapta el request HTTP al motor (Create) y devuelve la respuesta ya mapeada.
// Usar desde handlers HTTP o desde la carga de datos demo.
func (p *TransferProcessor) CreateFromRequest(ctx context.Context, in dto.CreateMovementRequest) (*dto.TransferResponse, error) {
	input := CreateMovementInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Qty:            in.Qty,
	}
	if in.MovementDate != "" {
		d, err := time.Parse(DateLayout, in.MovementDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		input.MovementDate = d
	}
	res, err := p.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	return toTransferResponse(res), nil
}

// AmendFromRequest adapta el request HTTP al motor (Amend).
func (p *TransferProcessor) AmendFromRequest(ctx context.Context, movementID string, in dto.AmendMovementRequest) (*dto.TransferResponse, error) {
	if in.Qty == nil {
		return nil, domain.ErrInvalidInput
	}
	res, err := p.Amend(ctx, AmendMovementInput{MovementID: movementID, Qty: *in.Qty})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(res), nil
}
