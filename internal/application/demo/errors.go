package demo

import (
	"errors"

	"github.com/jhoicas/stock-relief/internal/domain"
)

func isRejection(err error) bool {
	return errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrNoStockRecord)
}
