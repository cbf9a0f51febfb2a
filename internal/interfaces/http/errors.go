package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-relief/internal/application/dto"
	"github.com/jhoicas/stock-relief/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP.
// Los rechazos por stock devuelven 409 con el lado, la ubicación y el stock disponible.
func writeError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var se *domain.StockError
	if errors.As(err, &se) {
		code := "INSUFFICIENT_STOCK"
		if errors.Is(se, domain.ErrNoStockRecord) {
			code = "NO_STOCK_RECORD"
		}
		return c.Status(fiber.StatusConflict).JSON(dto.StockErrorResponse{
			Code:       code,
			Message:    se.Error(),
			Leg:        string(se.Leg),
			LocationID: se.LocationID,
			ProductID:  se.ProductID,
			Available:  se.Available,
		})
	}
	switch {
	case errors.Is(err, domain.ErrMissingLocations):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_LOCATIONS", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFoundMsg})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
