package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-relief/internal/application/usecase"
)

// LocationHandler consultas de ubicaciones (solo lectura).
type LocationHandler struct {
	uc *usecase.ReferenceUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.ReferenceUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener ubicación por ID
// @Tags         locations
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetLocation(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "ubicación no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         locations
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(50)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.LocationListResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListLocations(c.Context(), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
