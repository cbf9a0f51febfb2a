package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-relief/internal/application/dto"
	"github.com/jhoicas/stock-relief/internal/application/inventory"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
)

// MovementHandler maneja el alta, la enmienda y la consulta de movimientos.
type MovementHandler struct {
	processor *inventory.TransferProcessor
	query     *inventory.QueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(processor *inventory.TransferProcessor, query *inventory.QueryUseCase) *MovementHandler {
	return &MovementHandler{processor: processor, query: query}
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  Entrada (solo to_location_id), salida (solo from_location_id) o traslado (ambos).
// @Description  El movimiento y el stock se actualizan en una sola transacción.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, from_location_id y/o to_location_id, qty, movement_date (YYYY-MM-DD)"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.processor.CreateFromRequest(c.Context(), in)
	if err != nil {
		return writeError(c, err, "producto o ubicación no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Amend godoc
// @Summary      Corregir cantidad de un movimiento
// @Description  Ajusta el stock por la diferencia entre la cantidad anterior y la nueva.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del movimiento"
// @Param        body  body  dto.AmendMovementRequest  true  "qty"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/movements/{id} [patch]
func (h *MovementHandler) Amend(c *fiber.Ctx) error {
	var in dto.AmendMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.processor.AmendFromRequest(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "movimiento no encontrado")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "movimiento no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación (origen o destino)"
// @Param        from         query  string  false  "Fecha desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Fecha hasta (YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Limit:      c.QueryInt("limit", 0),
		Offset:     c.QueryInt("offset", 0),
	}
	for key, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		d, err := time.Parse(inventory.DateLayout, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: key + " debe tener formato YYYY-MM-DD"})
		}
		*dst = &d
	}
	out, err := h.query.ListMovements(c.Context(), filter)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
