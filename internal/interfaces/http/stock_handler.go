package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-relief/internal/application/inventory"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
)

// StockHandler consultas de stock disponible, planilla PDF y auditoría.
type StockHandler struct {
	query  *inventory.QueryUseCase
	report *inventory.ReportUseCase
	audit  *inventory.AuditUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(query *inventory.QueryUseCase, report *inventory.ReportUseCase, audit *inventory.AuditUseCase) *StockHandler {
	return &StockHandler{query: query, report: report, audit: audit}
}

// List godoc
// @Summary      Listar stock disponible
// @Tags         stock
// @Produce      json
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        sort         query  string  false  "product_id | available_stock | -available_stock"
// @Param        limit        query  int     false  "Límite"  default(35)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	filter := repository.StockFilter{
		LocationID: c.Query("location_id"),
		ProductID:  c.Query("product_id"),
		Limit:      c.QueryInt("limit", 0),
		Offset:     c.QueryInt("offset", 0),
	}
	sort := c.Query("sort")
	if len(sort) > 0 && sort[0] == '-' {
		filter.Desc = true
		sort = sort[1:]
	}
	filter.SortBy = sort
	out, err := h.query.ListStock(c.Context(), filter)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// SheetPDF godoc
// @Summary      Planilla de stock en PDF
// @Tags         stock
// @Produce      application/pdf
// @Param        location_id  query  string  false  "Solo esta ubicación"
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/sheet.pdf [get]
func (h *StockHandler) SheetPDF(c *fiber.Ctx) error {
	out, err := h.report.StockSheetPDF(c.Context(), c.Query("location_id"))
	if err != nil {
		return writeError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="stock.pdf"`)
	return c.Send(out)
}

// Audit godoc
// @Summary      Conciliar stock contra el libro de movimientos
// @Description  Reproduce todos los movimientos y compara con el stock materializado.
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.AuditResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/audit/stock [get]
func (h *StockHandler) Audit(c *fiber.Ctx) error {
	out, err := h.audit.Reconcile(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
