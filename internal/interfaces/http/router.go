package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-relief/internal/application/inventory"
	"github.com/jhoicas/stock-relief/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Processor   *inventory.TransferProcessor
	QueryUC     *inventory.QueryUseCase
	ReportUC    *inventory.ReportUseCase
	AuditUC     *inventory.AuditUseCase
	ReferenceUC *usecase.ReferenceUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Movimientos (libro + motor de traslados)
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.Processor, deps.QueryUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Patch("/:id", movementHandler.Amend)

	// Stock disponible
	stockHandler := NewStockHandler(deps.QueryUC, deps.ReportUC, deps.AuditUC)
	api.Get("/stock", stockHandler.List)
	api.Get("/stock/sheet.pdf", stockHandler.SheetPDF)
	api.Get("/audit/stock", stockHandler.Audit)

	// Datos de referencia (solo lectura)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ReferenceUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.ReferenceUC)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
}
