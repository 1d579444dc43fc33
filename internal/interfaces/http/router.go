package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/application/production"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockItems *inventory.StockItemService
	Ledger     *inventory.LedgerRecorder
	Transfer   *inventory.TransferOrchestrator
	Blend      *production.BlendConsumptionOrchestrator
	Batches    *production.BatchService
	JWTSecret  string
	Log        zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	inventoryHandler := NewInventoryHandler(deps.StockItems, deps.Ledger, deps.Transfer, deps.Log)
	items := api.Group("/stock-items")
	items.Post("/", inventoryHandler.RegisterItem)
	items.Get("/", inventoryHandler.ListItems)
	items.Get("/:id", inventoryHandler.GetItem)
	items.Get("/:id/kardex", inventoryHandler.Kardex)

	invGroup := api.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RecordMovement)
	invGroup.Post("/transfers", inventoryHandler.Transfer)

	productionHandler := NewProductionHandler(deps.Blend, deps.Batches, deps.Log)
	batches := api.Group("/production/batches")
	batches.Post("/", productionHandler.CreateBatch)
	batches.Get("/", productionHandler.ListBatches)
	batches.Get("/:id", productionHandler.GetBatch)
	batches.Patch("/:id/status", productionHandler.AdvanceBatch)

	api.Get("/staging/:id", productionHandler.GetStaging)
}
