package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/production"
)

// ProductionHandler blends de mineral y contadores de etapa (protegido).
type ProductionHandler struct {
	blend   *production.BlendConsumptionOrchestrator
	batches *production.BatchService
	log     zerolog.Logger
}

// NewProductionHandler construye el handler.
func NewProductionHandler(blend *production.BlendConsumptionOrchestrator, batches *production.BatchService, log zerolog.Logger) *ProductionHandler {
	return &ProductionHandler{blend: blend, batches: batches, log: log}
}

// CreateBatch godoc
// @Summary      Programar blend (consume todos los lotes o ninguno)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "composition [{item_id, quantity}], start_time"
// @Success      201   {object}  dto.ProductionBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/batches [post]
func (h *ProductionHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	comp := make([]production.ComponentInput, 0, len(in.Composition))
	for _, line := range in.Composition {
		comp = append(comp, production.ComponentInput{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	var start time.Time
	if in.StartTime != nil {
		start = *in.StartTime
	}
	batch, err := h.blend.CreateBatch(c.UserContext(), production.CreateBatchInput{
		Composition: comp,
		StartTime:   start,
		Actor:       GetActor(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(batch))
}

// GetBatch godoc
// @Summary      Obtener blend por ID
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del blend"
// @Success      200  {object}  dto.ProductionBatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/batches/{id} [get]
func (h *ProductionHandler) GetBatch(c *fiber.Ctx) error {
	batch, err := h.batches.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// ListBatches godoc
// @Summary      Listar blends
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PROGRAMMED | IN_PROGRESS | COMPLETED"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ProductionBatchListResponse
// @Router       /api/production/batches [get]
func (h *ProductionHandler) ListBatches(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.batches.List(c.UserContext(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	items := make([]dto.ProductionBatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, toBatchResponse(b))
	}
	return c.JSON(dto.ProductionBatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// AdvanceBatch godoc
// @Summary      Avanzar estado del blend
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del blend"
// @Param        body  body  dto.AdvanceBatchRequest  true  "status"
// @Success      200   {object}  dto.ProductionBatchResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/batches/{id}/status [patch]
func (h *ProductionHandler) AdvanceBatch(c *fiber.Ctx) error {
	var in dto.AdvanceBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	batch, err := h.batches.Advance(c.UserContext(), c.Params("id"), in.Status, GetActor(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// GetStaging godoc
// @Summary      Acumulado de una tolva / contador de etapa
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contador"
// @Success      200  {object}  dto.StagingCounterResponse
// @Router       /api/staging/{id} [get]
func (h *ProductionHandler) GetStaging(c *fiber.Ctx) error {
	counter, err := h.batches.Staging(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.StagingCounterResponse{
		ID:        counter.ID,
		Name:      counter.Name,
		Quantity:  counter.Quantity,
		UpdatedAt: counter.UpdatedAt,
	})
}
