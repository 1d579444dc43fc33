package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// InventoryHandler maneja lotes, movimientos del kardex y traslados (protegido).
type InventoryHandler struct {
	items    *inventory.StockItemService
	ledger   *inventory.LedgerRecorder
	transfer *inventory.TransferOrchestrator
	log      zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	items *inventory.StockItemService,
	ledger *inventory.LedgerRecorder,
	transfer *inventory.TransferOrchestrator,
	log zerolog.Logger,
) *InventoryHandler {
	return &InventoryHandler{items: items, ledger: ledger, transfer: transfer, log: log}
}

// RegisterItem godoc
// @Summary      Registrar lote de stock (primera recepción)
// @Tags         stock-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterStockItemRequest  true  "name, location, unit, initial_quantity"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-items [post]
func (h *InventoryHandler) RegisterItem(c *fiber.Ctx) error {
	var in dto.RegisterStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.items.Register(c.UserContext(), inventory.RegisterItemInput{
		Name:            in.Name,
		Category:        in.Category,
		Unit:            in.Unit,
		Location:        in.Location,
		Origin:          in.Origin,
		MinQuantity:     in.MinQuantity,
		InitialQuantity: in.InitialQuantity,
		Subtype:         in.Subtype,
		Note:            in.Note,
		Actor:           GetActor(c),
		Reference:       in.Reference,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockItemResponse(item))
}

// GetItem godoc
// @Summary      Obtener lote por ID
// @Tags         stock-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.items.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toStockItemResponse(item))
}

// ListItems godoc
// @Summary      Listar lotes
// @Tags         stock-items
// @Security     Bearer
// @Produce      json
// @Param        location       query  string  false  "Ubicación (sin distinguir mayúsculas/espacios)"
// @Param        category       query  string  false  "Categoría"
// @Param        below_minimum  query  bool    false  "Solo lotes bajo el punto de reorden"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockItemListResponse
// @Router       /api/stock-items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.items.List(c.UserContext(), entity.StockItemFilter{
		Location:     c.Query("location"),
		Category:     c.Query("category"),
		BelowMinimum: c.QueryBool("below_minimum", false),
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	items := make([]dto.StockItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, toStockItemResponse(it))
	}
	return c.JSON(dto.StockItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Kardex godoc
// @Summary      Kardex (historial de movimientos) de un lote
// @Tags         stock-items
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del lote"
// @Param        limit   query  int     false  "Límite"  default(100)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.KardexResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id}/kardex [get]
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	id := c.Params("id")
	limit, offset := inventory.KardexPage(c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	list, err := h.items.Kardex(c.UserContext(), id, limit, offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	movs := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		movs = append(movs, toMovementResponse(m))
	}
	return c.JSON(dto.KardexResponse{
		ItemID:    id,
		Movements: movs,
		Page:      dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// RecordMovement godoc
// @Summary      Registrar movimiento de kardex (ENTRY, EXIT, ADJUSTMENT)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "item_id, type, subtype, quantity (con signo en ADJUSTMENT)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.ledger.Record(c.UserContext(), inventory.RecordInput{
		ItemID:    in.ItemID,
		Type:      in.Type,
		Subtype:   in.Subtype,
		Quantity:  in.Quantity,
		Note:      in.Note,
		Actor:     GetActor(c),
		Reference: in.Reference,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// Transfer godoc
// @Summary      Trasladar material a otra ubicación (crea un lote nuevo en destino)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "source_item_id, destination_location, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.transfer.Transfer(c.UserContext(), inventory.TransferInput{
		SourceItemID:        in.SourceItemID,
		DestinationLocation: in.DestinationLocation,
		Quantity:            in.Quantity,
		Note:                in.Note,
		Actor:               GetActor(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		TransferID:         res.TransferID,
		SourceBalance:      res.SourceBalance,
		DestinationItemID:  res.DestinationItemID,
		DestinationBalance: res.DestinationBalance,
		ExitMovementID:     res.ExitMovementID,
		EntryMovementID:    res.EntryMovementID,
	})
}
