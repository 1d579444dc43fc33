package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterStockItemRequest body para POST /api/stock-items.
type RegisterStockItemRequest struct {
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Unit            string          `json:"unit"`
	Location        string          `json:"location"`
	Origin          string          `json:"origin,omitempty"`
	MinQuantity     decimal.Decimal `json:"min_quantity"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	Subtype         string          `json:"subtype,omitempty"` // INITIAL (defecto), PURCHASE, RETURN
	Note            string          `json:"note,omitempty"`
	Reference       string          `json:"reference,omitempty"`
}

// StockItemResponse lote de stock.
type StockItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	Location     string          `json:"location"`
	Origin       string          `json:"origin,omitempty"`
	MinQuantity  decimal.Decimal `json:"min_quantity"`
	BelowMinimum bool            `json:"below_minimum"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockItemListResponse listado paginado de lotes.
type StockItemListResponse struct {
	Items []StockItemResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// RecordMovementRequest body para POST /api/inventory/movements.
// Para ADJUSTMENT, quantity lleva signo.
type RecordMovementRequest struct {
	ItemID    string          `json:"item_id"`
	Type      string          `json:"type"`
	Subtype   string          `json:"subtype,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Note      string          `json:"note,omitempty"`
	Reference string          `json:"reference,omitempty"`
}

// MovementResponse registro del kardex.
type MovementResponse struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	Type          string          `json:"type"`
	Subtype       string          `json:"subtype"`
	Quantity      decimal.Decimal `json:"quantity"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Timestamp     time.Time       `json:"timestamp"`
	Note          string          `json:"note,omitempty"`
	Actor         string          `json:"actor"`
	Reference     string          `json:"reference,omitempty"`
	TransferID    string          `json:"transfer_id,omitempty"`
}

// KardexResponse historial de un lote.
type KardexResponse struct {
	ItemID    string             `json:"item_id"`
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	SourceItemID        string          `json:"source_item_id"`
	DestinationLocation string          `json:"destination_location"`
	Quantity            decimal.Decimal `json:"quantity"`
	Note                string          `json:"note,omitempty"`
}

// TransferResponse saldos tras el traslado.
type TransferResponse struct {
	TransferID         string          `json:"transfer_id"`
	SourceBalance      decimal.Decimal `json:"source_balance"`
	DestinationItemID  string          `json:"destination_item_id"`
	DestinationBalance decimal.Decimal `json:"destination_balance"`
	ExitMovementID     string          `json:"exit_movement_id"`
	EntryMovementID    string          `json:"entry_movement_id"`
}
