package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchComponentDTO una línea de la composición del blend.
type BatchComponentDTO struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CreateBatchRequest body para POST /api/production/batches.
type CreateBatchRequest struct {
	Composition []BatchComponentDTO `json:"composition"`
	StartTime   *time.Time          `json:"start_time,omitempty"`
}

// AdvanceBatchRequest body para PATCH /api/production/batches/:id/status.
type AdvanceBatchRequest struct {
	Status string `json:"status"`
}

// ProductionBatchResponse lote de producción.
type ProductionBatchResponse struct {
	ID               string              `json:"id"`
	Composition      []BatchComponentDTO `json:"composition"`
	CompositionLabel string              `json:"composition_label"`
	TotalQuantity    decimal.Decimal     `json:"total_quantity"`
	StagingCounterID string              `json:"staging_counter_id"`
	Status           string              `json:"status"`
	StartTime        time.Time           `json:"start_time"`
	Actor            string              `json:"actor"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// ProductionBatchListResponse listado paginado de lotes de producción.
type ProductionBatchListResponse struct {
	Items []ProductionBatchResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// StagingCounterResponse acumulado de una tolva.
type StagingCounterResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}
