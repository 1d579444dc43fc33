package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductionBatchRepository persistencia de lotes de producción (blends).
type ProductionBatchRepository interface {
	Create(ctx context.Context, batch *entity.ProductionBatch) (string, error)
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.ProductionBatch, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.ProductionBatch, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
}

// StagingRepository acumulados de etapa (tolva). Un contador inexistente se lee en cero.
type StagingRepository interface {
	Get(ctx context.Context, counterID string) (*entity.StagingCounter, error)
	Put(ctx context.Context, counterID, name string, quantity decimal.Decimal, updatedAt time.Time) error
}

// TxRepos repositorios atados a una misma unidad de trabajo.
type TxRepos struct {
	Stock     StockRepository
	Movements MovementRepository
	Batches   ProductionBatchRepository
	Staging   StagingRepository
}
