package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository define el puerto de lectura/escritura de lotes de stock.
// Sin reglas de negocio; usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve domain.ErrItemNotFound si el lote no existe.
	Get(ctx context.Context, itemID string) (*entity.StockItem, error)
	Put(ctx context.Context, itemID string, quantity decimal.Decimal, updatedAt time.Time) error
	Create(ctx context.Context, item *entity.StockItem) (string, error)
	List(ctx context.Context, filter entity.StockItemFilter) ([]*entity.StockItem, error)
}
