package repository

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// MovementRepository puerto del kardex: solo permite agregar y consultar, nunca editar.
type MovementRepository interface {
	Append(ctx context.Context, movement *entity.MovementRecord) (string, error)
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.MovementRecord, error)
}
