package production

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner unidad de trabajo sobre el almacén (misma semántica que inventory.TxRunner).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}

// StagingConfig contador de etapa que recibe la salida de los blends.
type StagingConfig struct {
	CounterID   string // ej. "tolva-gruesos"
	CounterName string
}
