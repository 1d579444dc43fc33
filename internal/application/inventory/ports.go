package inventory

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una unidad de trabajo del almacén, pasando
// repositorios atados a ella. Si fn devuelve error no se persiste nada; si otra
// transacción modificó los mismos documentos, Run devuelve domain.ErrTransactionConflict
// y el llamador debe reintentar la operación completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}
