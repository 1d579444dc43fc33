package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/application/production"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and production.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL SERIALIZABLE.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los abortos por serialización (40001/40P01) se devuelven como domain.ErrTransactionConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := repository.TxRepos{
		Stock:     newLockingStockRepository(tx),
		Movements: NewMovementRepository(tx),
		Batches:   NewProductionBatchRepository(tx),
		Staging:   NewStagingRepository(tx),
	}
	if err := fn(repos); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		if mapped := mapTxError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
