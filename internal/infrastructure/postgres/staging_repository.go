package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.StagingRepository = (*StagingRepo)(nil)

// StagingRepo contadores de etapa (tolvas) sobre PostgreSQL.
type StagingRepo struct {
	q Querier
}

// NewStagingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStagingRepository(q Querier) *StagingRepo {
	return &StagingRepo{q: q}
}

// Get devuelve el contador; si no existe aún se lee en cero.
func (r *StagingRepo) Get(ctx context.Context, counterID string) (*entity.StagingCounter, error) {
	var c entity.StagingCounter
	err := r.q.QueryRow(ctx,
		`SELECT id, name, quantity, updated_at FROM staging_counters WHERE id = $1`, counterID,
	).Scan(&c.ID, &c.Name, &c.Quantity, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StagingCounter{ID: counterID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get staging counter: %w", err)
	}
	return &c, nil
}

// Put inserta o actualiza el acumulado.
func (r *StagingRepo) Put(ctx context.Context, counterID, name string, quantity decimal.Decimal, updatedAt time.Time) error {
	query := `
		INSERT INTO staging_counters (id, name, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at,
			name = COALESCE(NULLIF(EXCLUDED.name, ''), staging_counters.name)`
	if _, err := r.q.Exec(ctx, query, counterID, name, quantity, updatedAt); err != nil {
		return fmt.Errorf("put staging counter: %w", err)
	}
	return nil
}
