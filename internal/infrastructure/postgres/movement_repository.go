package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo kardex sobre PostgreSQL. La tabla tiene un trigger que rechaza UPDATE/DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append agrega un registro al kardex.
func (r *MovementRepo) Append(ctx context.Context, m *entity.MovementRecord) (string, error) {
	id := m.ID
	if id == "" {
		id = uuid.New().String()
	}
	var transferID *string
	if m.TransferID != "" {
		transferID = &m.TransferID
	}
	query := `
		INSERT INTO stock_movements (id, item_id, type, subtype, quantity, balance_before, balance_after, "timestamp", note, actor, reference, transfer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		id, m.ItemID, m.Type, m.Subtype, m.Quantity, m.BalanceBefore, m.BalanceAfter,
		m.Timestamp, m.Note, m.Actor, m.Reference, transferID,
	)
	if err != nil {
		return "", fmt.Errorf("append stock movement: %w", err)
	}
	return id, nil
}

// ListByItem lista el kardex de un lote en orden de inserción.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.MovementRecord, error) {
	query := `
		SELECT id, item_id, type, subtype, quantity, balance_before, balance_after, "timestamp", note, actor, reference, transfer_id
		FROM stock_movements WHERE item_id = $1
		ORDER BY seq LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementRecord
	for rows.Next() {
		var m entity.MovementRecord
		var transferID *string
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Type, &m.Subtype, &m.Quantity,
			&m.BalanceBefore, &m.BalanceAfter, &m.Timestamp, &m.Note, &m.Actor, &m.Reference, &transferID); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if transferID != nil {
			m.TransferID = *transferID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
