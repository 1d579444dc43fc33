package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.ProductionBatchRepository = (*ProductionBatchRepo)(nil)

const batchColumns = `id, composition, composition_label, total_quantity, staging_counter_id, status, start_time, actor, created_at, updated_at`

// componentJSON forma de cada línea en la columna JSONB composition.
type componentJSON struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ProductionBatchRepo lotes de producción sobre PostgreSQL.
type ProductionBatchRepo struct {
	q Querier
}

// NewProductionBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionBatchRepository(q Querier) *ProductionBatchRepo {
	return &ProductionBatchRepo{q: q}
}

// Create persiste el lote con su composición.
func (r *ProductionBatchRepo) Create(ctx context.Context, b *entity.ProductionBatch) (string, error) {
	id := b.ID
	if id == "" {
		id = uuid.New().String()
	}
	lines := make([]componentJSON, 0, len(b.Composition))
	for _, c := range b.Composition {
		lines = append(lines, componentJSON{ItemID: c.ItemID, ItemName: c.ItemName, Quantity: c.Quantity})
	}
	composition, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("marshal composition: %w", err)
	}
	query := `
		INSERT INTO production_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		id, composition, b.CompositionLabel, b.TotalQuantity, b.StagingCounterID,
		b.Status, b.StartTime, b.Actor, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("create production batch: %w", err)
	}
	return id, nil
}

// GetByID obtiene un lote de producción.
func (r *ProductionBatchRepo) GetByID(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM production_batches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get production batch: %w", err)
	}
	return b, nil
}

// List lista lotes (más recientes primero), opcionalmente por estado.
func (r *ProductionBatchRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.ProductionBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM production_batches`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado del lote.
func (r *ProductionBatchRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE production_batches SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update batch status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBatch(row pgx.Row) (*entity.ProductionBatch, error) {
	var b entity.ProductionBatch
	var composition []byte
	err := row.Scan(&b.ID, &composition, &b.CompositionLabel, &b.TotalQuantity, &b.StagingCounterID,
		&b.Status, &b.StartTime, &b.Actor, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	var lines []componentJSON
	if err := json.Unmarshal(composition, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal composition: %w", err)
	}
	for _, l := range lines {
		b.Composition = append(b.Composition, entity.BatchComponent{ItemID: l.ItemID, ItemName: l.ItemName, Quantity: l.Quantity})
	}
	return &b, nil
}
