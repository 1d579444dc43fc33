package postgres

import (
	"context"
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

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, name, category, unit, quantity, location, origin, min_quantity, created_at, updated_at`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q         Querier
	forUpdate bool
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// newLockingStockRepository dentro de una tx: Get bloquea la fila (SELECT FOR UPDATE).
func newLockingStockRepository(tx pgx.Tx) *StockRepo {
	return &StockRepo{q: tx, forUpdate: true}
}

// Get obtiene un lote por ID.
func (r *StockRepo) Get(ctx context.Context, itemID string) (*entity.StockItem, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, domain.ErrItemNotFound
	}
	query := `SELECT ` + stockColumns + ` FROM stock_items WHERE id = $1`
	if r.forUpdate {
		query += ` FOR UPDATE`
	}
	s, err := scanStockItem(r.q.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return s, nil
}

// Put actualiza el saldo del lote.
func (r *StockRepo) Put(ctx context.Context, itemID string, quantity decimal.Decimal, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_items SET quantity = $2, updated_at = $3 WHERE id = $1`,
		itemID, quantity, updatedAt)
	if err != nil {
		return fmt.Errorf("put stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Create inserta un lote nuevo y devuelve su ID.
func (r *StockRepo) Create(ctx context.Context, item *entity.StockItem) (string, error) {
	id := item.ID
	if id == "" {
		id = uuid.New().String()
	}
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	query := `
		INSERT INTO stock_items (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`
	_, err := r.q.Exec(ctx, query,
		id, item.Name, item.Category, item.Unit, item.Quantity,
		item.Location, item.Origin, item.MinQuantity, createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("create stock item: %w", err)
	}
	return id, nil
}

// List lista lotes con filtros; la ubicación se compara normalizada (trim + minúsculas).
func (r *StockRepo) List(ctx context.Context, filter entity.StockItemFilter) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_items WHERE 1=1`
	var args []any
	pos := 1
	if filter.Location != "" {
		query += fmt.Sprintf(" AND lower(btrim(location)) = lower(btrim($%d))", pos)
		args = append(args, filter.Location)
		pos++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}
	if filter.BelowMinimum {
		query += " AND min_quantity > 0 AND quantity < min_quantity"
	}
	query += fmt.Sprintf(" ORDER BY created_at, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		s, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	err := row.Scan(
		&s.ID, &s.Name, &s.Category, &s.Unit, &s.Quantity,
		&s.Location, &s.Origin, &s.MinQuantity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
