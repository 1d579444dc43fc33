// Package memory implementa el almacén transaccional en memoria con concurrencia
// optimista: cada unidad de trabajo registra la versión de los documentos que lee o
// escribe y el commit aborta con domain.ErrTransactionConflict si alguno cambió.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/application/production"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Kardex-api/internal/domain/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ production.TxRunner = (*Store)(nil)

const (
	collStock   = "stock"
	collBatch   = "batch"
	collStaging = "staging"
)

type docKey struct {
	coll string
	id   string
}

// Store documentos versionados; mu solo protege la lectura y el commit atómico.
type Store struct {
	mu        sync.Mutex
	versions  map[docKey]uint64
	items     map[string]entity.StockItem
	batches   map[string]entity.ProductionBatch
	staging   map[string]entity.StagingCounter
	movements []entity.MovementRecord
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		versions: make(map[docKey]uint64),
		items:    make(map[string]entity.StockItem),
		batches:  make(map[string]entity.ProductionBatch),
		staging:  make(map[string]entity.StagingCounter),
	}
}

// Run ejecuta fn en una unidad de trabajo y la confirma si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := newTx(s)
	if err := fn(t.repos()); err != nil {
		return err
	}
	return t.commit()
}

// Repos devuelve repositorios fuera de transacción: cada escritura se confirma al instante.
// Las lecturas son seguras entre goroutines; las escrituras concurrentes deben usar Run.
func (s *Store) Repos() repository.TxRepos {
	t := newTx(s)
	t.autocommit = true
	return t.repos()
}

// Stats totales útiles para verificar conservación en pruebas.
func (s *Store) Stats() (stockTotal decimal.Decimal, items, movements int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stockTotal = decimal.Zero
	for _, it := range s.items {
		stockTotal = stockTotal.Add(it.Quantity)
	}
	return stockTotal, len(s.items), len(s.movements)
}

// tx unidad de trabajo: lecturas con versión, escrituras en buffer.
type tx struct {
	store      *Store
	autocommit bool

	seen      map[docKey]uint64
	items     map[string]entity.StockItem
	batches   map[string]entity.ProductionBatch
	staging   map[string]entity.StagingCounter
	movements []entity.MovementRecord
}

func newTx(s *Store) *tx {
	t := &tx{store: s}
	t.reset()
	return t
}

func (t *tx) reset() {
	t.seen = make(map[docKey]uint64)
	t.items = make(map[string]entity.StockItem)
	t.batches = make(map[string]entity.ProductionBatch)
	t.staging = make(map[string]entity.StagingCounter)
	t.movements = nil
}

func (t *tx) repos() repository.TxRepos {
	return repository.TxRepos{
		Stock:     &stockRepo{tx: t},
		Movements: &movementRepo{tx: t},
		Batches:   &batchRepo{tx: t},
		Staging:   &stagingRepo{tx: t},
	}
}

// track registra la versión observada la primera vez que se toca un documento.
// Debe llamarse con store.mu tomado. En autocommit gana la última escritura.
func (t *tx) track(k docKey) {
	if t.autocommit {
		return
	}
	if _, ok := t.seen[k]; !ok {
		t.seen[k] = t.store.versions[k]
	}
}

func (t *tx) commit() error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range t.seen {
		if s.versions[k] != v {
			return domain.ErrTransactionConflict
		}
	}
	for id, it := range t.items {
		s.items[id] = it
		s.versions[docKey{collStock, id}]++
	}
	for id, b := range t.batches {
		s.batches[id] = cloneBatch(b)
		s.versions[docKey{collBatch, id}]++
	}
	for id, c := range t.staging {
		s.staging[id] = c
		s.versions[docKey{collStaging, id}]++
	}
	s.movements = append(s.movements, t.movements...)
	return nil
}

// written confirma de inmediato en modo autocommit.
func (t *tx) written() error {
	if !t.autocommit {
		return nil
	}
	err := t.commit()
	t.reset()
	return err
}

func newID() string { return uuid.New().String() }

func cloneBatch(b entity.ProductionBatch) entity.ProductionBatch {
	b.Composition = append([]entity.BatchComponent(nil), b.Composition...)
	return b
}

// stockRepo implementa repository.StockRepository.
type stockRepo struct{ tx *tx }

func (r *stockRepo) Get(_ context.Context, itemID string) (*entity.StockItem, error) {
	t := r.tx
	if it, ok := t.items[itemID]; ok {
		return &it, nil
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.track(docKey{collStock, itemID})
	it, ok := t.store.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &it, nil
}

func (r *stockRepo) Put(ctx context.Context, itemID string, quantity decimal.Decimal, updatedAt time.Time) error {
	it, err := r.Get(ctx, itemID)
	if err != nil {
		return err
	}
	it.Quantity = quantity
	it.UpdatedAt = updatedAt
	r.tx.items[itemID] = *it
	return r.tx.written()
}

func (r *stockRepo) Create(_ context.Context, item *entity.StockItem) (string, error) {
	it := *item
	if it.ID == "" {
		it.ID = newID()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now()
	}
	if it.UpdatedAt.IsZero() {
		it.UpdatedAt = it.CreatedAt
	}
	t := r.tx
	t.store.mu.Lock()
	t.track(docKey{collStock, it.ID})
	t.store.mu.Unlock()
	t.items[it.ID] = it
	return it.ID, t.written()
}

func (r *stockRepo) List(_ context.Context, filter entity.StockItemFilter) ([]*entity.StockItem, error) {
	s := r.tx.store
	s.mu.Lock()
	list := make([]*entity.StockItem, 0, len(s.items))
	for _, it := range s.items {
		if filter.Location != "" && !domaininv.SameLocation(it.Location, filter.Location) {
			continue
		}
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		if filter.BelowMinimum && !it.BelowMinimum() {
			continue
		}
		cp := it
		list = append(list, &cp)
	}
	s.mu.Unlock()
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return paginate(list, filter.Limit, filter.Offset), nil
}

// movementRepo implementa repository.MovementRepository (solo agrega).
type movementRepo struct{ tx *tx }

func (r *movementRepo) Append(_ context.Context, movement *entity.MovementRecord) (string, error) {
	m := *movement
	if m.ID == "" {
		m.ID = newID()
	}
	r.tx.movements = append(r.tx.movements, m)
	return m.ID, r.tx.written()
}

func (r *movementRepo) ListByItem(_ context.Context, itemID string, limit, offset int) ([]*entity.MovementRecord, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*entity.MovementRecord
	for i := range s.movements {
		if s.movements[i].ItemID == itemID {
			m := s.movements[i]
			list = append(list, &m)
		}
	}
	return paginate(list, limit, offset), nil
}

// batchRepo implementa repository.ProductionBatchRepository.
type batchRepo struct{ tx *tx }

func (r *batchRepo) Create(_ context.Context, batch *entity.ProductionBatch) (string, error) {
	b := cloneBatch(*batch)
	if b.ID == "" {
		b.ID = newID()
	}
	t := r.tx
	t.store.mu.Lock()
	t.track(docKey{collBatch, b.ID})
	t.store.mu.Unlock()
	t.batches[b.ID] = b
	return b.ID, t.written()
}

func (r *batchRepo) GetByID(_ context.Context, id string) (*entity.ProductionBatch, error) {
	t := r.tx
	if b, ok := t.batches[id]; ok {
		cp := cloneBatch(b)
		return &cp, nil
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.track(docKey{collBatch, id})
	b, ok := t.store.batches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := cloneBatch(b)
	return &cp, nil
}

func (r *batchRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.ProductionBatch, error) {
	s := r.tx.store
	s.mu.Lock()
	list := make([]*entity.ProductionBatch, 0, len(s.batches))
	for _, b := range s.batches {
		if status != "" && b.Status != status {
			continue
		}
		cp := cloneBatch(b)
		list = append(list, &cp)
	}
	s.mu.Unlock()
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return paginate(list, limit, offset), nil
}

func (r *batchRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	b.Status = status
	b.UpdatedAt = updatedAt
	r.tx.batches[id] = *b
	return r.tx.written()
}

// stagingRepo implementa repository.StagingRepository.
type stagingRepo struct{ tx *tx }

func (r *stagingRepo) Get(_ context.Context, counterID string) (*entity.StagingCounter, error) {
	t := r.tx
	if c, ok := t.staging[counterID]; ok {
		return &c, nil
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.track(docKey{collStaging, counterID})
	c, ok := t.store.staging[counterID]
	if !ok {
		return &entity.StagingCounter{ID: counterID, Quantity: decimal.Zero}, nil
	}
	return &c, nil
}

func (r *stagingRepo) Put(ctx context.Context, counterID, name string, quantity decimal.Decimal, updatedAt time.Time) error {
	c, err := r.Get(ctx, counterID)
	if err != nil {
		return err
	}
	if name != "" {
		c.Name = name
	}
	c.Quantity = quantity
	c.UpdatedAt = updatedAt
	r.tx.staging[counterID] = *c
	return r.tx.written()
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
