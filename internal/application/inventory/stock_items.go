package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// StockItemService alta y consultas de lotes y su kardex.
type StockItemService struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository
	movRepo   repository.MovementRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewStockItemService construye el servicio. stockRepo y movRepo se usan solo para lecturas.
func NewStockItemService(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	log zerolog.Logger,
) *StockItemService {
	return &StockItemService{
		txRunner:  txRunner,
		stockRepo: stockRepo,
		movRepo:   movRepo,
		log:       log,
		now:       time.Now,
	}
}

// RegisterItemInput alta de un lote en su primera recepción.
// Subtype aplica a la entrada inicial (INITIAL por defecto; PURCHASE o RETURN permitidos).
type RegisterItemInput struct {
	Name            string
	Category        string
	Unit            string
	Location        string
	Origin          string
	MinQuantity     decimal.Decimal
	InitialQuantity decimal.Decimal
	Subtype         string
	Note            string
	Actor           string
	Reference       string
}

// Register crea el lote en cero y, si hay cantidad inicial, registra la entrada en la
// misma transacción, de modo que el kardex explica todo el saldo desde el origen.
func (s *StockItemService) Register(ctx context.Context, in RegisterItemInput) (*entity.StockItem, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Location) == "" || strings.TrimSpace(in.Actor) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity.IsNegative() || in.MinQuantity.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	if err := inventory.ValidQuantity(in.InitialQuantity); err != nil {
		return nil, err
	}
	if err := inventory.ValidQuantity(in.MinQuantity); err != nil {
		return nil, err
	}
	subtype := in.Subtype
	if subtype == "" {
		subtype = entity.SubtypeINITIAL
	}
	subtype, err := inventory.ResolveSubtype(entity.MovementTypeENTRY, subtype)
	if err != nil {
		return nil, err
	}

	now := s.now()
	item := &entity.StockItem{
		Name:        strings.TrimSpace(in.Name),
		Category:    in.Category,
		Unit:        in.Unit,
		Quantity:    decimal.Zero,
		Location:    strings.TrimSpace(in.Location),
		Origin:      in.Origin,
		MinQuantity: in.MinQuantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		id, err := repos.Stock.Create(ctx, item)
		if err != nil {
			return err
		}
		item.ID = id
		if in.InitialQuantity.IsZero() {
			return nil
		}
		mov, err := recordInTx(ctx, repos, RecordInput{
			ItemID:    id,
			Type:      entity.MovementTypeENTRY,
			Quantity:  in.InitialQuantity,
			Note:      in.Note,
			Actor:     in.Actor,
			Reference: in.Reference,
		}, subtype, now)
		if err != nil {
			return err
		}
		item.Quantity = mov.BalanceAfter
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("item_id", item.ID).
		Str("location", item.Location).
		Str("quantity", item.Quantity.String()).
		Str("actor", in.Actor).
		Msg("lote registrado")
	return item, nil
}

// Get obtiene un lote por ID.
func (s *StockItemService) Get(ctx context.Context, itemID string) (*entity.StockItem, error) {
	return s.stockRepo.Get(ctx, itemID)
}

// List lista lotes con filtros opcionales.
func (s *StockItemService) List(ctx context.Context, filter entity.StockItemFilter) ([]*entity.StockItem, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.stockRepo.List(ctx, filter)
}

// Kardex devuelve el historial de movimientos de un lote en orden cronológico.
func (s *StockItemService) Kardex(ctx context.Context, itemID string, limit, offset int) ([]*entity.MovementRecord, error) {
	if _, err := s.stockRepo.Get(ctx, itemID); err != nil {
		return nil, err
	}
	limit, offset = KardexPage(limit, offset)
	return s.movRepo.ListByItem(ctx, itemID, limit, offset)
}

// KardexPage normaliza la paginación del kardex: 100 registros por defecto, tope 500.
func KardexPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
