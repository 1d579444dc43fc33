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

// LedgerRecorder registra movimientos del kardex: actualiza el saldo del lote y agrega
// el registro inmutable en la misma transacción.
type LedgerRecorder struct {
	txRunner TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

// NewLedgerRecorder construye el registrador del kardex.
func NewLedgerRecorder(txRunner TxRunner, log zerolog.Logger) *LedgerRecorder {
	return &LedgerRecorder{txRunner: txRunner, log: log, now: time.Now}
}

// RecordInput entrada de un movimiento. Para ADJUSTMENT, Quantity lleva signo.
type RecordInput struct {
	ItemID    string
	Type      string
	Subtype   string
	Quantity  decimal.Decimal
	Note      string
	Actor     string
	Reference string
}

// Record valida, relee el saldo vivo dentro de la transacción, aplica el cambio y
// agrega el registro del kardex. O se confirman ambos o ninguno.
func (uc *LedgerRecorder) Record(ctx context.Context, in RecordInput) (*entity.MovementRecord, error) {
	if strings.TrimSpace(in.ItemID) == "" || strings.TrimSpace(in.Actor) == "" {
		return nil, domain.ErrInvalidInput
	}
	subtype, err := inventory.ResolveSubtype(in.Type, in.Subtype)
	if err != nil {
		return nil, err
	}
	if _, err := inventory.SignedDelta(in.Type, in.Quantity); err != nil {
		return nil, err
	}

	var mov *entity.MovementRecord
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		var err error
		mov, err = recordInTx(ctx, repos, in, subtype, uc.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("item_id", mov.ItemID).
		Str("type", mov.Type).
		Str("subtype", mov.Subtype).
		Str("balance_before", mov.BalanceBefore.String()).
		Str("balance_after", mov.BalanceAfter.String()).
		Str("actor", mov.Actor).
		Msg("movimiento registrado")
	return mov, nil
}

// recordInTx aplica un movimiento con los repositorios de la transacción del llamador.
// Lo reutilizan el alta de lotes y cualquier caso de uso que necesite el kardex dentro
// de su propia unidad de trabajo.
func recordInTx(ctx context.Context, repos repository.TxRepos, in RecordInput, subtype string, now time.Time) (*entity.MovementRecord, error) {
	item, err := repos.Stock.Get(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	before := item.Quantity
	after, err := inventory.ApplyMovement(item.ID, before, in.Type, in.Quantity)
	if err != nil {
		return nil, err
	}
	if err := repos.Stock.Put(ctx, item.ID, after, now); err != nil {
		return nil, err
	}
	mov := &entity.MovementRecord{
		ItemID:        item.ID,
		Type:          in.Type,
		Subtype:       subtype,
		Quantity:      in.Quantity.Abs(),
		BalanceBefore: before,
		BalanceAfter:  after,
		Timestamp:     now,
		Note:          in.Note,
		Actor:         in.Actor,
		Reference:     in.Reference,
	}
	id, err := repos.Movements.Append(ctx, mov)
	if err != nil {
		return nil, err
	}
	mov.ID = id
	return mov, nil
}
