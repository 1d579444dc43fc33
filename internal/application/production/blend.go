package production

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

// BlendConsumptionOrchestrator consume N lotes de mineral en una sola transacción,
// crea el lote de producción y acumula el total en el contador de etapa.
type BlendConsumptionOrchestrator struct {
	txRunner TxRunner
	staging  StagingConfig
	log      zerolog.Logger
	now      func() time.Time
}

// NewBlendConsumptionOrchestrator construye el orquestador de blends.
func NewBlendConsumptionOrchestrator(txRunner TxRunner, staging StagingConfig, log zerolog.Logger) *BlendConsumptionOrchestrator {
	return &BlendConsumptionOrchestrator{txRunner: txRunner, staging: staging, log: log, now: time.Now}
}

// ComponentInput una línea de la composición pedida.
type ComponentInput struct {
	ItemID   string
	Quantity decimal.Decimal
}

// CreateBatchInput entrada para programar un blend.
type CreateBatchInput struct {
	Composition []ComponentInput
	StartTime   time.Time
	Actor       string
}

// CreateBatch valida y descuenta todos los lotes o ninguno. Si cualquier lote no
// alcanza, la transacción completa aborta con ErrInsufficientStock nombrando el
// primer lote que falla en el orden de la composición.
func (uc *BlendConsumptionOrchestrator) CreateBatch(ctx context.Context, in CreateBatchInput) (*entity.ProductionBatch, error) {
	if strings.TrimSpace(in.Actor) == "" || len(in.Composition) == 0 {
		return nil, domain.ErrInvalidInput
	}
	lines, err := aggregateComposition(in.Composition)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	startTime := in.StartTime
	if startTime.IsZero() {
		startTime = now
	}

	var batch *entity.ProductionBatch
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		// 1. Leer todos los lotes
		items := make([]*entity.StockItem, len(lines))
		for i, line := range lines {
			item, err := repos.Stock.Get(ctx, line.ItemID)
			if err != nil {
				return err
			}
			items[i] = item
		}
		// 2. Validar todos antes de escribir
		for i, line := range lines {
			if items[i].Quantity.LessThan(line.Quantity) {
				return domain.NewInsufficientStock(items[i].ID, items[i].Quantity, line.Quantity)
			}
		}
		// 3. Descontar
		total := decimal.Zero
		composition := make([]entity.BatchComponent, len(lines))
		for i, line := range lines {
			if err := repos.Stock.Put(ctx, items[i].ID, items[i].Quantity.Sub(line.Quantity), now); err != nil {
				return err
			}
			total = total.Add(line.Quantity)
			composition[i] = entity.BatchComponent{
				ItemID:   items[i].ID,
				ItemName: items[i].Name,
				Quantity: line.Quantity,
			}
		}
		// 4. Lote de producción
		batch = &entity.ProductionBatch{
			Composition:      composition,
			CompositionLabel: compositionLabel(composition),
			TotalQuantity:    total,
			StagingCounterID: uc.staging.CounterID,
			Status:           entity.BatchStatusPROGRAMMED,
			StartTime:        startTime,
			Actor:            in.Actor,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		id, err := repos.Batches.Create(ctx, batch)
		if err != nil {
			return err
		}
		batch.ID = id
		// 5. Acumular en la tolva
		counter, err := repos.Staging.Get(ctx, uc.staging.CounterID)
		if err != nil {
			return err
		}
		staged := counter.Quantity.Add(total)
		if err := inventory.ValidQuantity(staged); err != nil {
			return err
		}
		return repos.Staging.Put(ctx, uc.staging.CounterID, uc.staging.CounterName, staged, now)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("batch_id", batch.ID).
		Str("composition", batch.CompositionLabel).
		Str("total", batch.TotalQuantity.String()).
		Str("staging_counter", uc.staging.CounterID).
		Str("actor", in.Actor).
		Msg("blend programado")
	return batch, nil
}

// aggregateComposition valida cantidades y suma líneas repetidas del mismo lote,
// conservando el orden de primera aparición. El total también debe caber en el almacén.
func aggregateComposition(in []ComponentInput) ([]ComponentInput, error) {
	index := make(map[string]int, len(in))
	out := make([]ComponentInput, 0, len(in))
	for _, c := range in {
		if strings.TrimSpace(c.ItemID) == "" {
			return nil, domain.ErrInvalidInput
		}
		if !c.Quantity.IsPositive() {
			return nil, domain.ErrInvalidQuantity
		}
		if err := inventory.ValidQuantity(c.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[c.ItemID]; ok {
			out[i].Quantity = out[i].Quantity.Add(c.Quantity)
			continue
		}
		index[c.ItemID] = len(out)
		out = append(out, c)
	}
	total := decimal.Zero
	for _, c := range out {
		total = total.Add(c.Quantity)
	}
	if err := inventory.ValidQuantity(total); err != nil {
		return nil, err
	}
	return out, nil
}

func compositionLabel(lines []entity.BatchComponent) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.ItemName+" ("+l.Quantity.String()+")")
	}
	return strings.Join(parts, " + ")
}
