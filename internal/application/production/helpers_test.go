package production_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/production"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/Kardex-api/pkg/logger"
)

const (
	actor     = "jefe-planta"
	counterID = "tolva-gruesos"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store   *memory.Store
	blend   *production.BlendConsumptionOrchestrator
	batches *production.BatchService
}

func newFixture() *fixture {
	store := memory.NewStore()
	repos := store.Repos()
	log := logger.Nop().Zerolog()
	return &fixture{
		store:   store,
		blend:   production.NewBlendConsumptionOrchestrator(store, production.StagingConfig{CounterID: counterID, CounterName: "Tolva de gruesos"}, log),
		batches: production.NewBatchService(store, repos.Batches, repos.Staging, log),
	}
}

// seed crea un lote directamente en el almacén.
func (f *fixture) seed(t *testing.T, name, qty string) string {
	t.Helper()
	id, err := f.store.Repos().Stock.Create(context.Background(), &entity.StockItem{
		Name:      name,
		Unit:      "TM",
		Location:  "Cancha 1",
		Quantity:  d(qty),
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) balance(t *testing.T, itemID string) decimal.Decimal {
	t.Helper()
	item, err := f.store.Repos().Stock.Get(context.Background(), itemID)
	require.NoError(t, err)
	return item.Quantity
}

func (f *fixture) staged(t *testing.T) decimal.Decimal {
	t.Helper()
	c, err := f.batches.Staging(context.Background(), counterID)
	require.NoError(t, err)
	return c.Quantity
}

func retryOnConflict(op func() error) error {
	for {
		err := op()
		if !errors.Is(err, domain.ErrTransactionConflict) {
			return err
		}
	}
}
