package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/Kardex-api/pkg/logger"
)

const actor = "operador-cancha"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store    *memory.Store
	items    *inventory.StockItemService
	ledger   *inventory.LedgerRecorder
	transfer *inventory.TransferOrchestrator
}

func newFixture() *fixture {
	store := memory.NewStore()
	repos := store.Repos()
	log := logger.Nop().Zerolog()
	return &fixture{
		store:    store,
		items:    inventory.NewStockItemService(store, repos.Stock, repos.Movements, log),
		ledger:   inventory.NewLedgerRecorder(store, log),
		transfer: inventory.NewTransferOrchestrator(store, log),
	}
}

func (f *fixture) register(t *testing.T, name, location, qty string) *entity.StockItem {
	t.Helper()
	item, err := f.items.Register(context.Background(), inventory.RegisterItemInput{
		Name:            name,
		Category:        "Mineral",
		Unit:            "TM",
		Location:        location,
		InitialQuantity: d(qty),
		Actor:           actor,
	})
	require.NoError(t, err)
	return item
}

func (f *fixture) balance(t *testing.T, itemID string) decimal.Decimal {
	t.Helper()
	item, err := f.items.Get(context.Background(), itemID)
	require.NoError(t, err)
	return item.Quantity
}

func (f *fixture) kardex(t *testing.T, itemID string) []*entity.MovementRecord {
	t.Helper()
	list, err := f.items.Kardex(context.Background(), itemID, 500, 0)
	require.NoError(t, err)
	return list
}

// requireContinuous verifica que cada registro empieza donde terminó el anterior y que
// el último coincide con el saldo vivo del lote.
func (f *fixture) requireContinuous(t *testing.T, itemID string) {
	t.Helper()
	movs := f.kardex(t, itemID)
	prev := decimal.Zero
	for i, m := range movs {
		require.True(t, m.BalanceBefore.Equal(prev), "registro %d: saldo anterior %s, esperado %s", i, m.BalanceBefore, prev)
		prev = m.BalanceAfter
	}
	require.True(t, prev.Equal(f.balance(t, itemID)), "el kardex debe explicar el saldo vivo")
}

// retryOnConflict repite la operación mientras el almacén reporte conflicto.
func retryOnConflict(op func() error) error {
	for {
		err := op()
		if !errors.Is(err, domain.ErrTransactionConflict) {
			return err
		}
	}
}
