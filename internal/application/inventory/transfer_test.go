package inventory_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

func TestTransfer_Cancha1ACancha2(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	source := f.register(t, "Mineral A", "Cancha 1", "100")
	totalBefore, itemsBefore, _ := f.store.Stats()

	res, err := f.transfer.Transfer(ctx, inventory.TransferInput{
		SourceItemID: source.ID, DestinationLocation: "Cancha 2", Quantity: d("30"), Actor: actor,
	})
	require.NoError(t, err)
	assert.True(t, res.SourceBalance.Equal(d("70")))
	assert.True(t, res.DestinationBalance.Equal(d("30")))
	assert.NotEqual(t, source.ID, res.DestinationItemID)

	dest, err := f.items.Get(ctx, res.DestinationItemID)
	require.NoError(t, err)
	assert.Equal(t, "Cancha 2", dest.Location)
	assert.Equal(t, source.Name, dest.Name)
	assert.Equal(t, source.Unit, dest.Unit)

	totalAfter, itemsAfter, _ := f.store.Stats()
	assert.True(t, totalAfter.Equal(totalBefore), "un traslado no crea ni destruye material")
	assert.Equal(t, itemsBefore+1, itemsAfter)

	exit := f.kardex(t, source.ID)[1]
	assert.Equal(t, entity.MovementTypeEXIT, exit.Type)
	assert.Equal(t, entity.SubtypeTRANSFER, exit.Subtype)
	assert.Equal(t, res.ExitMovementID, exit.ID)
	assert.Equal(t, res.TransferID, exit.TransferID)
	assert.True(t, strings.Contains(exit.Reference, "Cancha 2"))
	assert.True(t, strings.Contains(exit.Reference, res.EntryMovementID))

	entries := f.kardex(t, dest.ID)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, entity.MovementTypeENTRY, entry.Type)
	assert.Equal(t, entity.SubtypeTRANSFER, entry.Subtype)
	assert.Equal(t, res.TransferID, entry.TransferID)
	assert.True(t, entry.BalanceBefore.IsZero())
	assert.True(t, entry.BalanceAfter.Equal(d("30")))
	assert.True(t, strings.Contains(entry.Reference, "Cancha 1"))
	assert.True(t, strings.Contains(entry.Reference, res.ExitMovementID))

	f.requireContinuous(t, source.ID)
	f.requireContinuous(t, dest.ID)
}

func TestTransfer_ExcedeSaldoNoCambiaNada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	source := f.register(t, "Mineral A", "Cancha 1", "100")
	_, err := f.transfer.Transfer(ctx, inventory.TransferInput{
		SourceItemID: source.ID, DestinationLocation: "Cancha 2", Quantity: d("30"), Actor: actor,
	})
	require.NoError(t, err)
	_, itemsBefore, movsBefore := f.store.Stats()

	_, err = f.transfer.Transfer(ctx, inventory.TransferInput{
		SourceItemID: source.ID, DestinationLocation: "Cancha 2", Quantity: d("80"), Actor: actor,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, itemsAfter, movsAfter := f.store.Stats()
	assert.True(t, f.balance(t, source.ID).Equal(d("70")))
	assert.Equal(t, itemsBefore, itemsAfter, "no se crea lote destino")
	assert.Equal(t, movsBefore, movsAfter, "no se registra ninguna mitad del traslado")
}

func TestTransfer_SiempreCreaLoteNuevo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	source := f.register(t, "Mineral A", "Cancha 1", "100")
	f.register(t, "Mineral A", "Cancha 2", "5")

	first, err := f.transfer.Transfer(ctx, inventory.TransferInput{
		SourceItemID: source.ID, DestinationLocation: "Cancha 2", Quantity: d("10"), Actor: actor,
	})
	require.NoError(t, err)
	second, err := f.transfer.Transfer(ctx, inventory.TransferInput{
		SourceItemID: source.ID, DestinationLocation: "Cancha 2", Quantity: d("10"), Actor: actor,
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.DestinationItemID, second.DestinationItemID)
	list, err := f.items.List(ctx, entity.StockItemFilter{Location: "cancha 2"})
	require.NoError(t, err)
	assert.Len(t, list, 3, "los lotes de destino no se fusionan")
}

func TestTransfer_ValidacionesDeEntrada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	source := f.register(t, "Mineral A", "Cancha 1", "100")

	cases := []struct {
		name string
		in   inventory.TransferInput
		want error
	}{
		{"misma ubicación normalizada", inventory.TransferInput{SourceItemID: source.ID, DestinationLocation: "  cancha 1 ", Quantity: d("1"), Actor: actor}, domain.ErrInvalidDestination},
		{"destino vacío", inventory.TransferInput{SourceItemID: source.ID, DestinationLocation: "   ", Quantity: d("1"), Actor: actor}, domain.ErrInvalidDestination},
		{"cantidad cero", inventory.TransferInput{SourceItemID: source.ID, DestinationLocation: "Cancha 2", Quantity: d("0"), Actor: actor}, domain.ErrInvalidQuantity},
		{"cantidad negativa", inventory.TransferInput{SourceItemID: source.ID, DestinationLocation: "Cancha 2", Quantity: d("-5"), Actor: actor}, domain.ErrInvalidQuantity},
		{"más de cuatro decimales", inventory.TransferInput{SourceItemID: source.ID, DestinationLocation: "Cancha 2", Quantity: d("0.00001"), Actor: actor}, domain.ErrInvalidQuantity},
		{"origen inexistente", inventory.TransferInput{SourceItemID: "no-existe", DestinationLocation: "Cancha 2", Quantity: d("1"), Actor: actor}, domain.ErrItemNotFound},
		{"sin actor", inventory.TransferInput{SourceItemID: source.ID, DestinationLocation: "Cancha 2", Quantity: d("1")}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.transfer.Transfer(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.True(t, f.balance(t, source.ID).Equal(d("100")))
}

func TestTransfer_ConcurrentesConservanMaterial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	source := f.register(t, "Mineral A", "Cancha 1", "50")

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- retryOnConflict(func() error {
				_, err := f.transfer.Transfer(ctx, inventory.TransferInput{
					SourceItemID: source.ID, DestinationLocation: "Zona B", Quantity: d("10"), Actor: actor,
				})
				return err
			})
		}()
	}
	wg.Wait()
	close(results)

	ok := 0
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 5, ok)

	total, items, _ := f.store.Stats()
	assert.True(t, total.Equal(d("50")), "el total entre lotes se conserva")
	assert.Equal(t, 1+ok, items)
	assert.True(t, f.balance(t, source.ID).IsZero())
	f.requireContinuous(t, source.ID)
}
