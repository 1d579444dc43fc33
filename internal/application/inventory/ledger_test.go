package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Registro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_EntradaYSalida(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.register(t, "Mineral A", "Cancha 1", "100")

	mov, err := f.ledger.Record(ctx, inventory.RecordInput{
		ItemID: item.ID, Type: entity.MovementTypeENTRY, Quantity: d("25"), Actor: actor, Reference: "GR-001",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SubtypePURCHASE, mov.Subtype, "subtipo por defecto de una entrada")
	assert.True(t, mov.BalanceBefore.Equal(d("100")))
	assert.True(t, mov.BalanceAfter.Equal(d("125")))
	assert.Equal(t, actor, mov.Actor)
	assert.NotEmpty(t, mov.ID)

	mov, err = f.ledger.Record(ctx, inventory.RecordInput{
		ItemID: item.ID, Type: entity.MovementTypeEXIT, Subtype: entity.SubtypeLOSS, Quantity: d("5"), Actor: actor,
	})
	require.NoError(t, err)
	assert.True(t, mov.BalanceAfter.Equal(d("120")))
	assert.True(t, f.balance(t, item.ID).Equal(d("120")))
	f.requireContinuous(t, item.ID)
}

func TestRecord_SalidaInsuficienteNoDejaRastro(t *testing.T) {
	f := newFixture()
	item := f.register(t, "Mineral A", "Cancha 1", "10")
	_, _, movsBefore := f.store.Stats()

	_, err := f.ledger.Record(context.Background(), inventory.RecordInput{
		ItemID: item.ID, Type: entity.MovementTypeEXIT, Quantity: d("10.5"), Actor: actor,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, item.ID, stockErr.ItemID)
	assert.True(t, stockErr.Available.Equal(d("10")))
	assert.True(t, stockErr.Requested.Equal(d("10.5")))

	_, _, movsAfter := f.store.Stats()
	assert.Equal(t, movsBefore, movsAfter, "un movimiento rechazado no se registra")
	assert.True(t, f.balance(t, item.ID).Equal(d("10")))
}

func TestRecord_AjusteGuardaMagnitud(t *testing.T) {
	f := newFixture()
	item := f.register(t, "Mineral A", "Cancha 1", "50")

	mov, err := f.ledger.Record(context.Background(), inventory.RecordInput{
		ItemID: item.ID, Type: entity.MovementTypeADJUSTMENT, Quantity: d("-12.5"), Actor: actor, Note: "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SubtypeCORRECTION, mov.Subtype)
	assert.True(t, mov.Quantity.Equal(d("12.5")))
	assert.True(t, mov.Delta().Equal(d("-12.5")))
	assert.True(t, f.balance(t, item.ID).Equal(d("37.5")))
}

func TestRecord_EntradasInvalidas(t *testing.T) {
	f := newFixture()
	item := f.register(t, "Mineral A", "Cancha 1", "50")
	ctx := context.Background()

	cases := []struct {
		name string
		in   inventory.RecordInput
		want error
	}{
		{"sin actor", inventory.RecordInput{ItemID: item.ID, Type: entity.MovementTypeENTRY, Quantity: d("1")}, domain.ErrInvalidInput},
		{"tipo desconocido", inventory.RecordInput{ItemID: item.ID, Type: "MOVE", Quantity: d("1"), Actor: actor}, domain.ErrInvalidInput},
		{"subtipo de otro tipo", inventory.RecordInput{ItemID: item.ID, Type: entity.MovementTypeENTRY, Subtype: entity.SubtypeCONSUMPTION, Quantity: d("1"), Actor: actor}, domain.ErrInvalidInput},
		{"salida en cero", inventory.RecordInput{ItemID: item.ID, Type: entity.MovementTypeEXIT, Quantity: d("0"), Actor: actor}, domain.ErrInvalidQuantity},
		{"entrada negativa", inventory.RecordInput{ItemID: item.ID, Type: entity.MovementTypeENTRY, Quantity: d("-3"), Actor: actor}, domain.ErrInvalidQuantity},
		{"lote inexistente", inventory.RecordInput{ItemID: "no-existe", Type: entity.MovementTypeENTRY, Quantity: d("1"), Actor: actor}, domain.ErrItemNotFound},
		{"más de cuatro decimales", inventory.RecordInput{ItemID: item.ID, Type: entity.MovementTypeEXIT, Quantity: d("0.00001"), Actor: actor}, domain.ErrInvalidQuantity},
		{"magnitud fuera de rango", inventory.RecordInput{ItemID: item.ID, Type: entity.MovementTypeENTRY, Quantity: d("100000000000000"), Actor: actor}, domain.ErrInvalidQuantity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ledger.Record(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.True(t, f.balance(t, item.ID).Equal(d("50")), "ningún intento inválido cambia el saldo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_EscrituraIntermediaProvocaConflicto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.register(t, "Mineral A", "Cancha 1", "100")

	err := f.store.Run(ctx, func(repos repository.TxRepos) error {
		stale, err := repos.Stock.Get(ctx, item.ID)
		if err != nil {
			return err
		}
		// Otro operador confirma una salida mientras esta unidad de trabajo sigue abierta
		_, err = f.ledger.Record(ctx, inventory.RecordInput{
			ItemID: item.ID, Type: entity.MovementTypeEXIT, Quantity: d("10"), Actor: "otro",
		})
		require.NoError(t, err)
		return repos.Stock.Put(ctx, item.ID, stale.Quantity.Sub(d("5")), time.Now())
	})
	assert.ErrorIs(t, err, domain.ErrTransactionConflict)
	assert.True(t, f.balance(t, item.ID).Equal(d("90")), "la escritura basada en un saldo viejo no se aplica")
	f.requireContinuous(t, item.ID)
}

func TestRecord_SalidasConcurrentesSinPerdidas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.register(t, "Mineral A", "Cancha 1", "100")

	const workers = 20
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := retryOnConflict(func() error {
				_, err := f.ledger.Record(ctx, inventory.RecordInput{
					ItemID: item.ID, Type: entity.MovementTypeEXIT, Quantity: d("10"), Actor: actor,
				})
				return err
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			rejected++
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok, "solo caben diez salidas de 10 en un lote de 100")
	assert.Equal(t, 10, rejected)
	assert.True(t, f.balance(t, item.ID).IsZero())
	assert.Len(t, f.kardex(t, item.ID), 11, "entrada inicial + diez salidas")
	f.requireContinuous(t, item.ID)
}

func TestRecord_DosSalidasCompitenPorElMismoSaldo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.register(t, "Mineral A", "Cancha 1", "15")

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- retryOnConflict(func() error {
				_, err := f.ledger.Record(ctx, inventory.RecordInput{
					ItemID: item.ID, Type: entity.MovementTypeEXIT, Quantity: d("10"), Actor: actor,
				})
				return err
			})
		}()
	}
	wg.Wait()
	close(errs)

	var failures []error
	for err := range errs {
		if err != nil {
			failures = append(failures, err)
		}
	}
	require.Len(t, failures, 1, "exactamente una de las dos salidas debe confirmarse")
	assert.ErrorIs(t, failures[0], domain.ErrInsufficientStock)
	assert.True(t, f.balance(t, item.ID).Equal(d("5")))
}

func TestRecord_SalidaConDecimalesNoRepresentablesNoDejaRastro(t *testing.T) {
	f := newFixture()
	item := f.register(t, "Mineral A", "Cancha 1", "1")

	_, err := f.ledger.Record(context.Background(), inventory.RecordInput{
		ItemID: item.ID, Type: entity.MovementTypeEXIT, Quantity: d("0.00001"), Actor: actor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.True(t, f.balance(t, item.ID).Equal(d("1")))
	assert.Len(t, f.kardex(t, item.ID), 1, "solo la entrada inicial")
}
