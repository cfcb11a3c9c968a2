package reports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/reports"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func strptr(s string) *string { return &s }

func TestBatchKardex_SaldoAcumulado(t *testing.T) {
	store := memory.NewStore()
	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, store.Batches().Create(&entity.ProductBatch{
		ID: "b1", ProductID: "p1", BatchCode: "L-001",
		ExpirationDate:  base.AddDate(0, 2, 0),
		InitialQuantity: d("50"), CurrentQuantity: d("35"),
	}))

	seed := []struct {
		id   string
		typ  string
		qty  string
		when time.Time
	}{
		{"m1", entity.MovementTypeIN, "50", base},
		{"m2", entity.MovementTypeOUT, "20", base.Add(time.Hour)},
		{"m3", entity.MovementTypeIN, "5", base.Add(2 * time.Hour)},
		{"m4", entity.MovementTypeTRANSFER, "10", base.Add(3 * time.Hour)},
	}
	for _, m := range seed {
		require.NoError(t, store.Movements().Create(&entity.InventoryMovement{
			ID: m.id, Type: m.typ, Reason: entity.MovementReasonProduction,
			ProductID: "p1", BatchID: strptr("b1"),
			Quantity: d(m.qty), UserID: "u1", CreatedAt: m.when,
		}))
	}

	uc := reports.NewTraceabilityUseCase(store.Batches(), store.Movements())
	entries, err := uc.BatchKardex(context.Background(), "b1", 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.True(t, entries[0].Balance.Equal(d("50")))
	assert.True(t, entries[1].Balance.Equal(d("30")))
	assert.True(t, entries[2].Balance.Equal(d("35")))
	assert.True(t, entries[3].Balance.Equal(d("35")), "TRANSFER no cambia el saldo del lote")
	assert.Equal(t, "m1", entries[0].Movement.ID, "orden cronológico ascendente")
}

func TestBatchKardex_PaginaConservaSaldoReal(t *testing.T) {
	store := memory.NewStore()
	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, store.Batches().Create(&entity.ProductBatch{
		ID: "b1", ProductID: "p1", BatchCode: "L-001",
		ExpirationDate:  base.AddDate(0, 2, 0),
		InitialQuantity: d("50"), CurrentQuantity: d("35"),
	}))

	seed := []struct {
		id  string
		typ string
		qty string
	}{
		{"m1", entity.MovementTypeIN, "50"},
		{"m2", entity.MovementTypeOUT, "20"},
		{"m3", entity.MovementTypeIN, "5"},
		{"m4", entity.MovementTypeOUT, "10"},
	}
	for i, m := range seed {
		require.NoError(t, store.Movements().Create(&entity.InventoryMovement{
			ID: m.id, Type: m.typ, Reason: entity.MovementReasonProduction,
			ProductID: "p1", BatchID: strptr("b1"),
			Quantity: d(m.qty), UserID: "u1", CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	uc := reports.NewTraceabilityUseCase(store.Batches(), store.Movements())

	// Segunda página: el saldo arrastra el historial completo, no parte en cero.
	entries, err := uc.BatchKardex(context.Background(), "b1", 2, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "m3", entries[0].Movement.ID)
	assert.True(t, entries[0].Balance.Equal(d("35")))
	assert.Equal(t, "m4", entries[1].Movement.ID)
	assert.True(t, entries[1].Balance.Equal(d("25")))

	// Offset más allá del historial: página vacía, sin error.
	entries, err = uc.BatchKardex(context.Background(), "b1", 2, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBatchKardex_LoteInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := reports.NewTraceabilityUseCase(store.Batches(), store.Movements())

	_, err := uc.BatchKardex(context.Background(), "no-existe", 0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBatchKardex_SinMovimientos(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Batches().Create(&entity.ProductBatch{
		ID: "b1", ProductID: "p1", BatchCode: "L-001",
		InitialQuantity: d("50"), CurrentQuantity: d("50"),
	}))
	uc := reports.NewTraceabilityUseCase(store.Batches(), store.Movements())

	entries, err := uc.BatchKardex(context.Background(), "b1", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
