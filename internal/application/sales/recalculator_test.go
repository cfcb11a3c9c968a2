package sales_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/sales"
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

func lines(subtotals ...string) []*entity.SaleDetail {
	out := make([]*entity.SaleDetail, 0, len(subtotals))
	for _, s := range subtotals {
		out = append(out, &entity.SaleDetail{Subtotal: d(s)})
	}
	return out
}

func TestComputeTotals_ImpuestoSobreBaseDescontada(t *testing.T) {
	// Dos líneas por $18.00, sin descuento, 12% de impuesto.
	got := sales.ComputeTotals(lines("10.00", "8.00"), decimal.Zero, decimal.Zero, d("12"))

	assert.True(t, got.Subtotal.Equal(d("18.00")), "subtotal: %s", got.Subtotal)
	assert.True(t, got.DiscountAmount.Equal(decimal.Zero))
	assert.True(t, got.TaxAmount.Equal(d("2.16")), "impuesto: %s", got.TaxAmount)
	assert.True(t, got.TotalAmount.Equal(d("20.16")), "total: %s", got.TotalAmount)
}

func TestComputeTotals_PorcentajeTienePrioridadSobrePlano(t *testing.T) {
	// 10% de $200 = $20; el plano de $5 se ignora.
	got := sales.ComputeTotals(lines("200.00"), d("10"), d("5.00"), decimal.Zero)

	assert.True(t, got.DiscountAmount.Equal(d("20.00")), "descuento: %s", got.DiscountAmount)
	assert.True(t, got.TotalAmount.Equal(d("180.00")))
}

func TestComputeTotals_DescuentoPlanoCuandoPorcentajeEsCero(t *testing.T) {
	got := sales.ComputeTotals(lines("200.00"), decimal.Zero, d("5.00"), decimal.Zero)

	assert.True(t, got.DiscountAmount.Equal(d("5.00")))
	assert.True(t, got.TotalAmount.Equal(d("195.00")))
}

func TestComputeTotals_SinLineasTodoEnCero(t *testing.T) {
	got := sales.ComputeTotals(nil, d("10"), d("5.00"), d("19"))

	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.TaxAmount.IsZero())
	assert.True(t, got.TotalAmount.IsZero())
}

func TestComputeTotals_RedondeoIntermedioACuatroDecimales(t *testing.T) {
	// 3.333% de $99.99 = 3.332667 -> 3.3327 intermedio -> $3.33 persistido.
	got := sales.ComputeTotals(lines("99.99"), d("3.333"), decimal.Zero, decimal.Zero)

	assert.True(t, got.DiscountAmount.Equal(d("3.33")), "descuento: %s", got.DiscountAmount)
}

func TestRecalculate_PersisteYEsIdempotente(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	sale := &entity.Sale{
		ID:            "s1",
		SaleNumber:    "V-001",
		SaleType:      entity.SaleTypeRetail,
		TaxPercentage: d("12"),
	}
	require.NoError(t, store.Sales().Create(sale))
	require.NoError(t, store.SaleDetails().Create(&entity.SaleDetail{
		ID: "d1", SaleID: "s1", Subtotal: d("10.00"), CreatedAt: now,
	}))
	require.NoError(t, store.SaleDetails().Create(&entity.SaleDetail{
		ID: "d2", SaleID: "s1", Subtotal: d("8.00"), CreatedAt: now.Add(time.Second),
	}))

	var recalc sales.TotalsRecalculator
	require.NoError(t, recalc.Recalculate(store.Sales(), store.SaleDetails(), sale, now))

	persisted, err := store.Sales().GetByID("s1")
	require.NoError(t, err)
	assert.True(t, persisted.Subtotal.Equal(d("18.00")))
	assert.True(t, persisted.TaxAmount.Equal(d("2.16")))
	assert.True(t, persisted.TotalAmount.Equal(d("20.16")))

	// Segunda pasada sin cambios en las líneas: mismos totales.
	require.NoError(t, recalc.Recalculate(store.Sales(), store.SaleDetails(), sale, now.Add(time.Minute)))
	again, err := store.Sales().GetByID("s1")
	require.NoError(t, err)
	assert.True(t, again.TotalAmount.Equal(persisted.TotalAmount))
}
