package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/sales"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/memory"
)

type fixture struct {
	store *memory.Store
	uc    *sales.LineProcessor
}

// seedSale deja listo un producto con lote de 50 unidades, 50 de stock en la
// tienda T1 y una venta RETAIL abierta.
func seedSale(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Products().Create(&entity.Product{
		ID:             "p1",
		Code:           "PAN-001",
		Name:           "Pan integral",
		RetailPrice:    d("2.50"),
		WholesalePrice: d("2.00"),
	}))
	require.NoError(t, store.Batches().Create(&entity.ProductBatch{
		ID:              "b1",
		ProductID:       "p1",
		BatchCode:       "L-001",
		ProductionDate:  now,
		ExpirationDate:  now.AddDate(0, 0, 30),
		InitialQuantity: d("50"),
		CurrentQuantity: d("50"),
	}))
	require.NoError(t, store.Stock().Upsert(&entity.ProductStore{
		ID:           "ps1",
		ProductID:    "p1",
		StoreID:      "t1",
		CurrentStock: d("50"),
	}))
	require.NoError(t, store.Sales().Create(&entity.Sale{
		ID:            "s1",
		SaleNumber:    "V-001",
		SaleType:      entity.SaleTypeRetail,
		StoreID:       "t1",
		TaxPercentage: d("12"),
		SaleDate:      now,
	}))

	return &fixture{
		store: store,
		uc:    sales.NewLineProcessor(memory.NewTxRunner(store), store.Products()),
	}
}

func (f *fixture) batchQty(t *testing.T) decimal.Decimal {
	t.Helper()
	b, err := f.store.Batches().GetByID("b1")
	require.NoError(t, err)
	return b.CurrentQuantity
}

func (f *fixture) storeStock(t *testing.T) decimal.Decimal {
	t.Helper()
	ps, err := f.store.Stock().Get("p1", "t1")
	require.NoError(t, err)
	require.NotNil(t, ps)
	return ps.CurrentStock
}

func (f *fixture) saleMovements(t *testing.T) []*entity.InventoryMovement {
	t.Helper()
	ms, err := f.store.Movements().ListByReference("s1", entity.ReferenceTypeSale)
	require.NoError(t, err)
	return ms
}

func batchID(id string) *string { return &id }

// ──────────────────────────────────────────────

func TestLineProcessor_CreateDebitaYEmiteMovimiento(t *testing.T) {
	f := seedSale(t)

	detail, sale, err := f.uc.Create(context.Background(), "u1", dto.SaleDetailRequest{
		SaleID:    "s1",
		ProductID: "p1",
		BatchID:   batchID("b1"),
		Quantity:  d("20"),
	})
	require.NoError(t, err)

	assert.True(t, detail.UnitPrice.Equal(d("2.50")), "precio RETAIL resuelto del producto")
	assert.True(t, detail.Subtotal.Equal(d("50.00")))

	assert.True(t, f.batchQty(t).Equal(d("30")))
	assert.True(t, f.storeStock(t).Equal(d("30")))

	ms := f.saleMovements(t)
	require.Len(t, ms, 1)
	assert.Equal(t, entity.MovementTypeOUT, ms[0].Type)
	assert.Equal(t, entity.MovementReasonSale, ms[0].Reason)
	assert.True(t, ms[0].Quantity.Equal(d("20")))

	// Totales derivados: 50.00 + 12% = 56.00
	assert.True(t, sale.Subtotal.Equal(d("50.00")))
	assert.True(t, sale.TotalAmount.Equal(d("56.00")))
}

func TestLineProcessor_UpdateMismoLoteAplicaDelta(t *testing.T) {
	f := seedSale(t)

	detail, _, err := f.uc.Create(context.Background(), "u1", dto.SaleDetailRequest{
		SaleID: "s1", ProductID: "p1", BatchID: batchID("b1"), Quantity: d("20"),
	})
	require.NoError(t, err)

	// 20 -> 5: delta -15 acredita lote y tienda.
	updated, _, err := f.uc.Update(context.Background(), "u1", detail.ID, dto.SaleDetailRequest{
		SaleID: "s1", ProductID: "p1", BatchID: batchID("b1"), Quantity: d("5"),
	})
	require.NoError(t, err)

	assert.True(t, updated.Quantity.Equal(d("5")))
	assert.True(t, f.batchQty(t).Equal(d("45")))
	assert.True(t, f.storeStock(t).Equal(d("45")))

	ms := f.saleMovements(t)
	require.Len(t, ms, 2, "OUT original + IN de compensación")
	assert.Equal(t, entity.MovementTypeIN, ms[1].Type)
	assert.Equal(t, entity.MovementReasonAdjustment, ms[1].Reason)
	assert.True(t, ms[1].Quantity.Equal(d("15")))
}

func TestLineProcessor_UpdateCambioDeLote(t *testing.T) {
	f := seedSale(t)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	require.NoError(t, f.store.Batches().Create(&entity.ProductBatch{
		ID:              "b2",
		ProductID:       "p1",
		BatchCode:       "L-002",
		ProductionDate:  now,
		ExpirationDate:  now.AddDate(0, 0, 60),
		InitialQuantity: d("30"),
		CurrentQuantity: d("30"),
	}))

	detail, _, err := f.uc.Create(context.Background(), "u1", dto.SaleDetailRequest{
		SaleID: "s1", ProductID: "p1", BatchID: batchID("b1"), Quantity: d("20"),
	})
	require.NoError(t, err)

	_, _, err = f.uc.Update(context.Background(), "u1", detail.ID, dto.SaleDetailRequest{
		SaleID: "s1", ProductID: "p1", BatchID: batchID("b2"), Quantity: d("10"),
	})
	require.NoError(t, err)

	// El lote original recupera su reserva completa; el nuevo absorbe el débito.
	assert.True(t, f.batchQty(t).Equal(d("50")))
	b2, err := f.store.Batches().GetByID("b2")
	require.NoError(t, err)
	assert.True(t, b2.CurrentQuantity.Equal(d("20")))
	assert.True(t, f.storeStock(t).Equal(d("40")), "tienda: -20 +20 -10")
}

func TestLineProcessor_DeleteDevuelveReservaCompleta(t *testing.T) {
	f := seedSale(t)

	detail, _, err := f.uc.Create(context.Background(), "u1", dto.SaleDetailRequest{
		SaleID: "s1", ProductID: "p1", BatchID: batchID("b1"), Quantity: d("20"),
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), "u1", detail.ID))

	assert.True(t, f.batchQty(t).Equal(d("50")))
	assert.True(t, f.storeStock(t).Equal(d("50")))

	ms := f.saleMovements(t)
	require.Len(t, ms, 2, "queda el rastro: OUT y luego IN")
	assert.Equal(t, entity.MovementTypeOUT, ms[0].Type)
	assert.Equal(t, entity.MovementTypeIN, ms[1].Type)
	assert.Equal(t, entity.MovementReasonAdjustment, ms[1].Reason)

	sale, err := f.store.Sales().GetByID("s1")
	require.NoError(t, err)
	assert.True(t, sale.TotalAmount.IsZero(), "sin líneas los totales vuelven a cero")
}

func TestLineProcessor_VentaFacturadaRechazaMutaciones(t *testing.T) {
	f := seedSale(t)

	detail, _, err := f.uc.Create(context.Background(), "u1", dto.SaleDetailRequest{
		SaleID: "s1", ProductID: "p1", BatchID: batchID("b1"), Quantity: d("5"),
	})
	require.NoError(t, err)

	sale, err := f.store.Sales().GetByID("s1")
	require.NoError(t, err)
	sale.IsInvoiced = true
	require.NoError(t, f.store.Sales().Update(sale))

	_, _, err = f.uc.Create(context.Background(), "u1", dto.SaleDetailRequest{
		SaleID: "s1", ProductID: "p1", BatchID: batchID("b1"), Quantity: d("1"),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))

	_, _, err = f.uc.Update(context.Background(), "u1", detail.ID, dto.SaleDetailRequest{
		SaleID: "s1", ProductID: "p1", BatchID: batchID("b1"), Quantity: d("2"),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))

	err = f.uc.Delete(context.Background(), "u1", detail.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))
}

func TestLineProcessor_UpdateRechazaCambioDeProductoOVenta(t *testing.T) {
	f := seedSale(t)

	detail, _, err := f.uc.Create(context.Background(), "u1", dto.SaleDetailRequest{
		SaleID: "s1", ProductID: "p1", BatchID: batchID("b1"), Quantity: d("20"),
	})
	require.NoError(t, err)

	_, _, err = f.uc.Update(context.Background(), "u1", detail.ID, dto.SaleDetailRequest{
		SaleID: "s1", ProductID: "p-otro", BatchID: batchID("b1"), Quantity: d("5"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "la línea no cambia de producto")

	_, _, err = f.uc.Update(context.Background(), "u1", detail.ID, dto.SaleDetailRequest{
		SaleID: "s-otra", ProductID: "p1", BatchID: batchID("b1"), Quantity: d("5"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "la línea no cambia de venta")

	// El rechazo no tocó stock ni cantidad de la línea.
	assert.True(t, f.batchQty(t).Equal(d("30")))
	assert.True(t, f.storeStock(t).Equal(d("30")))
	got, err := f.store.SaleDetails().GetByID(detail.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(d("20")))
}

func TestLineProcessor_StockInsuficienteRevierteTodo(t *testing.T) {
	f := seedSale(t)

	_, _, err := f.uc.Create(context.Background(), "u1", dto.SaleDetailRequest{
		SaleID: "s1", ProductID: "p1", BatchID: batchID("b1"), Quantity: d("51"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// Nada quedó a medias: ni línea, ni movimiento, ni descuento de stock.
	assert.True(t, f.batchQty(t).Equal(d("50")))
	assert.True(t, f.storeStock(t).Equal(d("50")))
	assert.Empty(t, f.saleMovements(t))
	details, err := f.store.SaleDetails().ListBySale("s1")
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestLineProcessor_LoteVencidoRechazaDebito(t *testing.T) {
	f := seedSale(t)
	require.NoError(t, f.store.Batches().Create(&entity.ProductBatch{
		ID:              "b-vencido",
		ProductID:       "p1",
		BatchCode:       "L-VENC",
		ProductionDate:  time.Now().AddDate(0, -2, 0),
		ExpirationDate:  time.Now().AddDate(0, 0, -1),
		InitialQuantity: d("10"),
		CurrentQuantity: d("10"),
	}))

	_, _, err := f.uc.Create(context.Background(), "u1", dto.SaleDetailRequest{
		SaleID: "s1", ProductID: "p1", BatchID: batchID("b-vencido"), Quantity: d("1"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExpiredBatch))
}

func TestLineProcessor_VentaMayoristaUsaPrecioMayorista(t *testing.T) {
	f := seedSale(t)
	sale, err := f.store.Sales().GetByID("s1")
	require.NoError(t, err)
	sale.SaleType = entity.SaleTypeWholesale
	require.NoError(t, f.store.Sales().Update(sale))

	detail, _, err := f.uc.Create(context.Background(), "u1", dto.SaleDetailRequest{
		SaleID: "s1", ProductID: "p1", BatchID: batchID("b1"), Quantity: d("10"),
	})
	require.NoError(t, err)
	assert.True(t, detail.UnitPrice.Equal(d("2.00")))
	assert.True(t, detail.Subtotal.Equal(d("20.00")))
}
