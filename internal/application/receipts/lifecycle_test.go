package receipts_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/receipts"
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

// seedReceiptFixture deja una venta con una línea y totales, lista para emitir.
func seedReceiptFixture(t *testing.T) (*memory.Store, *receipts.ReceiptUseCase) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	require.NoError(t, store.Stores().Create(&entity.Store{ID: "t1", Code: "T1", Name: "Central"}))
	require.NoError(t, store.Users().Create(&entity.User{ID: "u1", Email: "caja@tienda.cl", Role: entity.RoleVendedor}))
	require.NoError(t, store.Sales().Create(&entity.Sale{
		ID:          "s1",
		SaleNumber:  "V-001",
		SaleType:    entity.SaleTypeRetail,
		StoreID:     "t1",
		Subtotal:    d("18.00"),
		TaxAmount:   d("2.16"),
		TotalAmount: d("20.16"),
		SaleDate:    now,
	}))
	require.NoError(t, store.SaleDetails().Create(&entity.SaleDetail{
		ID: "sd1", SaleID: "s1", ProductID: "p1", Quantity: d("2"),
		UnitPrice: d("9.00"), Subtotal: d("18.00"), CreatedAt: now,
	}))

	uc := receipts.NewReceiptUseCase(
		memory.NewTxRunner(store),
		store.Receipts(), store.Stores(), store.Users(),
	)
	return store, uc
}

func issue(t *testing.T, uc *receipts.ReceiptUseCase) *entity.Receipt {
	t.Helper()
	receipt, err := uc.Issue(context.Background(), "u1", dto.IssueReceiptRequest{
		SaleID:        "s1",
		PaymentMethod: "efectivo",
	})
	require.NoError(t, err)
	return receipt
}

func TestIssue_CongelaVentaYCopiaTotales(t *testing.T) {
	store, uc := seedReceiptFixture(t)

	receipt := issue(t, uc)

	assert.Equal(t, entity.ReceiptStatusActive, receipt.Status)
	assert.Contains(t, receipt.ReceiptNumber, "REC-CEN-")
	assert.True(t, receipt.TotalAmount.Equal(d("20.16")), "snapshot de los totales")
	assert.Equal(t, "u1", receipt.IssuedBy)

	sale, err := store.Sales().GetByID("s1")
	require.NoError(t, err)
	assert.True(t, sale.IsInvoiced, "la emisión congela la venta")
}

func TestIssue_UnaVentaUnRecibo(t *testing.T) {
	_, uc := seedReceiptFixture(t)
	issue(t, uc)

	_, err := uc.Issue(context.Background(), "u1", dto.IssueReceiptRequest{SaleID: "s1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestIssue_VentaSinLineasRechazada(t *testing.T) {
	store, uc := seedReceiptFixture(t)
	require.NoError(t, store.SaleDetails().Delete("sd1"))

	_, err := uc.Issue(context.Background(), "u1", dto.IssueReceiptRequest{SaleID: "s1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	sale, err := store.Sales().GetByID("s1")
	require.NoError(t, err)
	assert.False(t, sale.IsInvoiced, "la venta no quedó congelada")
}

func TestPrint_ContadorMonotonicoYBloqueaEdicion(t *testing.T) {
	_, uc := seedReceiptFixture(t)
	receipt := issue(t, uc)

	for i := 0; i < 3; i++ {
		var err error
		receipt, err = uc.Print(context.Background(), receipt.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, receipt.PrintCount)
	assert.True(t, receipt.IsPrinted)

	// Impreso: la edición y el borrado quedan vedados.
	_, err := uc.Update(context.Background(), receipt.ID, dto.UpdateReceiptRequest{PaymentMethod: "tarjeta"})
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))
	err = uc.Delete(context.Background(), receipt.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))
}

func TestPrint_ConcurrenciaNoPierdeImpresiones(t *testing.T) {
	store, uc := seedReceiptFixture(t)
	receipt := issue(t, uc)

	const impresiones = 200
	errs := make(chan error, impresiones)
	var wg sync.WaitGroup
	for i := 0; i < impresiones; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Print(context.Background(), receipt.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := store.Receipts().GetByID(receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, impresiones, got.PrintCount, "cada impresión incrementa el contador exactamente una vez")
	assert.True(t, got.IsPrinted)
}

func TestUpdate_SoloMientrasSinImprimir(t *testing.T) {
	_, uc := seedReceiptFixture(t)
	receipt := issue(t, uc)

	updated, err := uc.Update(context.Background(), receipt.ID, dto.UpdateReceiptRequest{
		PaymentMethod: "tarjeta",
		Notes:         "pago con débito",
	})
	require.NoError(t, err)
	assert.Equal(t, "tarjeta", updated.PaymentMethod)
	assert.Equal(t, "pago con débito", updated.Notes)
}

func TestCancel_EsTerminal(t *testing.T) {
	_, uc := seedReceiptFixture(t)
	receipt := issue(t, uc)

	cancelled, err := uc.Cancel(context.Background(), receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptStatusCancelled, cancelled.Status)
	assert.True(t, cancelled.TotalAmount.Equal(d("20.16")), "conserva el snapshot")

	_, err = uc.Cancel(context.Background(), receipt.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation), "no se cancela dos veces")
	_, err = uc.Print(context.Background(), receipt.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation), "cancelado no se imprime")
}

func TestDelete_DescongelaVenta(t *testing.T) {
	store, uc := seedReceiptFixture(t)
	receipt := issue(t, uc)

	require.NoError(t, uc.Delete(context.Background(), receipt.ID))

	got, err := store.Receipts().GetByID(receipt.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	sale, err := store.Sales().GetByID("s1")
	require.NoError(t, err)
	assert.False(t, sale.IsInvoiced, "la venta vuelve a ser mutable")

	// Y puede emitirse de nuevo.
	again, err := uc.Issue(context.Background(), "u1", dto.IssueReceiptRequest{SaleID: "s1"})
	require.NoError(t, err)
	assert.NotEqual(t, receipt.ID, again.ID)
}

func TestNumberForStore_TiendaInexistente(t *testing.T) {
	_, uc := seedReceiptFixture(t)

	_, err := uc.NumberForStore(context.Background(), "t-fantasma")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	n, err := uc.NumberForStore(context.Background(), "t1")
	require.NoError(t, err)
	assert.Contains(t, n, "REC-CEN-")
}
