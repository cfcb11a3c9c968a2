package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/inventory"
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

func seedStock(t *testing.T) (*memory.Store, *entity.Product) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	product := &entity.Product{ID: "p1", Code: "PAN-001", Name: "Pan integral"}
	require.NoError(t, store.Products().Create(product))
	require.NoError(t, store.Batches().Create(&entity.ProductBatch{
		ID:              "b1",
		ProductID:       "p1",
		BatchCode:       "L-001",
		ProductionDate:  now,
		ExpirationDate:  now.AddDate(0, 1, 0),
		InitialQuantity: d("50"),
		CurrentQuantity: d("50"),
	}))
	require.NoError(t, store.Stock().Upsert(&entity.ProductStore{
		ID: "ps1", ProductID: "p1", StoreID: "t1", CurrentStock: d("50"),
	}))
	return store, product
}

func TestLedger_DebitActualizaLoteYTienda(t *testing.T) {
	store, product := seedStock(t)
	var ledger inventory.StockLedger

	err := ledger.Debit(store.Batches(), store.Stock(), product, "t1", strptr("b1"), d("20"), time.Now())
	require.NoError(t, err)

	b, _ := store.Batches().GetByID("b1")
	assert.True(t, b.CurrentQuantity.Equal(d("30")))
	ps, _ := store.Stock().Get("p1", "t1")
	assert.True(t, ps.CurrentStock.Equal(d("30")))
}

func TestLedger_DebitSinLoteSoloTienda(t *testing.T) {
	store, product := seedStock(t)
	var ledger inventory.StockLedger

	err := ledger.Debit(store.Batches(), store.Stock(), product, "t1", nil, d("20"), time.Now())
	require.NoError(t, err)

	b, _ := store.Batches().GetByID("b1")
	assert.True(t, b.CurrentQuantity.Equal(d("50")), "sin lote el conteo por lote no cambia")
	ps, _ := store.Stock().Get("p1", "t1")
	assert.True(t, ps.CurrentStock.Equal(d("30")))
}

func TestLedger_DebitRechazaInsuficiencia(t *testing.T) {
	store, product := seedStock(t)
	var ledger inventory.StockLedger

	err := ledger.Debit(store.Batches(), store.Stock(), product, "t1", strptr("b1"), d("51"), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
}

func TestLedger_DebitRechazaLoteAjeno(t *testing.T) {
	store, product := seedStock(t)
	require.NoError(t, store.Batches().Create(&entity.ProductBatch{
		ID: "b-otro", ProductID: "p2", BatchCode: "L-OTRO",
		ExpirationDate:  time.Now().AddDate(0, 1, 0),
		InitialQuantity: d("10"), CurrentQuantity: d("10"),
	}))
	var ledger inventory.StockLedger

	err := ledger.Debit(store.Batches(), store.Stock(), product, "t1", strptr("b-otro"), d("1"), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLedger_DebitSinFilaDeStockEsNotFound(t *testing.T) {
	store, product := seedStock(t)
	var ledger inventory.StockLedger

	err := ledger.Debit(store.Batches(), store.Stock(), product, "t-inexistente", nil, d("1"), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLedger_CreditCreaFilaDeStockSiFalta(t *testing.T) {
	store, product := seedStock(t)
	var ledger inventory.StockLedger

	err := ledger.Credit(store.Batches(), store.Stock(), product, "t2", nil, d("7"), time.Now())
	require.NoError(t, err)

	ps, err := store.Stock().Get("p1", "t2")
	require.NoError(t, err)
	require.NotNil(t, ps)
	assert.True(t, ps.CurrentStock.Equal(d("7")))
}

func TestLedger_CreditNoSuperaCantidadInicialDelLote(t *testing.T) {
	store, product := seedStock(t)
	var ledger inventory.StockLedger

	// 50/50: cualquier crédito dejaría el lote por encima de su inicial.
	err := ledger.Credit(store.Batches(), store.Stock(), product, "t1", strptr("b1"), d("1"), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Tras un débito, el crédito hasta la inicial sí procede.
	require.NoError(t, ledger.Debit(store.Batches(), store.Stock(), product, "t1", strptr("b1"), d("10"), time.Now()))
	require.NoError(t, ledger.Credit(store.Batches(), store.Stock(), product, "t1", strptr("b1"), d("10"), time.Now()))
	b, _ := store.Batches().GetByID("b1")
	assert.True(t, b.CurrentQuantity.Equal(d("50")))
}
