package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/memory"
)

func seedMovementFixture(t *testing.T) (*memory.Store, *inventory.RegisterMovementUseCase) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	require.NoError(t, store.Products().Create(&entity.Product{ID: "p1", Code: "PAN-001", Name: "Pan integral"}))
	require.NoError(t, store.Stores().Create(&entity.Store{ID: "t1", Code: "T1", Name: "Central"}))
	require.NoError(t, store.Stores().Create(&entity.Store{ID: "t2", Code: "T2", Name: "Sucursal"}))
	require.NoError(t, store.Users().Create(&entity.User{ID: "u1", Email: "op@tienda.cl", Role: entity.RoleBodeguero}))
	require.NoError(t, store.Batches().Create(&entity.ProductBatch{
		ID: "b1", ProductID: "p1", BatchCode: "L-001",
		ProductionDate: now, ExpirationDate: now.AddDate(0, 1, 0),
		InitialQuantity: d("50"), CurrentQuantity: d("50"),
	}))
	require.NoError(t, store.Stock().Upsert(&entity.ProductStore{
		ID: "ps1", ProductID: "p1", StoreID: "t1", CurrentStock: d("50"),
	}))

	uc := inventory.NewRegisterMovementUseCase(
		memory.NewTxRunner(store),
		store.Products(), store.Stores(), store.Users(), store.Movements(),
	)
	return store, uc
}

func TestRegisterMovement_TransferMueveEntreTiendas(t *testing.T) {
	store, uc := seedMovementFixture(t)

	mov, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeTRANSFER,
		Reason:       entity.MovementReasonTransfer,
		ProductID:    "p1",
		FromStoreID:  strptr("t1"),
		ToStoreID:    strptr("t2"),
		Quantity:     d("15"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeTRANSFER, mov.Type)

	origen, _ := store.Stock().Get("p1", "t1")
	destino, _ := store.Stock().Get("p1", "t2")
	assert.True(t, origen.CurrentStock.Equal(d("35")))
	require.NotNil(t, destino, "el destino se crea al acreditar")
	assert.True(t, destino.CurrentStock.Equal(d("15")))
}

func TestRegisterMovement_TransferRequiereAmbasTiendas(t *testing.T) {
	_, uc := seedMovementFixture(t)

	_, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeTRANSFER,
		Reason:       entity.MovementReasonTransfer,
		ProductID:    "p1",
		FromStoreID:  strptr("t1"),
		Quantity:     d("5"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRegisterMovement_AjusteSinNotasFalla(t *testing.T) {
	store, uc := seedMovementFixture(t)

	_, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeOUT,
		Reason:       entity.MovementReasonAdjustment,
		ProductID:    "p1",
		BatchID:      strptr("b1"),
		FromStoreID:  strptr("t1"),
		Quantity:     d("3"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// El débito del ledger se revirtió junto con la tx.
	ps, _ := store.Stock().Get("p1", "t1")
	assert.True(t, ps.CurrentStock.Equal(d("50")), "rollback del débito")
	b, _ := store.Batches().GetByID("b1")
	assert.True(t, b.CurrentQuantity.Equal(d("50")))
}

func TestRegisterMovement_OutInsuficienteNoDejaRastro(t *testing.T) {
	store, uc := seedMovementFixture(t)

	_, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeOUT,
		Reason:       entity.MovementReasonDamage,
		ProductID:    "p1",
		FromStoreID:  strptr("t1"),
		Quantity:     d("100"),
		Notes:        "merma por rotura",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	ms, err := store.Movements().ListByProduct("p1", nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, ms)
}

func TestRegisterMovement_UsuarioDesconocido(t *testing.T) {
	_, uc := seedMovementFixture(t)

	_, err := uc.RegisterMovement(context.Background(), "fantasma", dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeIN,
		Reason:       entity.MovementReasonProduction,
		ProductID:    "p1",
		ToStoreID:    strptr("t1"),
		Quantity:     d("1"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestDeleteMovement_SoloAjustes(t *testing.T) {
	store, uc := seedMovementFixture(t)

	ajuste, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeIN,
		Reason:       entity.MovementReasonAdjustment,
		ProductID:    "p1",
		ToStoreID:    strptr("t1"),
		Quantity:     d("2"),
		Notes:        "conteo físico",
	})
	require.NoError(t, err)

	venta, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeOUT,
		Reason:       entity.MovementReasonDamage,
		ProductID:    "p1",
		FromStoreID:  strptr("t1"),
		Quantity:     d("1"),
		Notes:        "producto dañado en bodega",
	})
	require.NoError(t, err)

	err = uc.DeleteMovement(context.Background(), venta.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))

	require.NoError(t, uc.DeleteMovement(context.Background(), ajuste.ID))
	got, err := store.Movements().GetByID(ajuste.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// El borrado corrige el registro, no compensa stock.
	ps, _ := store.Stock().Get("p1", "t1")
	assert.True(t, ps.CurrentStock.Equal(d("51")), "50 +2 -1, sin reversa por el borrado")
}
