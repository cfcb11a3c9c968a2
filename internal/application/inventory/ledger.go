package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/internal/domain/validation"
)

// StockLedger mantiene los conteos autoritativos de stock: el agregado por
// (producto, tienda) y la cantidad por lote. Débito y crédito operan sobre
// repositorios atados a la transacción del caller y bloquean las filas
// (SELECT FOR UPDATE) antes de verificar suficiencia, de modo que dos ventas
// simultáneas no puedan sobregirar el mismo stock.
type StockLedger struct{}

// Debit descuenta quantity del lote (si se indica) y del agregado de la tienda.
// Precondiciones: cantidad positiva; el lote pertenece al producto, no está
// vencido y tiene cantidad suficiente; la fila (producto, tienda) existe y
// tiene stock suficiente. Ambas actualizaciones ocurren en la tx del caller.
func (StockLedger) Debit(
	batches repository.ProductBatchRepository,
	stock repository.ProductStoreRepository,
	product *entity.Product,
	storeID string,
	batchID *string,
	quantity decimal.Decimal,
	now time.Time,
) error {
	if err := validation.PositiveQuantity(quantity); err != nil {
		return err
	}

	var batch *entity.ProductBatch
	if batchID != nil {
		var err error
		batch, err = batches.GetByIDForUpdate(*batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.BusinessErrorf(domain.ErrNotFound, "lote %s no encontrado", *batchID)
		}
		if err := validation.BatchBelongsToProduct(batch, product.ID); err != nil {
			return err
		}
		if err := validation.BatchNotExpired(batch, now); err != nil {
			return err
		}
		if err := validation.SufficientStock(batch.CurrentQuantity, quantity, "lote "+batch.BatchCode); err != nil {
			return err
		}
	}

	ps, err := stock.GetForUpdate(product.ID, storeID)
	if err != nil {
		return err
	}
	if ps == nil {
		return domain.BusinessErrorf(domain.ErrNotFound,
			"no existe stock del producto %s en la tienda %s", product.Code, storeID)
	}
	if err := validation.SufficientStock(ps.CurrentStock, quantity, "tienda"); err != nil {
		return err
	}

	if batch != nil {
		if err := batches.UpdateQuantity(batch.ID, batch.CurrentQuantity.Sub(quantity)); err != nil {
			return err
		}
	}
	ps.CurrentStock = ps.CurrentStock.Sub(quantity)
	ps.UpdatedAt = now
	return stock.Upsert(ps)
}

// Credit es la operación espejo del débito (compensaciones y eliminaciones de
// línea). No exige suficiencia, pero rechaza créditos que dejarían el lote por
// encima de su cantidad inicial. Si la fila (producto, tienda) no existe, la
// crea con la cantidad acreditada.
func (StockLedger) Credit(
	batches repository.ProductBatchRepository,
	stock repository.ProductStoreRepository,
	product *entity.Product,
	storeID string,
	batchID *string,
	quantity decimal.Decimal,
	now time.Time,
) error {
	if err := validation.PositiveQuantity(quantity); err != nil {
		return err
	}

	if batchID != nil {
		batch, err := batches.GetByIDForUpdate(*batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.BusinessErrorf(domain.ErrNotFound, "lote %s no encontrado", *batchID)
		}
		if err := validation.BatchBelongsToProduct(batch, product.ID); err != nil {
			return err
		}
		if err := validation.CreditWithinInitial(batch, quantity); err != nil {
			return err
		}
		if err := batches.UpdateQuantity(batch.ID, batch.CurrentQuantity.Add(quantity)); err != nil {
			return err
		}
	}

	ps, err := stock.GetForUpdate(product.ID, storeID)
	if err != nil {
		return err
	}
	if ps == nil {
		ps = &entity.ProductStore{
			ProductID:    product.ID,
			StoreID:      storeID,
			CurrentStock: decimal.Zero,
		}
	}
	ps.CurrentStock = ps.CurrentStock.Add(quantity)
	ps.UpdatedAt = now
	return stock.Upsert(ps)
}
