package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/internal/domain/validation"
)

const updateCompensationNote = "compensación por actualización/eliminación de línea de venta"

// LineProcessor orquesta el ciclo de vida de las líneas de venta. Cada
// operación ejecuta en una sola transacción: débito/crédito del ledger,
// movimiento de auditoría, mutación de la línea y recálculo de totales
// comprometen juntos o ninguno.
//
// El precio unitario se resuelve del precio vigente del producto (según el
// tipo de venta) en cada guardado; no queda congelado al crear la línea.
type LineProcessor struct {
	txRunner inventory.TxRunner
	products repository.ProductRepository
	ledger   inventory.StockLedger
	recorder inventory.MovementRecorder
	recalc   TotalsRecalculator
}

// NewLineProcessor construye el procesador de líneas.
func NewLineProcessor(txRunner inventory.TxRunner, products repository.ProductRepository) *LineProcessor {
	return &LineProcessor{txRunner: txRunner, products: products}
}

// Create agrega una línea: débito del ledger (lote + tienda), movimiento
// OUT/SALE y recálculo de totales.
func (uc *LineProcessor) Create(ctx context.Context, userID string, in dto.SaleDetailRequest) (*entity.SaleDetail, *entity.Sale, error) {
	if err := validation.PositiveQuantity(in.Quantity); err != nil {
		return nil, nil, err
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.BusinessErrorf(domain.ErrNotFound, "producto %s no encontrado", in.ProductID)
	}

	now := time.Now()
	var detail *entity.SaleDetail
	var sale *entity.Sale

	err = uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		var err error
		sale, err = uc.lockMutableSale(r, in.SaleID)
		if err != nil {
			return err
		}

		unitPrice := product.PriceForSaleType(sale.SaleType)
		if err := validation.PositivePrice(unitPrice); err != nil {
			return err
		}

		if err := uc.ledger.Debit(r.Batches, r.Stock, product, sale.StoreID, in.BatchID, in.Quantity, now); err != nil {
			return err
		}
		if _, err := uc.recorder.Record(r.Movements, inventory.RecordInput{
			Type:          entity.MovementTypeOUT,
			Reason:        entity.MovementReasonSale,
			ProductID:     product.ID,
			BatchID:       in.BatchID,
			FromStoreID:   &sale.StoreID,
			Quantity:      in.Quantity,
			ReferenceID:   sale.ID,
			ReferenceType: entity.ReferenceTypeSale,
			UserID:        userID,
		}, now); err != nil {
			return err
		}

		detail = &entity.SaleDetail{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: product.ID,
			BatchID:   in.BatchID,
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  in.Quantity.Mul(unitPrice).Round(2),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.SaleDetails.Create(detail); err != nil {
			return err
		}
		return uc.recalc.Recalculate(r.Sales, r.SaleDetails, sale, now)
	})
	if err != nil {
		return nil, nil, err
	}
	return detail, sale, nil
}

// Update recomputa la línea: con el mismo lote aplica el delta de cantidad
// (delta > 0 debita, delta < 0 acredita, cada uno con su movimiento); si el
// lote cambia, acredita la reserva anterior completa y debita la nueva. El
// precio unitario se vuelve a resolver del producto. El producto y la venta de
// la línea son fijos: pedir otros distintos se rechaza con ErrInvalidInput.
func (uc *LineProcessor) Update(ctx context.Context, userID, detailID string, in dto.SaleDetailRequest) (*entity.SaleDetail, *entity.Sale, error) {
	if err := validation.PositiveQuantity(in.Quantity); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	var detail *entity.SaleDetail
	var sale *entity.Sale

	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		var err error
		detail, err = r.SaleDetails.GetByID(detailID)
		if err != nil {
			return err
		}
		if detail == nil {
			return domain.BusinessErrorf(domain.ErrNotFound, "línea de venta %s no encontrada", detailID)
		}
		if in.SaleID != "" && in.SaleID != detail.SaleID {
			return domain.NewBusinessError(domain.ErrInvalidInput,
				"la línea no admite cambiar de venta",
				"venta de la línea: "+detail.SaleID,
				"venta solicitada: "+in.SaleID)
		}
		if in.ProductID != "" && in.ProductID != detail.ProductID {
			return domain.NewBusinessError(domain.ErrInvalidInput,
				"la línea no admite cambiar de producto",
				"producto de la línea: "+detail.ProductID,
				"producto solicitado: "+in.ProductID)
		}
		sale, err = uc.lockMutableSale(r, detail.SaleID)
		if err != nil {
			return err
		}
		product, err := uc.products.GetByID(detail.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.BusinessErrorf(domain.ErrNotFound, "producto %s no encontrado", detail.ProductID)
		}

		newBatch := in.BatchID
		if sameBatch(detail.BatchID, newBatch) {
			delta := in.Quantity.Sub(detail.Quantity)
			if delta.GreaterThan(decimal.Zero) {
				if err := uc.debitForSale(r, product, sale, detail.BatchID, delta, userID, now); err != nil {
					return err
				}
			} else if delta.LessThan(decimal.Zero) {
				if err := uc.creditCompensation(r, product, sale, detail.BatchID, delta.Neg(), userID, now); err != nil {
					return err
				}
			}
		} else {
			// Cambio de lote: devolver la reserva anterior completa y debitar la nueva.
			if err := uc.creditCompensation(r, product, sale, detail.BatchID, detail.Quantity, userID, now); err != nil {
				return err
			}
			if err := uc.debitForSale(r, product, sale, newBatch, in.Quantity, userID, now); err != nil {
				return err
			}
		}

		unitPrice := product.PriceForSaleType(sale.SaleType)
		if err := validation.PositivePrice(unitPrice); err != nil {
			return err
		}
		detail.BatchID = newBatch
		detail.Quantity = in.Quantity
		detail.UnitPrice = unitPrice
		detail.Subtotal = in.Quantity.Mul(unitPrice).Round(2)
		detail.UpdatedAt = now
		if err := r.SaleDetails.Update(detail); err != nil {
			return err
		}
		return uc.recalc.Recalculate(r.Sales, r.SaleDetails, sale, now)
	})
	if err != nil {
		return nil, nil, err
	}
	return detail, sale, nil
}

// Delete elimina la línea devolviendo la reserva completa al lote y la tienda
// (movimiento IN/ADJUSTMENT) y recalcula los totales.
func (uc *LineProcessor) Delete(ctx context.Context, userID, detailID string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		detail, err := r.SaleDetails.GetByID(detailID)
		if err != nil {
			return err
		}
		if detail == nil {
			return domain.BusinessErrorf(domain.ErrNotFound, "línea de venta %s no encontrada", detailID)
		}
		sale, err := uc.lockMutableSale(r, detail.SaleID)
		if err != nil {
			return err
		}
		product, err := uc.products.GetByID(detail.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.BusinessErrorf(domain.ErrNotFound, "producto %s no encontrado", detail.ProductID)
		}

		if err := uc.creditCompensation(r, product, sale, detail.BatchID, detail.Quantity, userID, now); err != nil {
			return err
		}
		if err := r.SaleDetails.Delete(detail.ID); err != nil {
			return err
		}
		return uc.recalc.Recalculate(r.Sales, r.SaleDetails, sale, now)
	})
}

// lockMutableSale bloquea la cabecera (serializa el recálculo de totales) y
// rechaza mutaciones sobre ventas ya facturadas.
func (uc *LineProcessor) lockMutableSale(r inventory.TxRepos, saleID string) (*entity.Sale, error) {
	sale, err := r.Sales.GetByIDForUpdate(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.BusinessErrorf(domain.ErrNotFound, "venta %s no encontrada", saleID)
	}
	if sale.IsInvoiced {
		return nil, domain.NewBusinessError(domain.ErrInvalidOperation,
			"la venta ya está facturada y no admite cambios",
			"venta: "+sale.SaleNumber)
	}
	return sale, nil
}

func (uc *LineProcessor) debitForSale(r inventory.TxRepos, product *entity.Product, sale *entity.Sale, batchID *string, qty decimal.Decimal, userID string, now time.Time) error {
	if err := uc.ledger.Debit(r.Batches, r.Stock, product, sale.StoreID, batchID, qty, now); err != nil {
		return err
	}
	_, err := uc.recorder.Record(r.Movements, inventory.RecordInput{
		Type:          entity.MovementTypeOUT,
		Reason:        entity.MovementReasonSale,
		ProductID:     product.ID,
		BatchID:       batchID,
		FromStoreID:   &sale.StoreID,
		Quantity:      qty,
		ReferenceID:   sale.ID,
		ReferenceType: entity.ReferenceTypeSale,
		UserID:        userID,
	}, now)
	return err
}

func (uc *LineProcessor) creditCompensation(r inventory.TxRepos, product *entity.Product, sale *entity.Sale, batchID *string, qty decimal.Decimal, userID string, now time.Time) error {
	if err := uc.ledger.Credit(r.Batches, r.Stock, product, sale.StoreID, batchID, qty, now); err != nil {
		return err
	}
	_, err := uc.recorder.Record(r.Movements, inventory.RecordInput{
		Type:          entity.MovementTypeIN,
		Reason:        entity.MovementReasonAdjustment,
		ProductID:     product.ID,
		BatchID:       batchID,
		ToStoreID:     &sale.StoreID,
		Quantity:      qty,
		ReferenceID:   sale.ID,
		ReferenceType: entity.ReferenceTypeSale,
		UserID:        userID,
		Notes:         updateCompensationNote,
	}, now)
	return err
}

func sameBatch(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
