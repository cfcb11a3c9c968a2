package sales

import (
	"context"
	"fmt"
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

// SaleUseCase maneja la cabecera de venta: creación (totales en cero),
// consulta y borrado con compensación de stock.
type SaleUseCase struct {
	txRunner    inventory.TxRunner
	sales       repository.SaleRepository
	saleDetails repository.SaleDetailRepository
	receipts    repository.ReceiptRepository
	products    repository.ProductRepository
	stores      repository.StoreRepository
	clients     repository.ClientRepository
	users       repository.UserRepository
	ledger      inventory.StockLedger
	recorder    inventory.MovementRecorder
}

// NewSaleUseCase construye el caso de uso de ventas.
func NewSaleUseCase(
	txRunner inventory.TxRunner,
	sales repository.SaleRepository,
	saleDetails repository.SaleDetailRepository,
	receipts repository.ReceiptRepository,
	products repository.ProductRepository,
	stores repository.StoreRepository,
	clients repository.ClientRepository,
	users repository.UserRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		sales:       sales,
		saleDetails: saleDetails,
		receipts:    receipts,
		products:    products,
		stores:      stores,
		clients:     clients,
		users:       users,
	}
}

// Create crea la cabecera con totales en cero. Valida tipo, porcentajes y la
// existencia de tienda, cliente y usuario.
func (uc *SaleUseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if in.SaleType != entity.SaleTypeRetail && in.SaleType != entity.SaleTypeWholesale {
		return nil, domain.BusinessErrorf(domain.ErrInvalidInput, "tipo de venta desconocido: %s", in.SaleType)
	}
	if err := validation.PercentageRange(in.DiscountPercentage, "descuento"); err != nil {
		return nil, err
	}
	if err := validation.PercentageRange(in.TaxPercentage, "impuesto"); err != nil {
		return nil, err
	}
	if err := validation.NonNegativeAmount(in.DiscountAmount, "descuento plano"); err != nil {
		return nil, err
	}

	store, err := uc.stores.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.BusinessErrorf(domain.ErrNotFound, "tienda %s no encontrada", in.StoreID)
	}
	client, err := uc.clients.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.BusinessErrorf(domain.ErrNotFound, "cliente %s no encontrado", in.ClientID)
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	number := in.SaleNumber
	if number == "" {
		number = fmt.Sprintf("V-%s-%s", now.Format("20060102"), now.Format("150405"))
	}
	sale := &entity.Sale{
		ID:                 uuid.New().String(),
		SaleNumber:         number,
		SaleType:           in.SaleType,
		StoreID:            in.StoreID,
		ClientID:           in.ClientID,
		UserID:             userID,
		SaleDate:           now,
		DiscountPercentage: in.DiscountPercentage,
		DiscountAmount:     in.DiscountAmount,
		TaxPercentage:      in.TaxPercentage,
		Subtotal:           decimal.Zero,
		TaxAmount:          decimal.Zero,
		TotalAmount:        decimal.Zero,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.sales.Create(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// Get devuelve la cabecera con sus líneas.
func (uc *SaleUseCase) Get(ctx context.Context, id string) (*entity.Sale, []*entity.SaleDetail, error) {
	sale, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, domain.BusinessErrorf(domain.ErrNotFound, "venta %s no encontrada", id)
	}
	details, err := uc.saleDetails.ListBySale(id)
	if err != nil {
		return nil, nil, err
	}
	return sale, details, nil
}

// Delete borra una venta no facturada: devuelve la reserva de cada línea al
// ledger (movimiento IN/ADJUSTMENT por línea) y elimina líneas y cabecera en
// una sola transacción. Una venta facturada o con recibo no puede borrarse.
func (uc *SaleUseCase) Delete(ctx context.Context, userID, id string) error {
	receipt, err := uc.receipts.GetBySaleID(id)
	if err != nil {
		return err
	}
	if receipt != nil {
		return domain.NewBusinessError(domain.ErrInvalidOperation,
			"la venta tiene recibo emitido y no puede borrarse",
			"recibo: "+receipt.ReceiptNumber)
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		sale, err := r.Sales.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.BusinessErrorf(domain.ErrNotFound, "venta %s no encontrada", id)
		}
		if sale.IsInvoiced {
			return domain.NewBusinessError(domain.ErrInvalidOperation,
				"la venta está facturada y no puede borrarse",
				"venta: "+sale.SaleNumber)
		}
		details, err := r.SaleDetails.ListBySale(id)
		if err != nil {
			return err
		}
		for _, d := range details {
			product, err := uc.products.GetByID(d.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.BusinessErrorf(domain.ErrNotFound, "producto %s no encontrado", d.ProductID)
			}
			if err := uc.ledger.Credit(r.Batches, r.Stock, product, sale.StoreID, d.BatchID, d.Quantity, now); err != nil {
				return err
			}
			if _, err := uc.recorder.Record(r.Movements, inventory.RecordInput{
				Type:          entity.MovementTypeIN,
				Reason:        entity.MovementReasonAdjustment,
				ProductID:     d.ProductID,
				BatchID:       d.BatchID,
				ToStoreID:     &sale.StoreID,
				Quantity:      d.Quantity,
				ReferenceID:   sale.ID,
				ReferenceType: entity.ReferenceTypeSale,
				UserID:        userID,
				Notes:         updateCompensationNote,
			}, now); err != nil {
				return err
			}
			if err := r.SaleDetails.Delete(d.ID); err != nil {
				return err
			}
		}
		return r.Sales.Delete(sale.ID)
	})
}
