package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/internal/domain/validation"
)

// BatchUseCase administra lotes de producción. El alta acredita el stock de la
// tienda y emite el movimiento IN/PRODUCTION en la misma transacción del
// insert del lote.
type BatchUseCase struct {
	txRunner inventory.TxRunner
	batches  repository.ProductBatchRepository
	products repository.ProductRepository
	stores   repository.StoreRepository
	ledger   inventory.StockLedger
	recorder inventory.MovementRecorder
}

// NewBatchUseCase construye el caso de uso de lotes.
func NewBatchUseCase(
	txRunner inventory.TxRunner,
	batches repository.ProductBatchRepository,
	products repository.ProductRepository,
	stores repository.StoreRepository,
) *BatchUseCase {
	return &BatchUseCase{txRunner: txRunner, batches: batches, products: products, stores: stores}
}

// Create da de alta un lote: CurrentQuantity arranca igual a InitialQuantity,
// el stock de la tienda se acredita y queda el movimiento IN/PRODUCTION, todo
// atómico.
func (uc *BatchUseCase) Create(ctx context.Context, userID string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if err := validation.NotBlank(in.BatchCode, "código de lote"); err != nil {
		return nil, err
	}
	if err := validation.PositiveQuantity(in.InitialQuantity); err != nil {
		return nil, err
	}
	if err := validation.DateOrder(in.ProductionDate, in.ExpirationDate); err != nil {
		return nil, err
	}

	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.BusinessErrorf(domain.ErrNotFound, "producto %s no encontrado", in.ProductID)
	}
	store, err := uc.stores.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.BusinessErrorf(domain.ErrNotFound, "tienda %s no encontrada", in.StoreID)
	}
	existing, err := uc.batches.GetByCode(in.BatchCode)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ProductID == in.ProductID {
		return nil, domain.NewBusinessError(domain.ErrDuplicate,
			"ya existe un lote con ese código para el producto", "lote: "+in.BatchCode)
	}

	now := time.Now()
	batch := &entity.ProductBatch{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		BatchCode:       in.BatchCode,
		ProductionDate:  in.ProductionDate,
		ExpirationDate:  in.ExpirationDate,
		InitialQuantity: in.InitialQuantity,
		CurrentQuantity: in.InitialQuantity,
		StoreID:         &in.StoreID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		if err := r.Batches.Create(batch); err != nil {
			return err
		}
		// El lote nace con su stock ya contado: acreditar solo el agregado de
		// la tienda, la cantidad del lote ya es InitialQuantity.
		if err := uc.ledger.Credit(r.Batches, r.Stock, product, in.StoreID, nil, in.InitialQuantity, now); err != nil {
			return err
		}
		_, err := uc.recorder.Record(r.Movements, inventory.RecordInput{
			Type:          entity.MovementTypeIN,
			Reason:        entity.MovementReasonProduction,
			ProductID:     in.ProductID,
			BatchID:       &batch.ID,
			ToStoreID:     &in.StoreID,
			Quantity:      in.InitialQuantity,
			ReferenceID:   batch.ID,
			ReferenceType: entity.ReferenceTypeBatch,
			UserID:        userID,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// GetByID obtiene un lote por ID.
func (uc *BatchUseCase) GetByID(id string) (*dto.BatchResponse, error) {
	batch, err := uc.batches.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.BusinessErrorf(domain.ErrNotFound, "lote %s no encontrado", id)
	}
	return toBatchResponse(batch), nil
}

// ListByProduct lista los lotes de un producto.
func (uc *BatchUseCase) ListByProduct(productID string, page dto.PageRequest) ([]*dto.BatchResponse, error) {
	batches, err := uc.batches.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	return out, nil
}

// Delete borra un lote sin stock remanente. Un lote con CurrentQuantity > 0 no
// puede borrarse: primero hay que darlo de baja con un movimiento OUT.
func (uc *BatchUseCase) Delete(ctx context.Context, id string) error {
	batch, err := uc.batches.GetByID(id)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.BusinessErrorf(domain.ErrNotFound, "lote %s no encontrado", id)
	}
	if batch.CurrentQuantity.IsPositive() {
		return domain.NewBusinessError(domain.ErrInvalidOperation,
			"el lote tiene stock remanente y no puede borrarse",
			"cantidad actual: "+batch.CurrentQuantity.String())
	}
	return uc.batches.Delete(id)
}

func toBatchResponse(b *entity.ProductBatch) *dto.BatchResponse {
	return &dto.BatchResponse{
		ID:              b.ID,
		ProductID:       b.ProductID,
		BatchCode:       b.BatchCode,
		ProductionDate:  b.ProductionDate,
		ExpirationDate:  b.ExpirationDate,
		InitialQuantity: b.InitialQuantity,
		CurrentQuantity: b.CurrentQuantity,
		StoreID:         b.StoreID,
	}
}
