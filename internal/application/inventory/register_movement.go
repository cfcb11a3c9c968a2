package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario manuales
// (PRODUCTION, ADJUSTMENT, DAMAGE, EXPIRED, TRANSFER) de forma transaccional:
// débito/crédito del ledger y registro de auditoría comprometen juntos.
type RegisterMovementUseCase struct {
	txRunner  TxRunner
	products  repository.ProductRepository
	stores    repository.StoreRepository
	users     repository.UserRepository
	movements repository.InventoryMovementRepository
	ledger    StockLedger
	recorder  MovementRecorder
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	products repository.ProductRepository,
	stores repository.StoreRepository,
	users repository.UserRepository,
	movements repository.InventoryMovementRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:  txRunner,
		products:  products,
		stores:    stores,
		users:     users,
		movements: movements,
	}
}

// RegisterMovement valida referencias fuera de la transacción (solo lectura) y
// luego, dentro de una tx: aplica el ledger según el tipo y registra el
// movimiento. TRANSFER descuenta en origen, acredita en destino y emite un
// único movimiento con ambas tiendas.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*entity.InventoryMovement, error) {
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.BusinessErrorf(domain.ErrNotFound, "producto %s no encontrado", in.ProductID)
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	for _, storeID := range []*string{in.FromStoreID, in.ToStoreID} {
		if storeID == nil {
			continue
		}
		store, err := uc.stores.GetByID(*storeID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, domain.BusinessErrorf(domain.ErrNotFound, "tienda %s no encontrada", *storeID)
		}
	}

	now := time.Now()
	refID := uuid.New().String()
	var mov *entity.InventoryMovement

	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		switch in.MovementType {
		case entity.MovementTypeIN:
			if in.ToStoreID == nil {
				return domain.NewBusinessError(domain.ErrInvalidInput, "un movimiento IN requiere tienda destino")
			}
			if err := uc.ledger.Credit(r.Batches, r.Stock, product, *in.ToStoreID, in.BatchID, in.Quantity, now); err != nil {
				return err
			}
		case entity.MovementTypeOUT:
			if in.FromStoreID == nil {
				return domain.NewBusinessError(domain.ErrInvalidInput, "un movimiento OUT requiere tienda origen")
			}
			if err := uc.ledger.Debit(r.Batches, r.Stock, product, *in.FromStoreID, in.BatchID, in.Quantity, now); err != nil {
				return err
			}
		case entity.MovementTypeTRANSFER:
			if in.FromStoreID == nil || in.ToStoreID == nil {
				return domain.NewBusinessError(domain.ErrInvalidInput, "un TRANSFER requiere tienda origen y destino")
			}
			if err := uc.ledger.Debit(r.Batches, r.Stock, product, *in.FromStoreID, nil, in.Quantity, now); err != nil {
				return err
			}
			if err := uc.ledger.Credit(r.Batches, r.Stock, product, *in.ToStoreID, nil, in.Quantity, now); err != nil {
				return err
			}
		default:
			return domain.BusinessErrorf(domain.ErrInvalidInput, "tipo de movimiento desconocido: %s", in.MovementType)
		}

		var errRec error
		mov, errRec = uc.recorder.Record(r.Movements, RecordInput{
			Type:          in.MovementType,
			Reason:        in.Reason,
			ProductID:     in.ProductID,
			BatchID:       in.BatchID,
			FromStoreID:   in.FromStoreID,
			ToStoreID:     in.ToStoreID,
			Quantity:      in.Quantity,
			ReferenceID:   refID,
			ReferenceType: entity.ReferenceTypeAdjustment,
			UserID:        userID,
			Notes:         in.Notes,
		}, now)
		return errRec
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// DeleteMovement borra un movimiento de auditoría. Solo se permiten los de
// razón ADJUSTMENT; el resto del historial es inmutable. No revierte stock:
// el borrado es una corrección del registro, no una compensación.
func (uc *RegisterMovementUseCase) DeleteMovement(ctx context.Context, id string) error {
	mov, err := uc.movements.GetByID(id)
	if err != nil {
		return err
	}
	if mov == nil {
		return domain.BusinessErrorf(domain.ErrNotFound, "movimiento %s no encontrado", id)
	}
	if mov.Reason != entity.MovementReasonAdjustment {
		return domain.NewBusinessError(domain.ErrInvalidOperation,
			"solo los movimientos ADJUSTMENT pueden borrarse",
			"razón del movimiento: "+mov.Reason)
	}
	return uc.movements.Delete(id)
}

// ListByProduct devuelve el historial de movimientos de un producto.
func (uc *RegisterMovementUseCase) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return uc.movements.ListByProduct(productID, from, to, limit, offset)
}
