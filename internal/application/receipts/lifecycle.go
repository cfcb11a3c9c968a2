package receipts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// ReceiptUseCase implementa la máquina de estados del recibo: emisión (una por
// venta, 1:1), impresión (contador monotónico), cancelación (terminal) y
// edición/borrado guardados. La emisión congela la venta (IsInvoiced) y copia
// sus totales vigentes en la misma transacción.
type ReceiptUseCase struct {
	txRunner inventory.TxRunner
	receipts repository.ReceiptRepository
	stores   repository.StoreRepository
	users    repository.UserRepository
}

// NewReceiptUseCase construye el caso de uso de recibos.
func NewReceiptUseCase(
	txRunner inventory.TxRunner,
	receipts repository.ReceiptRepository,
	stores repository.StoreRepository,
	users repository.UserRepository,
) *ReceiptUseCase {
	return &ReceiptUseCase{txRunner: txRunner, receipts: receipts, stores: stores, users: users}
}

// Issue emite el recibo de una venta. Precondiciones: la venta existe y tiene
// al menos una línea; no tiene ya un recibo (verificado explícitamente antes
// del insert, además del constraint único); el usuario existe. El recibo toma
// la tienda de la venta y un snapshot de sus totales.
func (uc *ReceiptUseCase) Issue(ctx context.Context, userID string, in dto.IssueReceiptRequest) (*entity.Receipt, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	var receipt *entity.Receipt

	err = uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		sale, err := r.Sales.GetByIDForUpdate(in.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.BusinessErrorf(domain.ErrNotFound, "venta %s no encontrada", in.SaleID)
		}
		details, err := r.SaleDetails.ListBySale(sale.ID)
		if err != nil {
			return err
		}
		if len(details) == 0 {
			return domain.NewBusinessError(domain.ErrInvalidInput,
				"la venta no tiene líneas; no puede emitirse recibo",
				"venta: "+sale.SaleNumber)
		}
		existing, err := r.Receipts.GetBySaleID(sale.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewBusinessError(domain.ErrDuplicate,
				"la venta ya tiene un recibo emitido",
				"venta: "+sale.SaleNumber,
				"recibo: "+existing.ReceiptNumber)
		}

		store, err := uc.stores.GetByID(sale.StoreID)
		if err != nil {
			return err
		}
		if store == nil {
			return domain.BusinessErrorf(domain.ErrNotFound, "tienda %s no encontrada", sale.StoreID)
		}

		receipt = &entity.Receipt{
			ID:             uuid.New().String(),
			ReceiptNumber:  GenerateNumber(store.Name, now),
			SaleID:         sale.ID,
			StoreID:        sale.StoreID,
			Status:         entity.ReceiptStatusActive,
			Subtotal:       sale.Subtotal,
			DiscountAmount: sale.DiscountAmount,
			TaxAmount:      sale.TaxAmount,
			TotalAmount:    sale.TotalAmount,
			PaymentMethod:  in.PaymentMethod,
			Notes:          in.Notes,
			IssuedBy:       userID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := r.Receipts.Create(receipt); err != nil {
			return err
		}

		sale.IsInvoiced = true
		sale.UpdatedAt = now
		return r.Sales.Update(sale)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// Get devuelve un recibo por ID.
func (uc *ReceiptUseCase) Get(ctx context.Context, id string) (*entity.Receipt, error) {
	receipt, err := uc.receipts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.BusinessErrorf(domain.ErrNotFound, "recibo %s no encontrado", id)
	}
	return receipt, nil
}

// Update edita método de pago y notas. Solo se permite mientras el recibo esté
// ACTIVE y sin imprimir; en cualquier otro estado la edición se rechaza.
// Ejecuta en transacción con la fila bloqueada: la verificación del guard y la
// escritura no pueden intercalarse con una impresión o cancelación concurrente.
func (uc *ReceiptUseCase) Update(ctx context.Context, id string, in dto.UpdateReceiptRequest) (*entity.Receipt, error) {
	var receipt *entity.Receipt
	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		var err error
		receipt, err = uc.lockReceipt(r, id)
		if err != nil {
			return err
		}
		if !receipt.CanMutate() {
			return mutationRejected(receipt)
		}
		receipt.PaymentMethod = in.PaymentMethod
		receipt.Notes = in.Notes
		receipt.UpdatedAt = time.Now()
		return r.Receipts.Update(receipt)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// Cancel transiciona ACTIVE -> CANCELLED (terminal). Conserva todos los demás
// campos; no hay borrado físico para recibos impresos. La fila queda bloqueada
// durante la verificación del estado.
func (uc *ReceiptUseCase) Cancel(ctx context.Context, id string) (*entity.Receipt, error) {
	var receipt *entity.Receipt
	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		var err error
		receipt, err = uc.lockReceipt(r, id)
		if err != nil {
			return err
		}
		if receipt.Status != entity.ReceiptStatusActive {
			return domain.NewBusinessError(domain.ErrInvalidOperation,
				"solo un recibo ACTIVE puede cancelarse",
				"estado actual: "+receipt.Status)
		}
		receipt.Status = entity.ReceiptStatusCancelled
		receipt.UpdatedAt = time.Now()
		return r.Receipts.Update(receipt)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// Print registra una impresión: incrementa PrintCount y marca IsPrinted.
// Se permite cualquier número de veces mientras el recibo esté ACTIVE. El
// incremento lee y escribe con la fila bloqueada, de modo que n impresiones
// concurrentes dejan PrintCount exactamente en +n.
func (uc *ReceiptUseCase) Print(ctx context.Context, id string) (*entity.Receipt, error) {
	var receipt *entity.Receipt
	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		var err error
		receipt, err = uc.lockReceipt(r, id)
		if err != nil {
			return err
		}
		if receipt.Status != entity.ReceiptStatusActive {
			return domain.NewBusinessError(domain.ErrInvalidOperation,
				"solo un recibo ACTIVE puede imprimirse",
				"estado actual: "+receipt.Status)
		}
		receipt.PrintCount++
		receipt.IsPrinted = true
		receipt.UpdatedAt = time.Now()
		return r.Receipts.Update(receipt)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// Delete borra un recibo aún mutable (ACTIVE y sin imprimir) y descongela la
// venta en la misma transacción.
func (uc *ReceiptUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		receipt, err := uc.lockReceipt(r, id)
		if err != nil {
			return err
		}
		if !receipt.CanMutate() {
			return mutationRejected(receipt)
		}
		sale, err := r.Sales.GetByIDForUpdate(receipt.SaleID)
		if err != nil {
			return err
		}
		if err := r.Receipts.Delete(receipt.ID); err != nil {
			return err
		}
		if sale != nil {
			sale.IsInvoiced = false
			sale.UpdatedAt = time.Now()
			return r.Sales.Update(sale)
		}
		return nil
	})
}

// NumberForStore genera un número de recibo con el reloj actual para la tienda
// indicada (GET /api/receipts/generate-number/:storeId).
func (uc *ReceiptUseCase) NumberForStore(ctx context.Context, storeID string) (string, error) {
	store, err := uc.stores.GetByID(storeID)
	if err != nil {
		return "", err
	}
	if store == nil {
		return "", domain.BusinessErrorf(domain.ErrNotFound, "tienda %s no encontrada", storeID)
	}
	return GenerateNumber(store.Name, time.Now()), nil
}

// lockReceipt carga el recibo con la fila bloqueada dentro de la tx.
func (uc *ReceiptUseCase) lockReceipt(r inventory.TxRepos, id string) (*entity.Receipt, error) {
	receipt, err := r.Receipts.GetByIDForUpdate(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.BusinessErrorf(domain.ErrNotFound, "recibo %s no encontrado", id)
	}
	return receipt, nil
}

func mutationRejected(receipt *entity.Receipt) error {
	details := []string{"estado: " + receipt.Status}
	if receipt.IsPrinted {
		details = append(details, "el recibo ya fue impreso")
	}
	return domain.NewBusinessError(domain.ErrInvalidOperation,
		"el recibo no admite edición ni borrado", details...)
}
