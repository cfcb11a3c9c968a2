package inventory

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Todo lo que se escriba a través de ellos se confirma o descarta junto.
type TxRepos struct {
	Movements   repository.InventoryMovementRepository
	Batches     repository.ProductBatchRepository
	Stock       repository.ProductStoreRepository
	Sales       repository.SaleRepository
	SaleDetails repository.SaleDetailRepository
	Receipts    repository.ReceiptRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// ventas e inventario: Ledger + Movimiento + Recalculadora comprometen juntos
// o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
