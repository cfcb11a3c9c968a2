package repository

import (
	"time"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos
// de inventario. Los movimientos son append-only: no hay Update; Delete solo lo
// invoca el caso de uso para registros con Reason=ADJUSTMENT.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByBatch(batchID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByReference(referenceID, referenceType string) ([]*entity.InventoryMovement, error)
	Delete(id string) error
}
