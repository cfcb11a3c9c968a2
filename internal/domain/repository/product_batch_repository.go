package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// ProductBatchRepository define el puerto de persistencia para lotes.
// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar débitos
// concurrentes contra el mismo lote.
type ProductBatchRepository interface {
	Create(batch *entity.ProductBatch) error
	GetByID(id string) (*entity.ProductBatch, error)
	GetByIDForUpdate(id string) (*entity.ProductBatch, error)
	GetByCode(code string) (*entity.ProductBatch, error)
	UpdateQuantity(id string, currentQuantity decimal.Decimal) error
	ListByProduct(productID string, limit, offset int) ([]*entity.ProductBatch, error)
	Delete(id string) error
}
