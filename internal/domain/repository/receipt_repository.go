package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// ReceiptRepository define el puerto de persistencia para recibos.
// ReceiptNumber y SaleID llevan constraint único: la unicidad se verifica
// explícitamente antes del insert y además la garantiza la base.
// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar
// impresiones, cancelaciones y ediciones concurrentes del mismo recibo.
type ReceiptRepository interface {
	Create(receipt *entity.Receipt) error
	GetByID(id string) (*entity.Receipt, error)
	GetByIDForUpdate(id string) (*entity.Receipt, error)
	GetBySaleID(saleID string) (*entity.Receipt, error)
	Update(receipt *entity.Receipt) error
	Delete(id string) error
}
