package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// SaleRepository define el puerto de persistencia para cabeceras de venta.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	GetByIDForUpdate(id string) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	Delete(id string) error
}
