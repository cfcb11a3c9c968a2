package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// SaleDetailRepository define el puerto de persistencia para líneas de venta.
type SaleDetailRepository interface {
	Create(detail *entity.SaleDetail) error
	GetByID(id string) (*entity.SaleDetail, error)
	Update(detail *entity.SaleDetail) error
	Delete(id string) error
	ListBySale(saleID string) ([]*entity.SaleDetail, error)
}
