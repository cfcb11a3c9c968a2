package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// StoreRepository define el puerto de persistencia para tiendas.
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	List(limit, offset int) ([]*entity.Store, error)
}
