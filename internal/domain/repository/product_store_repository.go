package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// ProductStoreRepository define el puerto para el stock agregado por
// (producto, tienda). GetForUpdate bloquea la fila para serializar débitos
// concurrentes; Upsert persiste la cantidad resultante.
type ProductStoreRepository interface {
	Get(productID, storeID string) (*entity.ProductStore, error)
	GetForUpdate(productID, storeID string) (*entity.ProductStore, error)
	Upsert(ps *entity.ProductStore) error
}
