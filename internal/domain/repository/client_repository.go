package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// ClientRepository define el puerto de persistencia para clientes
// (dato de referencia de solo lectura para el motor de ventas).
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
}
