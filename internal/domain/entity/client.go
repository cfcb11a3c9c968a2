package entity

import "time"

// Client representa un cliente de la venta (dato de referencia, solo lectura
// para el motor de ventas).
type Client struct {
	ID        string
	Document  string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
