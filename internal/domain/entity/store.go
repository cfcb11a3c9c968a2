package entity

import "time"

// Store representa una tienda o punto de venta.
type Store struct {
	ID        string
	Code      string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
