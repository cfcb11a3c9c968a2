package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleDetail representa una línea de venta. UnitPrice se resuelve del precio
// vigente del producto (según Sale.SaleType) en cada guardado: si el precio del
// producto cambia entre la creación y una actualización posterior, el subtotal
// recalculado cambia con él.
type SaleDetail struct {
	ID        string
	SaleID    string
	ProductID string
	BatchID   *string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal // Quantity * UnitPrice
	CreatedAt time.Time
	UpdatedAt time.Time
}
