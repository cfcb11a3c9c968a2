package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de venta. El tipo determina de qué precio del producto se toma el
// precio unitario de cada línea.
const (
	SaleTypeRetail    = "RETAIL"
	SaleTypeWholesale = "WHOLESALE"
)

// Sale representa la cabecera de una venta. Subtotal, DiscountAmount, TaxAmount
// y TotalAmount son derivados: los recalcula el motor de totales cada vez que
// cambian las líneas. IsInvoiced congela la venta (se activa al emitir recibo).
type Sale struct {
	ID                 string
	SaleNumber         string
	SaleType           string // RETAIL | WHOLESALE
	StoreID            string
	ClientID           string
	UserID             string
	SaleDate           time.Time
	DiscountPercentage decimal.Decimal // si > 0 tiene prioridad sobre DiscountAmount plano
	TaxPercentage      decimal.Decimal
	Subtotal           decimal.Decimal
	DiscountAmount     decimal.Decimal
	TaxAmount          decimal.Decimal
	TotalAmount        decimal.Decimal
	IsInvoiced         bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
