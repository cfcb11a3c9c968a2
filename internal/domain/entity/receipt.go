package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de recibo.
const (
	ReceiptStatusActive    = "ACTIVE"
	ReceiptStatusCancelled = "CANCELLED"
	ReceiptStatusRefunded  = "REFUNDED"
)

// Receipt es el documento de liquidación emitido exactamente una vez por venta
// (1:1). Los montos son un snapshot de la venta al momento de la emisión.
// Un recibo impreso o no-ACTIVE no admite edición ni borrado; la cancelación es
// terminal y conserva todos los demás campos.
type Receipt struct {
	ID             string
	ReceiptNumber  string // REC-<PREFIJO3>-<yyyyMMdd>-<HHmmss>
	SaleID         string
	StoreID        string
	Status         string // ACTIVE | CANCELLED | REFUNDED
	IsPrinted      bool
	PrintCount     int // monotónico
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentMethod  string
	Notes          string
	IssuedBy       string // UserID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanMutate indica si el recibo admite edición o borrado: solo mientras esté
// ACTIVE y no se haya impreso.
func (r *Receipt) CanMutate() bool {
	return r.Status == ReceiptStatusActive && !r.IsPrinted
}
