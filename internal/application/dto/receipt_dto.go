package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IssueReceiptRequest emisión de recibo para una venta.
type IssueReceiptRequest struct {
	SaleID        string `json:"sale_id"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

// UpdateReceiptRequest edición guardada: solo mientras el recibo esté ACTIVE y
// sin imprimir.
type UpdateReceiptRequest struct {
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

// ReceiptResponse recibo con snapshot monetario de la venta.
type ReceiptResponse struct {
	ID             string          `json:"id"`
	ReceiptNumber  string          `json:"receipt_number"`
	SaleID         string          `json:"sale_id"`
	StoreID        string          `json:"store_id"`
	Status         string          `json:"status"`
	IsPrinted      bool            `json:"is_printed"`
	PrintCount     int             `json:"print_count"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	IssuedBy       string          `json:"issued_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// GenerateNumberResponse respuesta de GET /api/receipts/generate-number/:storeId.
type GenerateNumberResponse struct {
	ReceiptNumber string `json:"receiptNumber"`
}
