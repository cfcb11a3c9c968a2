package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest cabecera de venta. Los totales arrancan en cero y los
// deriva la recalculadora a medida que se agregan líneas.
type CreateSaleRequest struct {
	SaleNumber         string          `json:"sale_number"` // opcional; se genera si viene vacío
	SaleType           string          `json:"sale_type"`   // RETAIL | WHOLESALE
	StoreID            string          `json:"store_id"`
	ClientID           string          `json:"client_id"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	TaxPercentage      decimal.Decimal `json:"tax_percentage"`
}

// SaleResponse cabecera con totales derivados.
type SaleResponse struct {
	ID                 string          `json:"id"`
	SaleNumber         string          `json:"sale_number"`
	SaleType           string          `json:"sale_type"`
	StoreID            string          `json:"store_id"`
	ClientID           string          `json:"client_id"`
	UserID             string          `json:"user_id"`
	SaleDate           time.Time       `json:"sale_date"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	TaxPercentage      decimal.Decimal `json:"tax_percentage"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	IsInvoiced         bool            `json:"is_invoiced"`
	Details            []SaleDetailResponse `json:"details,omitempty"`
}

// SaleDetailRequest cuerpo de POST/PUT de líneas de venta.
type SaleDetailRequest struct {
	SaleID    string          `json:"sale_id"`
	ProductID string          `json:"product_id"`
	BatchID   *string         `json:"batch_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// SaleDetailResponse línea con su subtotal.
type SaleDetailResponse struct {
	ID        string          `json:"id"`
	SaleID    string          `json:"sale_id"`
	ProductID string          `json:"product_id"`
	BatchID   *string         `json:"batch_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleDetailWithTotals línea recomputada más los totales vigentes de la venta.
type SaleDetailWithTotals struct {
	Detail SaleDetailResponse `json:"detail"`
	Sale   SaleResponse       `json:"sale"`
}
