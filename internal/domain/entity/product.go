package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo. Code y Barcode son únicos e
// inmutables; el stock se maneja por tienda en ProductStore y por lote en
// ProductBatch.
type Product struct {
	ID             string
	CategoryID     string
	Code           string
	Barcode        string
	Name           string
	Description    string
	RetailPrice    decimal.Decimal
	WholesalePrice decimal.Decimal
	ProductionCost decimal.Decimal
	MinStockLevel  decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PriceForSaleType devuelve el precio unitario según el tipo de venta:
// RETAIL usa RetailPrice y WHOLESALE usa WholesalePrice.
func (p *Product) PriceForSaleType(saleType string) decimal.Decimal {
	if saleType == SaleTypeWholesale {
		return p.WholesalePrice
	}
	return p.RetailPrice
}
