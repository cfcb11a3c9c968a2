package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStore representa el stock agregado de un producto en una tienda.
// Única por (ProductID, StoreID). Invariante: CurrentStock >= 0.
type ProductStore struct {
	ID            string
	ProductID     string
	StoreID       string
	CurrentStock  decimal.Decimal
	MinStockLevel decimal.Decimal
	UpdatedAt     time.Time
}
