package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductBatch representa un lote de producción de un producto, con fecha de
// vencimiento y cantidad finita. Invariante: 0 <= CurrentQuantity <= InitialQuantity.
// Un lote vencido (ExpirationDate < hoy) no puede debitarse.
type ProductBatch struct {
	ID              string
	ProductID       string
	BatchCode       string
	ProductionDate  time.Time
	ExpirationDate  time.Time
	InitialQuantity decimal.Decimal
	CurrentQuantity decimal.Decimal
	StoreID         *string // tienda de origen (opcional)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsExpired indica si el lote está vencido respecto a la fecha dada
// (comparación por día calendario, no por hora).
func (b *ProductBatch) IsExpired(today time.Time) bool {
	y1, m1, d1 := b.ExpirationDate.Date()
	y2, m2, d2 := today.Date()
	exp := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	day := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return exp.Before(day)
}
