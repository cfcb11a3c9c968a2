package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// Totals montos derivados de una venta.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

// ComputeTotals deriva los totales desde las líneas vigentes.
// Política documentada: si DiscountPercentage > 0 tiene prioridad sobre el
// descuento plano. Los porcentajes se calculan con 4 decimales intermedios y
// los montos persistidos se redondean half-up a 2 decimales.
func ComputeTotals(details []*entity.SaleDetail, discountPct, flatDiscount, taxPct decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, d := range details {
		subtotal = subtotal.Add(d.Subtotal)
	}

	discount := flatDiscount
	if discountPct.GreaterThan(decimal.Zero) {
		discount = subtotal.Mul(discountPct).Div(hundred).Round(4)
	}

	tax := subtotal.Sub(discount).Mul(taxPct).Div(hundred).Round(4)
	total := subtotal.Sub(discount).Add(tax)

	return Totals{
		Subtotal:       subtotal.Round(2),
		DiscountAmount: discount.Round(2),
		TaxAmount:      tax.Round(2),
		TotalAmount:    total.Round(2),
	}
}

// TotalsRecalculator recomputa y persiste los totales de una venta a partir de
// sus líneas actuales. Es idempotente: dos llamadas consecutivas sin cambios en
// las líneas producen los mismos totales.
type TotalsRecalculator struct{}

// Recalculate carga las líneas vigentes de la venta, deriva los totales y
// actualiza la cabecera. Debe invocarse con repositorios atados a la misma
// transacción que mutó las líneas.
func (TotalsRecalculator) Recalculate(
	sales repository.SaleRepository,
	details repository.SaleDetailRepository,
	sale *entity.Sale,
	now time.Time,
) error {
	lines, err := details.ListBySale(sale.ID)
	if err != nil {
		return err
	}
	t := ComputeTotals(lines, sale.DiscountPercentage, sale.DiscountAmount, sale.TaxPercentage)
	sale.Subtotal = t.Subtotal
	sale.DiscountAmount = t.DiscountAmount
	sale.TaxAmount = t.TaxAmount
	sale.TotalAmount = t.TotalAmount
	sale.UpdatedAt = now
	return sales.Update(sale)
}
