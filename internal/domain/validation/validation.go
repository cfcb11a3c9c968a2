// Package validation centraliza las precondiciones de negocio que consultan
// todos los componentes del motor de ventas e inventario: cantidades y precios
// positivos, rangos de porcentaje, orden de fechas, lote no vencido, stock
// suficiente y notas obligatorias. Cada verificación devuelve un
// domain.BusinessError con la categoría correspondiente.
package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// PositiveQuantity exige quantity > 0.
func PositiveQuantity(quantity decimal.Decimal) error {
	if !quantity.GreaterThan(decimal.Zero) {
		return domain.NewBusinessError(domain.ErrInvalidInput,
			"la cantidad debe ser mayor que cero",
			"cantidad recibida: "+quantity.String())
	}
	return nil
}

// PositivePrice exige price > 0.
func PositivePrice(price decimal.Decimal) error {
	if !price.GreaterThan(decimal.Zero) {
		return domain.NewBusinessError(domain.ErrInvalidInput,
			"el precio debe ser mayor que cero",
			"precio recibido: "+price.String())
	}
	return nil
}

// NonNegativeAmount exige amount >= 0 (descuentos planos, costos).
func NonNegativeAmount(amount decimal.Decimal, field string) error {
	if amount.LessThan(decimal.Zero) {
		return domain.NewBusinessError(domain.ErrInvalidInput,
			"el monto no puede ser negativo",
			field+": "+amount.String())
	}
	return nil
}

// PercentageRange exige 0 <= pct <= 100.
func PercentageRange(pct decimal.Decimal, field string) error {
	if pct.LessThan(decimal.Zero) || pct.GreaterThan(decimal.NewFromInt(100)) {
		return domain.NewBusinessError(domain.ErrInvalidInput,
			"el porcentaje debe estar entre 0 y 100",
			field+": "+pct.String())
	}
	return nil
}

// NotBlank exige que el campo no esté vacío ni sea solo espacios.
func NotBlank(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewBusinessError(domain.ErrInvalidInput,
			"el campo "+field+" es obligatorio")
	}
	return nil
}

// DateOrder exige que production no sea posterior a expiration.
func DateOrder(production, expiration time.Time) error {
	if production.After(expiration) {
		return domain.NewBusinessError(domain.ErrInvalidInput,
			"la fecha de producción no puede ser posterior al vencimiento",
			"producción: "+production.Format("2006-01-02"),
			"vencimiento: "+expiration.Format("2006-01-02"))
	}
	return nil
}

// BatchNotExpired rechaza débitos contra lotes vencidos, sin importar la
// cantidad disponible.
func BatchNotExpired(batch *entity.ProductBatch, today time.Time) error {
	if batch.IsExpired(today) {
		return domain.NewBusinessError(domain.ErrExpiredBatch,
			"el lote está vencido",
			"lote: "+batch.BatchCode,
			"vencimiento: "+batch.ExpirationDate.Format("2006-01-02"))
	}
	return nil
}

// BatchBelongsToProduct exige que el lote pertenezca al producto debitado.
func BatchBelongsToProduct(batch *entity.ProductBatch, productID string) error {
	if batch.ProductID != productID {
		return domain.NewBusinessError(domain.ErrInvalidInput,
			"el lote no pertenece al producto",
			"lote: "+batch.BatchCode,
			"producto: "+productID)
	}
	return nil
}

// SufficientStock exige available >= requested y reporta ambos valores.
func SufficientStock(available, requested decimal.Decimal, resource string) error {
	if available.LessThan(requested) {
		return domain.NewBusinessError(domain.ErrInsufficientStock,
			"stock insuficiente en "+resource,
			"disponible: "+available.String(),
			"solicitado: "+requested.String())
	}
	return nil
}

// RequiredNotes exige notas no vacías para las razones ADJUSTMENT y DAMAGE.
func RequiredNotes(reason, notes string) error {
	if reason != entity.MovementReasonAdjustment && reason != entity.MovementReasonDamage {
		return nil
	}
	if strings.TrimSpace(notes) == "" {
		return domain.NewBusinessError(domain.ErrInvalidInput,
			"los movimientos "+reason+" requieren notas que expliquen el cambio")
	}
	return nil
}

// CreditWithinInitial rechaza créditos que dejarían CurrentQuantity por encima
// de InitialQuantity (decisión de frontera: la compensación no puede superar lo
// producido en el lote).
func CreditWithinInitial(batch *entity.ProductBatch, credit decimal.Decimal) error {
	if batch.CurrentQuantity.Add(credit).GreaterThan(batch.InitialQuantity) {
		return domain.NewBusinessError(domain.ErrInvalidInput,
			"el crédito supera la cantidad inicial del lote",
			"lote: "+batch.BatchCode,
			"actual: "+batch.CurrentQuantity.String(),
			"crédito: "+credit.String(),
			"inicial: "+batch.InitialQuantity.String())
	}
	return nil
}
