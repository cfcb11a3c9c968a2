package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN       = "IN"       // entrada
	MovementTypeOUT      = "OUT"      // salida
	MovementTypeTRANSFER = "TRANSFER" // traslado entre tiendas
)

// Razones de movimiento.
const (
	MovementReasonProduction = "PRODUCTION"
	MovementReasonSale       = "SALE"
	MovementReasonTransfer   = "TRANSFER"
	MovementReasonAdjustment = "ADJUSTMENT" // requiere Notes; único tipo borrable
	MovementReasonDamage     = "DAMAGE"     // requiere Notes
	MovementReasonExpired    = "EXPIRED"
)

// Tipos de referencia (entidad que causó el movimiento).
const (
	ReferenceTypeSale       = "SALE"
	ReferenceTypeAdjustment = "ADJUSTMENT"
	ReferenceTypeTransfer   = "TRANSFER"
	ReferenceTypeBatch      = "BATCH"
)

// InventoryMovement es un hecho de auditoría append-only: cada débito o crédito
// del ledger emite exactamente un movimiento en la misma transacción. Es la
// fuente de verdad del reporte de trazabilidad por lote. Nunca se actualiza;
// solo los registros con Reason=ADJUSTMENT pueden borrarse, y solo por un operador.
type InventoryMovement struct {
	ID            string
	Type          string // IN | OUT | TRANSFER
	Reason        string
	ProductID     string
	BatchID       *string
	FromStoreID   *string // requerido para OUT y TRANSFER
	ToStoreID     *string // requerido para IN y TRANSFER
	Quantity      decimal.Decimal // siempre positiva; el signo lo da Type
	ReferenceID   string
	ReferenceType string
	UserID        string
	Notes         string // obligatorio para ADJUSTMENT y DAMAGE
	CreatedAt     time.Time
}
