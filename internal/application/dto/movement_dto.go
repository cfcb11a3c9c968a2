package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest cuerpo de POST /api/inventory/movements.
// Para IN solo to_store_id; para OUT solo from_store_id; para TRANSFER ambos.
type RegisterMovementRequest struct {
	MovementType string          `json:"movement_type"` // IN | OUT | TRANSFER
	Reason       string          `json:"reason"`
	ProductID    string          `json:"product_id"`
	BatchID      *string         `json:"batch_id,omitempty"`
	FromStoreID  *string         `json:"from_store_id,omitempty"`
	ToStoreID    *string         `json:"to_store_id,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Notes        string          `json:"notes"`
}

// MovementResponse movimiento registrado.
type MovementResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Reason        string          `json:"reason"`
	ProductID     string          `json:"product_id"`
	BatchID       *string         `json:"batch_id,omitempty"`
	FromStoreID   *string         `json:"from_store_id,omitempty"`
	ToStoreID     *string         `json:"to_store_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceID   string          `json:"reference_id"`
	ReferenceType string          `json:"reference_type"`
	UserID        string          `json:"user_id"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// KardexEntry movimiento con saldo acumulado del lote (trazabilidad).
type KardexEntry struct {
	Movement MovementResponse `json:"movement"`
	Balance  decimal.Decimal  `json:"balance"`
}
