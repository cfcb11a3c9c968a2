package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/internal/domain/validation"
)

// MovementRecorder escribe el registro de auditoría append-only de cada cambio
// de stock. Cada débito/crédito del ledger debe emparejarse con exactamente un
// movimiento en la misma transacción: los movimientos son la fuente de verdad
// del reporte de trazabilidad.
type MovementRecorder struct{}

// RecordInput datos para registrar un movimiento.
type RecordInput struct {
	Type          string // IN | OUT | TRANSFER
	Reason        string
	ProductID     string
	BatchID       *string
	FromStoreID   *string
	ToStoreID     *string
	Quantity      decimal.Decimal
	ReferenceID   string
	ReferenceType string
	UserID        string
	Notes         string
}

// Record valida la combinación tipo/tiendas y las notas obligatorias, y
// persiste el movimiento. Para TRANSFER se exigen origen y destino distintos;
// para IN solo destino; para OUT solo origen.
func (MovementRecorder) Record(
	movements repository.InventoryMovementRepository,
	in RecordInput,
	now time.Time,
) (*entity.InventoryMovement, error) {
	if err := validation.PositiveQuantity(in.Quantity); err != nil {
		return nil, err
	}
	if err := validation.RequiredNotes(in.Reason, in.Notes); err != nil {
		return nil, err
	}

	switch in.Type {
	case entity.MovementTypeIN:
		if in.ToStoreID == nil {
			return nil, domain.NewBusinessError(domain.ErrInvalidInput,
				"un movimiento IN requiere tienda destino")
		}
	case entity.MovementTypeOUT:
		if in.FromStoreID == nil {
			return nil, domain.NewBusinessError(domain.ErrInvalidInput,
				"un movimiento OUT requiere tienda origen")
		}
	case entity.MovementTypeTRANSFER:
		if in.FromStoreID == nil || in.ToStoreID == nil {
			return nil, domain.NewBusinessError(domain.ErrInvalidInput,
				"un TRANSFER requiere tienda origen y destino")
		}
		if *in.FromStoreID == *in.ToStoreID {
			return nil, domain.NewBusinessError(domain.ErrInvalidInput,
				"origen y destino de un TRANSFER deben ser distintos")
		}
	default:
		return nil, domain.BusinessErrorf(domain.ErrInvalidInput,
			"tipo de movimiento desconocido: %s", in.Type)
	}

	mov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		Type:          in.Type,
		Reason:        in.Reason,
		ProductID:     in.ProductID,
		BatchID:       in.BatchID,
		FromStoreID:   in.FromStoreID,
		ToStoreID:     in.ToStoreID,
		Quantity:      in.Quantity,
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
		UserID:        in.UserID,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	if err := movements.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
