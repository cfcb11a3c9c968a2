// Package reports arma reportes de solo lectura sobre el historial de
// movimientos de inventario.
package reports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// TraceabilityUseCase reconstruye el kardex de un lote a partir de su historial
// de movimientos: los movimientos son la fuente de verdad, no la cantidad
// actual del lote.
type TraceabilityUseCase struct {
	batches   repository.ProductBatchRepository
	movements repository.InventoryMovementRepository
}

// NewTraceabilityUseCase construye el caso de uso.
func NewTraceabilityUseCase(
	batches repository.ProductBatchRepository,
	movements repository.InventoryMovementRepository,
) *TraceabilityUseCase {
	return &TraceabilityUseCase{batches: batches, movements: movements}
}

// BatchKardex devuelve los movimientos del lote en orden cronológico con el
// saldo acumulado tras cada uno. IN suma, OUT resta y TRANSFER es neutro para
// el lote (cambia de tienda, no de cantidad). El saldo se acumula sobre el
// historial completo y la paginación se aplica después: con offset > 0 cada
// entrada conserva el saldo real que el lote tenía en ese punto.
func (uc *TraceabilityUseCase) BatchKardex(ctx context.Context, batchID string, limit, offset int) ([]dto.KardexEntry, error) {
	batch, err := uc.batches.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.BusinessErrorf(domain.ErrNotFound, "lote %s no encontrado", batchID)
	}

	movements, err := uc.movements.ListByBatch(batchID, 0, 0)
	if err != nil {
		return nil, err
	}

	balance := decimal.Zero
	entries := make([]dto.KardexEntry, 0, len(movements))
	for _, m := range movements {
		switch m.Type {
		case entity.MovementTypeIN:
			balance = balance.Add(m.Quantity)
		case entity.MovementTypeOUT:
			balance = balance.Sub(m.Quantity)
		}
		entries = append(entries, dto.KardexEntry{
			Movement: toMovementResponse(m),
			Balance:  balance,
		})
	}
	return pageOf(entries, limit, offset), nil
}

func pageOf(entries []dto.KardexEntry, limit, offset int) []dto.KardexEntry {
	if offset >= len(entries) {
		return nil
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		Type:          m.Type,
		Reason:        m.Reason,
		ProductID:     m.ProductID,
		BatchID:       m.BatchID,
		FromStoreID:   m.FromStoreID,
		ToStoreID:     m.ToStoreID,
		Quantity:      m.Quantity,
		ReferenceID:   m.ReferenceID,
		ReferenceType: m.ReferenceType,
		UserID:        m.UserID,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
	}
}
