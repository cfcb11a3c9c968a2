package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/application/reports"
)

// InventoryHandler maneja movimientos de inventario y trazabilidad (protegido).
type InventoryHandler struct {
	uc           *inventory.RegisterMovementUseCase
	traceability *reports.TraceabilityUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, traceability *reports.TraceabilityUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, traceability: traceability}
}

// RegisterMovement registra un movimiento manual (POST /api/inventory/movements).
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	mov, err := h.uc.RegisterMovement(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementToResponse(mov))
}

// ListByProduct devuelve el historial de un producto
// (GET /api/inventory/movements?product_id=...&from=...&to=...).
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return badRequest(c, "product_id es requerido")
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()

	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return badRequest(c, "from debe ser RFC3339")
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return badRequest(c, "to debe ser RFC3339")
		}
		to = &t
	}

	movements, err := h.uc.ListByProduct(c.Context(), productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, movementToResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// DeleteMovement borra un movimiento ADJUSTMENT (DELETE /api/inventory/movements/:id).
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	if err := h.uc.DeleteMovement(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "movimiento eliminado"})
}

// BatchKardex devuelve el kardex de un lote (GET /api/inventory/batches/:id/kardex).
func (h *InventoryHandler) BatchKardex(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()
	entries, err := h.traceability.BatchKardex(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "kardex": entries})
}
