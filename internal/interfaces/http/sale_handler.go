package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/sales"
)

// SaleHandler maneja cabeceras de venta (protegido).
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler de ventas.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create crea la cabecera con totales en cero (POST /api/sales).
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	sale, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saleToResponse(sale, nil))
}

// GetByID devuelve la venta con sus líneas (GET /api/sales/:id).
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, details, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(saleToResponse(sale, details))
}

// Delete borra una venta no facturada, devolviendo la reserva de cada línea
// (DELETE /api/sales/:id).
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if err := h.uc.Delete(c.Context(), userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta eliminada"})
}
