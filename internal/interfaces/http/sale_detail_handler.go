package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/sales"
)

// SaleDetailHandler maneja las líneas de venta (protegido). Toda mutación de
// línea devuelve además los totales vigentes de la venta.
type SaleDetailHandler struct {
	uc *sales.LineProcessor
}

// NewSaleDetailHandler construye el handler de líneas de venta.
func NewSaleDetailHandler(uc *sales.LineProcessor) *SaleDetailHandler {
	return &SaleDetailHandler{uc: uc}
}

// Create agrega una línea (POST /api/sale-details): descuenta stock, registra
// el movimiento OUT/SALE y recalcula los totales, todo atómico.
func (h *SaleDetailHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.SaleDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	detail, sale, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleDetailWithTotals{
		Detail: detailToResponse(detail),
		Sale:   saleToResponse(sale, nil),
	})
}

// Update recomputa una línea (PUT /api/sale-details/:id): aplica el delta de
// stock o el cambio de lote, re-resuelve el precio y recalcula totales.
func (h *SaleDetailHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.SaleDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	detail, sale, err := h.uc.Update(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SaleDetailWithTotals{
		Detail: detailToResponse(detail),
		Sale:   saleToResponse(sale, nil),
	})
}

// Delete elimina una línea (DELETE /api/sale-details/:id) devolviendo la
// reserva completa al inventario.
func (h *SaleDetailHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if err := h.uc.Delete(c.Context(), userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "línea eliminada"})
}
