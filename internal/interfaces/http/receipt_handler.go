package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/receipts"
)

// ReceiptHandler maneja el ciclo de vida de recibos (protegido).
type ReceiptHandler struct {
	uc  *receipts.ReceiptUseCase
	pdf *receipts.PDFUseCase
}

// NewReceiptHandler construye el handler de recibos.
func NewReceiptHandler(uc *receipts.ReceiptUseCase, pdf *receipts.PDFUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, pdf: pdf}
}

// Issue emite el recibo de una venta (POST /api/receipts). Congela la venta.
func (h *ReceiptHandler) Issue(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.IssueReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.SaleID == "" {
		return badRequest(c, "sale_id es requerido")
	}
	receipt, err := h.uc.Issue(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(receiptToResponse(receipt))
}

// GetByID devuelve un recibo (GET /api/receipts/:id).
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	receipt, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receiptToResponse(receipt))
}

// Update edita método de pago y notas (PUT /api/receipts/:id). Solo mientras
// el recibo esté ACTIVE y sin imprimir.
func (h *ReceiptHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	receipt, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receiptToResponse(receipt))
}

// Cancel transiciona el recibo a CANCELLED (POST /api/receipts/:id/cancel).
func (h *ReceiptHandler) Cancel(c *fiber.Ctx) error {
	receipt, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receiptToResponse(receipt))
}

// Print registra una impresión (POST /api/receipts/:id/print).
func (h *ReceiptHandler) Print(c *fiber.Ctx) error {
	receipt, err := h.uc.Print(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receiptToResponse(receipt))
}

// Delete borra un recibo aún mutable y descongela la venta (DELETE /api/receipts/:id).
func (h *ReceiptHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "recibo eliminado"})
}

// GenerateNumber genera un número con el reloj actual
// (GET /api/receipts/generate-number/:storeId).
func (h *ReceiptHandler) GenerateNumber(c *fiber.Ctx) error {
	number, err := h.uc.NumberForStore(c.Context(), c.Params("storeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.GenerateNumberResponse{ReceiptNumber: number})
}

// PDF genera la representación imprimible (GET /api/receipts/:id/pdf).
func (h *ReceiptHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.Render(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
