package http

import (
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// Conversores entidad -> DTO compartidos por los handlers.

func saleToResponse(s *entity.Sale, details []*entity.SaleDetail) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:                 s.ID,
		SaleNumber:         s.SaleNumber,
		SaleType:           s.SaleType,
		StoreID:            s.StoreID,
		ClientID:           s.ClientID,
		UserID:             s.UserID,
		SaleDate:           s.SaleDate,
		DiscountPercentage: s.DiscountPercentage,
		TaxPercentage:      s.TaxPercentage,
		Subtotal:           s.Subtotal,
		DiscountAmount:     s.DiscountAmount,
		TaxAmount:          s.TaxAmount,
		TotalAmount:        s.TotalAmount,
		IsInvoiced:         s.IsInvoiced,
	}
	for _, d := range details {
		out.Details = append(out.Details, detailToResponse(d))
	}
	return out
}

func detailToResponse(d *entity.SaleDetail) dto.SaleDetailResponse {
	return dto.SaleDetailResponse{
		ID:        d.ID,
		SaleID:    d.SaleID,
		ProductID: d.ProductID,
		BatchID:   d.BatchID,
		Quantity:  d.Quantity,
		UnitPrice: d.UnitPrice,
		Subtotal:  d.Subtotal,
	}
}

func movementToResponse(m *entity.InventoryMovement) dto.MovementResponse {
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

func receiptToResponse(r *entity.Receipt) dto.ReceiptResponse {
	return dto.ReceiptResponse{
		ID:             r.ID,
		ReceiptNumber:  r.ReceiptNumber,
		SaleID:         r.SaleID,
		StoreID:        r.StoreID,
		Status:         r.Status,
		IsPrinted:      r.IsPrinted,
		PrintCount:     r.PrintCount,
		Subtotal:       r.Subtotal,
		DiscountAmount: r.DiscountAmount,
		TaxAmount:      r.TaxAmount,
		TotalAmount:    r.TotalAmount,
		PaymentMethod:  r.PaymentMethod,
		Notes:          r.Notes,
		IssuedBy:       r.IssuedBy,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
