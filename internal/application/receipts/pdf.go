package receipts

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// ReceiptLine línea renderizable del recibo.
type ReceiptLine struct {
	ProductCode string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptDocument datos completos para la representación imprimible.
type ReceiptDocument struct {
	Receipt *entity.Receipt
	Sale    *entity.Sale
	Store   *entity.Store
	Lines   []ReceiptLine
}

// PDFGenerator puerto de generación del PDF del recibo.
type PDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, doc *ReceiptDocument) ([]byte, error)
}

// PDFUseCase arma el documento del recibo (recibo + venta + líneas + tienda) y
// delega el render al generador.
type PDFUseCase struct {
	receipts    repository.ReceiptRepository
	sales       repository.SaleRepository
	saleDetails repository.SaleDetailRepository
	products    repository.ProductRepository
	stores      repository.StoreRepository
	generator   PDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	receipts repository.ReceiptRepository,
	sales repository.SaleRepository,
	saleDetails repository.SaleDetailRepository,
	products repository.ProductRepository,
	stores repository.StoreRepository,
	generator PDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		receipts:    receipts,
		sales:       sales,
		saleDetails: saleDetails,
		products:    products,
		stores:      stores,
		generator:   generator,
	}
}

// Render genera el PDF del recibo. Devuelve los bytes y un nombre de archivo
// sugerido.
func (uc *PDFUseCase) Render(ctx context.Context, receiptID string) ([]byte, string, error) {
	receipt, err := uc.receipts.GetByID(receiptID)
	if err != nil {
		return nil, "", err
	}
	if receipt == nil {
		return nil, "", domain.BusinessErrorf(domain.ErrNotFound, "recibo %s no encontrado", receiptID)
	}
	sale, err := uc.sales.GetByID(receipt.SaleID)
	if err != nil {
		return nil, "", err
	}
	if sale == nil {
		return nil, "", domain.BusinessErrorf(domain.ErrNotFound, "venta %s no encontrada", receipt.SaleID)
	}
	store, err := uc.stores.GetByID(receipt.StoreID)
	if err != nil {
		return nil, "", err
	}
	if store == nil {
		return nil, "", domain.BusinessErrorf(domain.ErrNotFound, "tienda %s no encontrada", receipt.StoreID)
	}
	details, err := uc.saleDetails.ListBySale(sale.ID)
	if err != nil {
		return nil, "", err
	}

	lines := make([]ReceiptLine, 0, len(details))
	for _, d := range details {
		product, err := uc.products.GetByID(d.ProductID)
		if err != nil {
			return nil, "", err
		}
		line := ReceiptLine{
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal,
		}
		if product != nil {
			line.ProductCode = product.Code
			line.ProductName = product.Name
		}
		lines = append(lines, line)
	}

	pdf, err := uc.generator.GenerateReceiptPDF(ctx, &ReceiptDocument{
		Receipt: receipt,
		Sale:    sale,
		Store:   store,
		Lines:   lines,
	})
	if err != nil {
		return nil, "", err
	}
	return pdf, receipt.ReceiptNumber + ".pdf", nil
}
