package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación del puerto ReceiptRepository sobre PostgreSQL (usable con pool o tx).
// receipt_number y sale_id llevan constraint único.
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador de recibos. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

const receiptColumns = `id, receipt_number, sale_id, store_id, status, is_printed, print_count,
		subtotal, discount_amount, tax_amount, total_amount, payment_method, notes, issued_by,
		created_at, updated_at`

// Create persiste un nuevo recibo. Una violación del constraint único (número o
// venta repetidos) se traduce a ErrDuplicate.
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.ReceiptNumber, receipt.SaleID, receipt.StoreID, receipt.Status,
		receipt.IsPrinted, receipt.PrintCount, receipt.Subtotal, receipt.DiscountAmount,
		receipt.TaxAmount, receipt.TotalAmount, receipt.PaymentMethod, receipt.Notes,
		receipt.IssuedBy, receipt.CreatedAt, receipt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// GetByID obtiene un recibo por ID.
func (r *ReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene un recibo bloqueando la fila (SELECT FOR UPDATE).
// Debe invocarse dentro de una transacción: serializa impresiones y
// cancelaciones concurrentes del mismo recibo.
func (r *ReceiptRepo) GetByIDForUpdate(id string) (*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetBySaleID obtiene el recibo de una venta (relación 1:1).
func (r *ReceiptRepo) GetBySaleID(saleID string) (*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE sale_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, saleID))
}

// Update persiste estado, impresión, método de pago y notas.
func (r *ReceiptRepo) Update(receipt *entity.Receipt) error {
	query := `
		UPDATE receipts
		SET status = $2, is_printed = $3, print_count = $4, payment_method = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.Status, receipt.IsPrinted, receipt.PrintCount,
		receipt.PaymentMethod, receipt.Notes, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update receipt: %w", err)
	}
	return nil
}

// Delete borra un recibo por ID.
func (r *ReceiptRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	return nil
}

func (r *ReceiptRepo) scanOne(row pgx.Row) (*entity.Receipt, error) {
	var rec entity.Receipt
	err := row.Scan(&rec.ID, &rec.ReceiptNumber, &rec.SaleID, &rec.StoreID, &rec.Status,
		&rec.IsPrinted, &rec.PrintCount, &rec.Subtotal, &rec.DiscountAmount, &rec.TaxAmount,
		&rec.TotalAmount, &rec.PaymentMethod, &rec.Notes, &rec.IssuedBy,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return &rec, nil
}
