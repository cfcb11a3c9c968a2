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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, sale_number, sale_type, store_id, client_id, user_id, sale_date,
		discount_percentage, tax_percentage, subtotal, discount_amount, tax_amount, total_amount,
		is_invoiced, created_at, updated_at`

// Create persiste una nueva cabecera de venta. SaleNumber lleva constraint único.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleNumber, sale.SaleType, sale.StoreID, sale.ClientID, sale.UserID,
		sale.SaleDate, sale.DiscountPercentage, sale.TaxPercentage, sale.Subtotal,
		sale.DiscountAmount, sale.TaxAmount, sale.TotalAmount, sale.IsInvoiced,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene una venta y bloquea la fila (SELECT FOR UPDATE) para
// serializar la mutación de líneas y la emisión del recibo.
func (r *SaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update persiste la cabecera completa (incluye los totales derivados).
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales
		SET sale_type = $2, discount_percentage = $3, tax_percentage = $4, subtotal = $5,
		    discount_amount = $6, tax_amount = $7, total_amount = $8, is_invoiced = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleType, sale.DiscountPercentage, sale.TaxPercentage, sale.Subtotal,
		sale.DiscountAmount, sale.TaxAmount, sale.TotalAmount, sale.IsInvoiced, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// Delete borra una venta por ID.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) scanOne(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.SaleNumber, &s.SaleType, &s.StoreID, &s.ClientID, &s.UserID,
		&s.SaleDate, &s.DiscountPercentage, &s.TaxPercentage, &s.Subtotal,
		&s.DiscountAmount, &s.TaxAmount, &s.TotalAmount, &s.IsInvoiced,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}
