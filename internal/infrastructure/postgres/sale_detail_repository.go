package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.SaleDetailRepository = (*SaleDetailRepo)(nil)

// SaleDetailRepo implementación del puerto SaleDetailRepository sobre PostgreSQL (usable con pool o tx).
type SaleDetailRepo struct {
	q Querier
}

// NewSaleDetailRepository construye el adaptador de líneas de venta. Pasar pool o tx (Querier).
func NewSaleDetailRepository(q Querier) *SaleDetailRepo {
	return &SaleDetailRepo{q: q}
}

const saleDetailColumns = `id, sale_id, product_id, batch_id, quantity, unit_price, subtotal, created_at, updated_at`

// Create persiste una nueva línea.
func (r *SaleDetailRepo) Create(detail *entity.SaleDetail) error {
	query := `
		INSERT INTO sale_details (` + saleDetailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.SaleID, detail.ProductID, detail.BatchID,
		detail.Quantity, detail.UnitPrice, detail.Subtotal, detail.CreatedAt, detail.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale detail: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *SaleDetailRepo) GetByID(id string) (*entity.SaleDetail, error) {
	query := `SELECT ` + saleDetailColumns + ` FROM sale_details WHERE id = $1`
	var d entity.SaleDetail
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.SaleID, &d.ProductID, &d.BatchID, &d.Quantity, &d.UnitPrice, &d.Subtotal,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale detail: %w", err)
	}
	return &d, nil
}

// Update persiste cantidad, lote, precio y subtotal de la línea.
func (r *SaleDetailRepo) Update(detail *entity.SaleDetail) error {
	query := `
		UPDATE sale_details
		SET batch_id = $2, quantity = $3, unit_price = $4, subtotal = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.BatchID, detail.Quantity, detail.UnitPrice, detail.Subtotal, detail.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale detail: %w", err)
	}
	return nil
}

// Delete borra una línea por ID.
func (r *SaleDetailRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sale_details WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale detail: %w", err)
	}
	return nil
}

// ListBySale lista las líneas de una venta en orden de creación.
func (r *SaleDetailRepo) ListBySale(saleID string) ([]*entity.SaleDetail, error) {
	query := `SELECT ` + saleDetailColumns + ` FROM sale_details WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale details: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleDetail
	for rows.Next() {
		var d entity.SaleDetail
		if err := rows.Scan(&d.ID, &d.SaleID, &d.ProductID, &d.BatchID, &d.Quantity,
			&d.UnitPrice, &d.Subtotal, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
