package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.ProductBatchRepository = (*ProductBatchRepo)(nil)

// ProductBatchRepo implementación del puerto ProductBatchRepository sobre PostgreSQL (usable con pool o tx).
type ProductBatchRepo struct {
	q Querier
}

// NewProductBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewProductBatchRepository(q Querier) *ProductBatchRepo {
	return &ProductBatchRepo{q: q}
}

const batchColumns = `id, product_id, batch_code, production_date, expiration_date, initial_quantity, current_quantity, store_id, created_at, updated_at`

// Create persiste un nuevo lote. BatchCode lleva constraint único por producto.
func (r *ProductBatchRepo) Create(batch *entity.ProductBatch) error {
	query := `
		INSERT INTO product_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ProductID, batch.BatchCode, batch.ProductionDate, batch.ExpirationDate,
		batch.InitialQuantity, batch.CurrentQuantity, batch.StoreID, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *ProductBatchRepo) GetByID(id string) (*entity.ProductBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM product_batches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene un lote y bloquea la fila (SELECT FOR UPDATE) para
// serializar débitos concurrentes contra el mismo lote.
func (r *ProductBatchRepo) GetByIDForUpdate(id string) (*entity.ProductBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM product_batches WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByCode obtiene un lote por su código.
func (r *ProductBatchRepo) GetByCode(code string) (*entity.ProductBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM product_batches WHERE batch_code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code))
}

// UpdateQuantity persiste la cantidad actual del lote.
func (r *ProductBatchRepo) UpdateQuantity(id string, currentQuantity decimal.Decimal) error {
	query := `UPDATE product_batches SET current_quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, currentQuantity)
	if err != nil {
		return fmt.Errorf("update batch quantity: %w", err)
	}
	return nil
}

// ListByProduct lista los lotes de un producto, más próximos a vencer primero.
func (r *ProductBatchRepo) ListByProduct(productID string, limit, offset int) ([]*entity.ProductBatch, error) {
	query := `
		SELECT ` + batchColumns + ` FROM product_batches
		WHERE product_id = $1 ORDER BY expiration_date ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductBatch
	for rows.Next() {
		var b entity.ProductBatch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.BatchCode, &b.ProductionDate, &b.ExpirationDate,
			&b.InitialQuantity, &b.CurrentQuantity, &b.StoreID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Delete borra un lote por ID.
func (r *ProductBatchRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

func (r *ProductBatchRepo) scanOne(row pgx.Row) (*entity.ProductBatch, error) {
	var b entity.ProductBatch
	err := row.Scan(&b.ID, &b.ProductID, &b.BatchCode, &b.ProductionDate, &b.ExpirationDate,
		&b.InitialQuantity, &b.CurrentQuantity, &b.StoreID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}
