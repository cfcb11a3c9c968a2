package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.ProductStoreRepository = (*ProductStoreRepo)(nil)

// ProductStoreRepo implementación del stock por (producto, tienda) sobre PostgreSQL (usable con pool o tx).
type ProductStoreRepo struct {
	q Querier
}

// NewProductStoreRepository construye el adaptador de stock por tienda. Pasar pool o tx (Querier).
func NewProductStoreRepository(q Querier) *ProductStoreRepo {
	return &ProductStoreRepo{q: q}
}

const productStoreColumns = `id, product_id, store_id, current_stock, min_stock_level, updated_at`

// Get obtiene el stock de un producto en una tienda. Devuelve nil si no hay fila.
func (r *ProductStoreRepo) Get(productID, storeID string) (*entity.ProductStore, error) {
	query := `
		SELECT ` + productStoreColumns + `
		FROM product_stores WHERE product_id = $1 AND store_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, storeID))
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE) para
// serializar débitos concurrentes. Devuelve nil si no hay fila.
func (r *ProductStoreRepo) GetForUpdate(productID, storeID string) (*entity.ProductStore, error) {
	query := `
		SELECT ` + productStoreColumns + `
		FROM product_stores WHERE product_id = $1 AND store_id = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, storeID))
}

// Upsert inserta o actualiza la cantidad en stock (por producto y tienda).
func (r *ProductStoreRepo) Upsert(ps *entity.ProductStore) error {
	query := `
		INSERT INTO product_stores (id, product_id, store_id, current_stock, min_stock_level, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET current_stock = EXCLUDED.current_stock, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		ps.ID, ps.ProductID, ps.StoreID, ps.CurrentStock, ps.MinStockLevel)
	if err != nil {
		return fmt.Errorf("upsert product store: %w", err)
	}
	return nil
}

func (r *ProductStoreRepo) scanOne(row pgx.Row) (*entity.ProductStore, error) {
	var ps entity.ProductStore
	err := row.Scan(&ps.ID, &ps.ProductID, &ps.StoreID, &ps.CurrentStock, &ps.MinStockLevel, &ps.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product store: %w", err)
	}
	return &ps, nil
}
