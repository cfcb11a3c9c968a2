package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto de catálogo.
type CreateProductRequest struct {
	CategoryID     string          `json:"category_id"`
	Code           string          `json:"code"`
	Barcode        string          `json:"barcode"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	ProductionCost decimal.Decimal `json:"production_cost"`
	MinStockLevel  decimal.Decimal `json:"min_stock_level"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID             string          `json:"id"`
	CategoryID     string          `json:"category_id"`
	Code           string          `json:"code"`
	Barcode        string          `json:"barcode"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	ProductionCost decimal.Decimal `json:"production_cost"`
	MinStockLevel  decimal.Decimal `json:"min_stock_level"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateBatchRequest alta de lote de producción. La cantidad actual arranca
// igual a la inicial y se acredita al stock de la tienda en la misma
// transacción, con su movimiento IN/PRODUCTION.
type CreateBatchRequest struct {
	ProductID       string          `json:"product_id"`
	BatchCode       string          `json:"batch_code"`
	ProductionDate  time.Time       `json:"production_date"`
	ExpirationDate  time.Time       `json:"expiration_date"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	StoreID         string          `json:"store_id"`
}

// BatchResponse lote con cantidades.
type BatchResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	BatchCode       string          `json:"batch_code"`
	ProductionDate  time.Time       `json:"production_date"`
	ExpirationDate  time.Time       `json:"expiration_date"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	StoreID         *string         `json:"store_id,omitempty"`
}

// CreateStoreRequest alta de tienda.
type CreateStoreRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// StoreResponse tienda.
type StoreResponse struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// CreateClientRequest alta de cliente.
type CreateClientRequest struct {
	Document string `json:"document"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ClientResponse cliente.
type ClientResponse struct {
	ID       string `json:"id"`
	Document string `json:"document"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// CreateCategoryRequest alta de categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
