package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/internal/domain/validation"
)

// ProductUseCase aplica reglas de negocio para el catálogo de productos.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso con los puertos de persistencia.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

// Create valida precios positivos y unicidad de código, y persiste el producto.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.NotBlank(in.Code, "código"); err != nil {
		return nil, err
	}
	if err := validation.NotBlank(in.Name, "nombre"); err != nil {
		return nil, err
	}
	if err := validation.PositivePrice(in.RetailPrice); err != nil {
		return nil, err
	}
	if err := validation.PositivePrice(in.WholesalePrice); err != nil {
		return nil, err
	}
	if err := validation.NonNegativeAmount(in.ProductionCost, "costo de producción"); err != nil {
		return nil, err
	}
	if in.CategoryID != "" {
		category, err := uc.categories.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.BusinessErrorf(domain.ErrNotFound, "categoría %s no encontrada", in.CategoryID)
		}
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewBusinessError(domain.ErrDuplicate,
			"ya existe un producto con ese código", "código: "+in.Code)
	}

	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		CategoryID:     in.CategoryID,
		Code:           in.Code,
		Barcode:        in.Barcode,
		Name:           in.Name,
		Description:    in.Description,
		RetailPrice:    in.RetailPrice,
		WholesalePrice: in.WholesalePrice,
		ProductionCost: in.ProductionCost,
		MinStockLevel:  in.MinStockLevel,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.BusinessErrorf(domain.ErrNotFound, "producto %s no encontrado", id)
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos mutables del producto. Code y barcode son
// inmutables: el request no los trae.
func (uc *ProductUseCase) Update(id string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.BusinessErrorf(domain.ErrNotFound, "producto %s no encontrado", id)
	}
	if err := validation.PositivePrice(in.RetailPrice); err != nil {
		return nil, err
	}
	if err := validation.PositivePrice(in.WholesalePrice); err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.Description = in.Description
	product.RetailPrice = in.RetailPrice
	product.WholesalePrice = in.WholesalePrice
	product.ProductionCost = in.ProductionCost
	product.MinStockLevel = in.MinStockLevel
	if in.CategoryID != "" {
		product.CategoryID = in.CategoryID
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) ([]*dto.ProductResponse, error) {
	products, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Code:           p.Code,
		Barcode:        p.Barcode,
		Name:           p.Name,
		Description:    p.Description,
		RetailPrice:    p.RetailPrice,
		WholesalePrice: p.WholesalePrice,
		ProductionCost: p.ProductionCost,
		MinStockLevel:  p.MinStockLevel,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
