package inventory

import (
	"context"

	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// InventoryUseCase catálogo de categorías y productos.
type InventoryUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *InventoryUseCase {
	return &InventoryUseCase{categoryRepo: categoryRepo, productRepo: productRepo}
}

// ListCategories lista todas las categorías ordenadas por nombre.
func (uc *InventoryUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToCategoryResponses(cats), nil
}

func (uc *InventoryUseCase) CreateCategory(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	cat := &entity.Category{Name: in.Name}
	if err := uc.categoryRepo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(cat), nil
}

func (uc *InventoryUseCase) UpdateCategory(ctx context.Context, id int64, in dto.CategoryRequest) error {
	if in.Name == "" {
		return domain.ErrInvalidInput
	}
	return uc.categoryRepo.Update(ctx, &entity.Category{ID: id, Name: in.Name})
}

// DeleteCategory borra la categoría físicamente. Los productos que la referencian
// conservan el category_id y se listan con categoría nula.
func (uc *InventoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	return uc.categoryRepo.Delete(ctx, id)
}

// ListProducts lista los productos activos con el nombre de su categoría.
func (uc *InventoryUseCase) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	views, err := uc.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponses(views), nil
}

// GetProduct obtiene un producto por ID, esté activo o no.
func (uc *InventoryUseCase) GetProduct(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	view, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToProductResponse(view), nil
}

// CreateProduct crea un producto activo. category_id no se valida.
func (uc *InventoryUseCase) CreateProduct(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	p.Status = entity.StatusActive
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	view, err := uc.productRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		view = &entity.ProductView{Product: *p}
	}
	return dto.ToProductResponse(view), nil
}

// UpdateProduct sobrescribe todos los campos editables, min_stock incluido.
func (uc *InventoryUseCase) UpdateProduct(ctx context.Context, id int64, in dto.ProductRequest) error {
	p, err := productFromRequest(in)
	if err != nil {
		return err
	}
	p.ID = id
	return uc.productRepo.Update(ctx, p)
}

// DeleteProduct da de baja lógica al producto.
func (uc *InventoryUseCase) DeleteProduct(ctx context.Context, id int64) error {
	return uc.productRepo.SoftDelete(ctx, id)
}

func productFromRequest(in dto.ProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	return &entity.Product{
		Code:       in.Code,
		Name:       in.Name,
		CategoryID: in.CategoryID,
		Price:      in.Price,
		Cost:       in.Cost,
		Stock:      in.Stock,
		MinStock:   in.MinStock,
		Unit:       in.Unit,
		ImageURL:   in.ImageURL,
	}, nil
}
