package dto

import (
	"time"

	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CategoryRequest entrada para crear o renombrar una categoría.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductRequest entrada para crear o sobrescribir un producto.
// Price y Cost no pueden ser negativos; CategoryID no se valida contra categories.
type ProductRequest struct {
	Code       *string         `json:"code"`
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID *int64          `json:"category_id"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Stock      int64           `json:"stock"`
	MinStock   *int64          `json:"min_stock"`
	Unit       *string         `json:"unit"`
	ImageURL   *string         `json:"image_url"`
}

// ProductResponse salida de un producto con el nombre de su categoría.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Code         *string         `json:"code"`
	Name         string          `json:"name"`
	CategoryID   *int64          `json:"category_id"`
	CategoryName *string         `json:"category_name"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Stock        int64           `json:"stock"`
	MinStock     *int64          `json:"min_stock"`
	LowStock     bool            `json:"low_stock"`
	Unit         *string         `json:"unit"`
	ImageURL     *string         `json:"image_url"`
	Status       string          `json:"status"`
	CreatedAt    *time.Time      `json:"created_at"`
}

func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{ID: c.ID, Name: c.Name}
}

func ToCategoryResponses(cats []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, *ToCategoryResponse(c))
	}
	return out
}

func ToProductResponse(v *entity.ProductView) *ProductResponse {
	if v == nil {
		return nil
	}
	return &ProductResponse{
		ID:           v.ID,
		Code:         v.Code,
		Name:         v.Name,
		CategoryID:   v.CategoryID,
		CategoryName: v.CategoryName,
		Price:        v.Price,
		Cost:         v.Cost,
		Stock:        v.Stock,
		MinStock:     v.MinStock,
		LowStock:     v.LowStock(),
		Unit:         v.Unit,
		ImageURL:     v.ImageURL,
		Status:       string(v.Status),
		CreatedAt:    v.CreatedAt,
	}
}

func ToProductResponses(views []*entity.ProductView) []ProductResponse {
	out := make([]ProductResponse, 0, len(views))
	for _, v := range views {
		out = append(out, *ToProductResponse(v))
	}
	return out
}
