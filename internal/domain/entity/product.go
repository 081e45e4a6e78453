package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo vendible. Stock puede ser negativo: este núcleo no impone piso.
type Product struct {
	ID         int64
	Code       *string
	Name       string
	CategoryID *int64 // sin validación contra categories
	Price      decimal.Decimal
	Cost       decimal.Decimal
	Stock      int64
	MinStock   *int64
	Unit       *string
	ImageURL   *string
	Status     Status
	CreatedAt  *time.Time
}

// ProductView proyección de lectura: producto + nombre de su categoría (nil si no existe).
type ProductView struct {
	Product
	CategoryName *string
}

// LowStock indica si el stock está en o por debajo del mínimo configurado.
func (p *Product) LowStock() bool {
	return p.MinStock != nil && p.Stock <= *p.MinStock
}
