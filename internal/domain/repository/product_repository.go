package repository

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.ProductView, error)
	ListActive(ctx context.Context) ([]*entity.ProductView, error)
	Update(ctx context.Context, product *entity.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
