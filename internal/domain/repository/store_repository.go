package repository

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id int64) (*entity.Store, error)
	ListActive(ctx context.Context) ([]*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	SoftDelete(ctx context.Context, id int64) error
}
