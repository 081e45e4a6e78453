package repository

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas sin resultado devuelven (nil, nil).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
	ListActive(ctx context.Context) ([]*entity.User, error)
	ListActiveByStore(ctx context.Context, storeID int64) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SoftDelete(ctx context.Context, id int64) error
}
