package auth

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// LoadRoles completa Roles de cada usuario con los nombres asignados en user_roles.
func LoadRoles(ctx context.Context, roleRepo repository.RoleRepository, users []*entity.User) error {
	for _, u := range users {
		roles, err := roleRepo.ListNamesByUser(ctx, u.ID)
		if err != nil {
			return err
		}
		u.Roles = roles
	}
	return nil
}

// ListActiveUsers lista los usuarios activos con sus roles.
func ListActiveUsers(ctx context.Context, userRepo repository.UserRepository, roleRepo repository.RoleRepository) ([]*entity.User, error) {
	users, err := userRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if err := LoadRoles(ctx, roleRepo, users); err != nil {
		return nil, err
	}
	return users, nil
}
