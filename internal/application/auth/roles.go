package auth

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// EnsureRole busca el rol por nombre y lo crea si no existe.
func EnsureRole(ctx context.Context, roleRepo repository.RoleRepository, name string) (*entity.Role, error) {
	role, err := roleRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if role != nil {
		return role, nil
	}
	role = &entity.Role{Name: name}
	if err := roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// AssignRole garantiza que el rol exista y lo asigna al usuario. Repetir la asignación no es error.
func AssignRole(ctx context.Context, roleRepo repository.RoleRepository, userID int64, roleName string) error {
	role, err := EnsureRole(ctx, roleRepo, roleName)
	if err != nil {
		return err
	}
	return roleRepo.Assign(ctx, userID, role.ID)
}
