package repository

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para roles y su asignación a usuarios.
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	// Create inserta el rol; si el nombre ya existe completa role.ID con el existente.
	Create(ctx context.Context, role *entity.Role) error
	// Assign es idempotente: asignar un rol ya asignado no es error.
	Assign(ctx context.Context, userID, roleID int64) error
	ListNamesByUser(ctx context.Context, userID int64) ([]string, error)
}
