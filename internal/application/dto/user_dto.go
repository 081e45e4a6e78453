package dto

import (
	"time"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// CreateUserRequest entrada del alta básica (auth): usuario activo sin rol.
type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=1,max=100"`
	Password string  `json:"password" validate:"required"`
	Email    *string `json:"email"`
}

// CreateStaffUserRequest entrada para crear personal de tienda con rol VENDEDOR o GERENTE.
type CreateStaffUserRequest struct {
	Username  string  `json:"username" validate:"required,min=1,max=100"`
	Password  string  `json:"password" validate:"required"`
	Role      string  `json:"role" validate:"required,oneof=VENDEDOR GERENTE"`
	RoleLabel *string `json:"role_label"`
	Email     *string `json:"email"`
	StoreID   *int64  `json:"store_id"`
}

// UpdateUserRequest sobrescribe cargo, email y tienda (campos ausentes quedan en NULL).
type UpdateUserRequest struct {
	RoleLabel *string `json:"role_label"`
	Email     *string `json:"email"`
	StoreID   *int64  `json:"store_id"`
}

// AssignRoleRequest entrada para asignar un rol formal.
type AssignRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	RoleLabel *string    `json:"role_label"`
	Email     *string    `json:"email"`
	StoreID   *int64     `json:"store_id"`
	Status    string     `json:"status"`
	Roles     []string   `json:"roles"`
	CreatedAt *time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// VerifyPasswordRequest entrada para re-verificar la contraseña del operador autenticado.
type VerifyPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// VerifyPasswordResponse resultado de la verificación.
type VerifyPasswordResponse struct {
	Valid bool `json:"valid"`
}

// ToUserResponse mapea la entidad a su salida pública; nunca copia PasswordHash.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		RoleLabel: u.RoleLabel,
		Email:     u.Email,
		StoreID:   u.StoreID,
		Status:    string(u.Status),
		Roles:     roles,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses mapea una lista de usuarios.
func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *ToUserResponse(u))
	}
	return out
}
