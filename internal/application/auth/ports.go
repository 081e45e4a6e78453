package auth

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error nada de lo escrito dentro de la transacción queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		roleRepo repository.RoleRepository,
	) error) error
}

// PasswordHasher capacidad opaca de hash de contraseñas (bcrypt o argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}
