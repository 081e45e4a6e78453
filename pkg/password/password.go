// Package password implementa el hash de contraseñas (bcrypt o argon2id).
// La verificación detecta el algoritmo por el prefijo del hash, de modo que cambiar
// AUTH_HASHER no invalida las contraseñas ya guardadas.
package password

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidHash el hash guardado no tiene un formato reconocible.
var ErrInvalidHash = errors.New("invalid hash format")

// Hasher capacidad opaca de hash usada por los casos de uso de auth.
type Hasher interface {
	Hash(password string) (string, error)
	// Verify devuelve (false, nil) si la contraseña no coincide y error solo si el hash es ilegible.
	Verify(password, encodedHash string) (bool, error)
}

// New construye el hasher configurado: "bcrypt" (por defecto) o "argon2id".
func New(kind string, bcryptCost int) (Hasher, error) {
	switch strings.ToLower(kind) {
	case "", "bcrypt":
		return NewBcrypt(bcryptCost), nil
	case "argon2id":
		return NewArgon2(nil), nil
	default:
		return nil, fmt.Errorf("password: hasher desconocido %q", kind)
	}
}

// Verify comprueba password contra un hash bcrypt o argon2id.
func Verify(password, encodedHash string) (bool, error) {
	switch {
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		return verifyArgon2(password, encodedHash)
	case strings.HasPrefix(encodedHash, "$2a$"),
		strings.HasPrefix(encodedHash, "$2b$"),
		strings.HasPrefix(encodedHash, "$2y$"):
		return verifyBcrypt(password, encodedHash)
	default:
		return false, ErrInvalidHash
	}
}
