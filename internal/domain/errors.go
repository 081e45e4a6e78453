package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrDuplicateUsername  = errors.New("el nombre de usuario ya existe")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidRole        = errors.New("solo se permiten roles VENDEDOR o GERENTE")
	ErrHashing            = errors.New("error al procesar la contraseña")
	ErrAccountInactive    = errors.New("la cuenta está inactiva")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// StorageError envuelve cualquier fallo de la capa de datos conservando la causa original.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError construye un StorageError; devuelve nil si err es nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorageError informa si err (o alguno de sus envoltorios) es un StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// HashingError envuelve el fallo del algoritmo de hash; errors.Is(err, ErrHashing) es true.
func HashingError(err error) error {
	return fmt.Errorf("%w: %v", ErrHashing, err)
}
