package apptest

import "strings"

const hashPrefix = "plain$"

// Hasher doble de PasswordHasher: "hash" reversible y errores inyectables.
type Hasher struct {
	HashErr   error
	VerifyErr error
}

func (h *Hasher) Hash(password string) (string, error) {
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return hashPrefix + password, nil
}

func (h *Hasher) Verify(password, encodedHash string) (bool, error) {
	if h.VerifyErr != nil {
		return false, h.VerifyErr
	}
	return strings.TrimPrefix(encodedHash, hashPrefix) == password && strings.HasPrefix(encodedHash, hashPrefix), nil
}
