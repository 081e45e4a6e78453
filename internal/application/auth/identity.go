package auth

import "github.com/jhoicas/pos-core/pkg/jwt"

// Identity operador autenticado, tal como viaja en el JWT de sesión.
type Identity struct {
	UserID   int64
	Username string
	Roles    []string
}

// HasRole indica si la identidad tiene el rol formal name.
func (i Identity) HasRole(name string) bool {
	for _, r := range i.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// IdentityFromClaims construye la identidad a partir de un token ya validado.
func IdentityFromClaims(c *jwt.Claims) Identity {
	return Identity{UserID: c.UserID, Username: c.Username, Roles: c.Roles}
}
