package entity

import "time"

// Store representa una tienda o sucursal del punto de venta.
type Store struct {
	ID        int64
	Name      string
	Code      *string
	Address   *string
	Status    Status
	CreatedAt *time.Time
}
