package entity

// Role rol formal; se crea bajo demanda (find-or-create) y nunca se elimina.
type Role struct {
	ID   int64
	Name string
}
