package entity

// Category categoría de productos. Se elimina físicamente; los productos conservan la referencia.
type Category struct {
	ID   int64
	Name string
}
