package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// LEFT JOIN: un producto con categoría inexistente sigue apareciendo con category_name NULL.
const productViewSelect = `
	SELECT p.id, p.code, p.name, p.category_id, c.name AS category_name,
	       p.price, p.cost, p.stock, p.min_stock, p.unit, p.image_url, p.is_active, p.created_at
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto activo. No valida CategoryID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (code, name, category_id, price, cost, stock, min_stock, unit, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
		RETURNING id, is_active, created_at`
	var flag int16
	err := r.q.QueryRow(ctx, query,
		product.Code, product.Name, product.CategoryID, product.Price, product.Cost,
		product.Stock, product.MinStock, product.Unit, product.ImageURL,
	).Scan(&product.ID, &flag, &product.CreatedAt)
	if err != nil {
		return domain.NewStorageError("insert product", err)
	}
	product.Status = entity.StatusFromFlag(flag)
	return nil
}

// GetByID obtiene un producto por ID sin filtrar por estado.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.ProductView, error) {
	p, err := scanProductView(r.q.QueryRow(ctx, productViewSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError("get product", err)
	}
	return p, nil
}

// ListActive lista los productos activos ordenados por nombre.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.ProductView, error) {
	rows, err := r.q.Query(ctx, productViewSelect+` WHERE p.is_active = 1 ORDER BY p.name ASC`)
	if err != nil {
		return nil, domain.NewStorageError("list products", err)
	}
	defer rows.Close()
	list := make([]*entity.ProductView, 0)
	for rows.Next() {
		p, err := scanProductView(rows)
		if err != nil {
			return nil, domain.NewStorageError("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list products", err)
	}
	return list, nil
}

// Update sobrescribe la fila completa (salvo estado y fecha de creación). Un ID inexistente no es error.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET code = $2, name = $3, category_id = $4, price = $5, cost = $6, stock = $7,
		    min_stock = $8, unit = $9, image_url = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Code, product.Name, product.CategoryID, product.Price, product.Cost,
		product.Stock, product.MinStock, product.Unit, product.ImageURL,
	)
	if err != nil {
		return domain.NewStorageError("update product", err)
	}
	return nil
}

// SoftDelete marca el producto como inactivo.
func (r *ProductRepo) SoftDelete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `UPDATE products SET is_active = 0 WHERE id = $1`, id); err != nil {
		return domain.NewStorageError("soft delete product", err)
	}
	return nil
}

func scanProductView(row scanner) (*entity.ProductView, error) {
	var p entity.ProductView
	var flag int16
	if err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.CategoryID, &p.CategoryName,
		&p.Price, &p.Cost, &p.Stock, &p.MinStock, &p.Unit, &p.ImageURL, &flag, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Status = entity.StatusFromFlag(flag)
	return &p, nil
}
