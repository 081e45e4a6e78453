package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de persistencia para tiendas.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una nueva tienda activa y completa ID, Status y CreatedAt.
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	query := `
		INSERT INTO stores (name, code, address, is_active)
		VALUES ($1, $2, $3, 1)
		RETURNING id, is_active, created_at`
	var flag int16
	if err := r.q.QueryRow(ctx, query, store.Name, store.Code, store.Address).
		Scan(&store.ID, &flag, &store.CreatedAt); err != nil {
		return domain.NewStorageError("insert store", err)
	}
	store.Status = entity.StatusFromFlag(flag)
	return nil
}

// GetByID obtiene una tienda por ID sin filtrar por estado.
func (r *StoreRepo) GetByID(ctx context.Context, id int64) (*entity.Store, error) {
	query := `
		SELECT id, name, code, address, is_active, created_at
		FROM stores WHERE id = $1`
	s, err := scanStore(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError("get store", err)
	}
	return s, nil
}

// ListActive lista las tiendas activas.
func (r *StoreRepo) ListActive(ctx context.Context) ([]*entity.Store, error) {
	query := `
		SELECT id, name, code, address, is_active, created_at
		FROM stores WHERE is_active = 1 ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, domain.NewStorageError("list stores", err)
	}
	defer rows.Close()
	list := make([]*entity.Store, 0)
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, domain.NewStorageError("scan store", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list stores", err)
	}
	return list, nil
}

// Update sobrescribe nombre, código y dirección. Un ID inexistente no es error.
func (r *StoreRepo) Update(ctx context.Context, store *entity.Store) error {
	_, err := r.q.Exec(ctx,
		`UPDATE stores SET name = $2, code = $3, address = $4 WHERE id = $1`,
		store.ID, store.Name, store.Code, store.Address,
	)
	if err != nil {
		return domain.NewStorageError("update store", err)
	}
	return nil
}

// SoftDelete marca la tienda como inactiva.
func (r *StoreRepo) SoftDelete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `UPDATE stores SET is_active = 0 WHERE id = $1`, id); err != nil {
		return domain.NewStorageError("soft delete store", err)
	}
	return nil
}

func scanStore(row scanner) (*entity.Store, error) {
	var s entity.Store
	var flag int16
	if err := row.Scan(&s.ID, &s.Name, &s.Code, &s.Address, &flag, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Status = entity.StatusFromFlag(flag)
	return &s, nil
}
