package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL (usable con pool o tx).
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de roles. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// GetByName obtiene un rol por nombre.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, `SELECT id, role_name FROM roles WHERE role_name = $1`, name).
		Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError("get role by name", err)
	}
	return &role, nil
}

// Create persiste un rol y completa su ID. Si otra transacción ya lo insertó devuelve el ID existente,
// de modo que dos altas concurrentes del mismo rol no fallan por el índice único.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO roles (role_name)
		VALUES ($1)
		ON CONFLICT (role_name)
		DO UPDATE SET role_name = EXCLUDED.role_name
		RETURNING id`, role.Name).
		Scan(&role.ID)
	if err != nil {
		return domain.NewStorageError("insert role", err)
	}
	return nil
}

// Assign inserta la relación usuario-rol; si ya existe no hace nada.
func (r *RoleRepo) Assign(ctx context.Context, userID, roleID int64) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT (user_id, role_id) DO NOTHING`,
		userID, roleID,
	)
	if err != nil {
		return domain.NewStorageError("assign role", err)
	}
	return nil
}

// ListNamesByUser devuelve los nombres de los roles asignados al usuario, ordenados.
func (r *RoleRepo) ListNamesByUser(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ro.role_name
		FROM user_roles ur
		JOIN roles ro ON ro.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY ro.role_name`, userID)
	if err != nil {
		return nil, domain.NewStorageError("list user roles", err)
	}
	defer rows.Close()
	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, domain.NewStorageError("scan role", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list user roles", err)
	}
	return names, nil
}
