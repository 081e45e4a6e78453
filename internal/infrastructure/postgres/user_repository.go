package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, password_hash, cargo, email, store_id, is_active, created_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y completa ID, Status y CreatedAt con lo asignado por la DB.
// Una violación del índice único de username se traduce a domain.ErrDuplicateUsername.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	status := user.Status
	if status == "" {
		status = entity.StatusActive
	}
	query := `
		INSERT INTO users (username, password_hash, cargo, email, store_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at`
	var flag int16
	err := r.q.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.RoleLabel, user.Email, user.StoreID, status.Flag(),
	).Scan(&user.ID, &flag, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateUsername
		}
		return domain.NewStorageError("insert user", err)
	}
	user.Status = entity.StatusFromFlag(flag)
	return nil
}

// GetByID obtiene un usuario por ID sin filtrar por estado.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError("get user by id", err)
	}
	return u, nil
}

// GetByUsername obtiene un usuario por username, activo o no.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError("get user by username", err)
	}
	return u, nil
}

// Count devuelve el total de usuarios, activos o no.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, domain.NewStorageError("count users", err)
	}
	return n, nil
}

// ListActive lista los usuarios activos.
func (r *UserRepo) ListActive(ctx context.Context) ([]*entity.User, error) {
	return r.list(ctx, "list users",
		`SELECT `+userColumns+` FROM users WHERE is_active = 1 ORDER BY id`)
}

// ListActiveByStore lista los usuarios activos asignados a una tienda.
func (r *UserRepo) ListActiveByStore(ctx context.Context, storeID int64) ([]*entity.User, error) {
	return r.list(ctx, "list users by store",
		`SELECT `+userColumns+` FROM users WHERE store_id = $1 AND is_active = 1 ORDER BY id`, storeID)
}

// Update sobrescribe cargo, email y tienda. No verifica que el ID exista.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	_, err := r.q.Exec(ctx,
		`UPDATE users SET cargo = $2, email = $3, store_id = $4 WHERE id = $1`,
		user.ID, user.RoleLabel, user.Email, user.StoreID,
	)
	if err != nil {
		return domain.NewStorageError("update user", err)
	}
	return nil
}

// SoftDelete marca el usuario como inactivo; la fila se conserva.
func (r *UserRepo) SoftDelete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `UPDATE users SET is_active = 0 WHERE id = $1`, id); err != nil {
		return domain.NewStorageError("soft delete user", err)
	}
	return nil
}

func (r *UserRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, domain.NewStorageError("scan user", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	return list, nil
}

func scanUser(row scanner) (*entity.User, error) {
	var u entity.User
	var flag int16
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.RoleLabel, &u.Email, &u.StoreID, &flag, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Status = entity.StatusFromFlag(flag)
	return &u, nil
}
