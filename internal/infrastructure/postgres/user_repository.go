package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/portal-intranet/internal/domain"
	"github.com/jhoicas/portal-intranet/internal/domain/entity"
	"github.com/jhoicas/portal-intranet/internal/domain/permission"
	"github.com/jhoicas/portal-intranet/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Los roles se leen de user_roles (app NULL = rol sin aplicación).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, password_hash, name, position, status, mfa_secret, mfa_enabled, created_at, updated_at`

// GetByID obtiene un usuario por ID con sus roles.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas) con sus roles.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) LIMIT 1`, email)
}

// UpdateMFA guarda el secreto TOTP cifrado y el estado de la verificación en dos pasos.
func (r *UserRepo) UpdateMFA(ctx context.Context, userID, secret string, enabled bool) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET mfa_secret = $2, mfa_enabled = $3, updated_at = now() WHERE id = $1`,
		userID, secret, enabled,
	)
	if err != nil {
		return fmt.Errorf("update user mfa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Position, &u.Status,
		&u.MFASecret, &u.MFAEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	roles, err := r.roles(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return &u, nil
}

func (r *UserRepo) roles(ctx context.Context, userID string) ([]permission.Role, error) {
	rows, err := r.q.Query(ctx,
		`SELECT role, COALESCE(app, '') FROM user_roles WHERE user_id = $1 ORDER BY app NULLS FIRST, role`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list user roles: %w", err)
	}
	defer rows.Close()
	var list []permission.Role
	for rows.Next() {
		var name, app string
		if err := rows.Scan(&name, &app); err != nil {
			return nil, fmt.Errorf("scan user role: %w", err)
		}
		list = append(list, permission.NewRole(name, app))
	}
	return list, rows.Err()
}
