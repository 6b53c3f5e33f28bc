package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `
	u.id, u.username, u.password, u.full_name, u.email, r.name, p.name, p.level
	FROM users u
	JOIN roles r     ON r.id = u.role_id
	JOIN positions p ON p.id = u.position_id`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: pool}
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT`+userColumns+` WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get user by id", err)
	}
	return u, nil
}

// GetByUsername obtiene un usuario por username (login).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT`+userColumns+` WHERE u.username = $1`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get user by username", err)
	}
	return u, nil
}

// ListPotentialHosts anfitriones posibles: managers y employees, sin el propio usuario.
func (r *UserRepo) ListPotentialHosts(ctx context.Context, excludeID int64) ([]*entity.User, error) {
	query := `SELECT` + userColumns + `
		WHERE u.id <> $1 AND r.name IN ($2, $3)
		ORDER BY p.level, u.full_name`
	rows, err := r.db.Query(ctx, query, excludeID, entity.RoleManager, entity.RoleEmployee)
	if err != nil {
		return nil, wrapErr("list hosts", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapErr("scan user", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list hosts", err)
	}
	return list, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Email,
		&u.Role, &u.Position.Name, &u.Position.Level,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
