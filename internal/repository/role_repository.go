package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

var ErrRoleNotFound = errors.New("role not found")

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func (r *RoleRepository) FindByName(ctx context.Context, name models.RoleName) (models.Role, error) {
	const query = `SELECT id, role_name FROM roles WHERE role_name = $1`

	var role models.Role
	if err := r.pool.QueryRow(ctx, query, name).Scan(&role.ID, &role.RoleName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Role{}, ErrRoleNotFound
		}
		return models.Role{}, err
	}
	return role, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]models.Role, error) {
	const query = `SELECT id, role_name FROM roles ORDER BY role_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.RoleName); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
