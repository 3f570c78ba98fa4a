package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

const userColumns = `
	users.id, users.email, users.password_hash, users.role_id, roles.role_name,
	users.reset_password_token, users.reset_password_expires, users.created_at, users.updated_at
`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (id, email, password_hash, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.RoleID,
	)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users JOIN roles ON users.role_id = roles.id
		WHERE users.email = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users JOIN roles ON users.role_id = roles.id
		WHERE users.id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users JOIN roles ON users.role_id = roles.id
		WHERE users.reset_password_token = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, token))
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users JOIN roles ON users.role_id = roles.id
		ORDER BY users.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateEmail(ctx context.Context, id string, email string) error {
	const query = `UPDATE users SET email = $2, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, query, id, email)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, roleID string) error {
	const query = `UPDATE users SET role_id = $2, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, query, id, roleID)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash []byte) error {
	const query = `
		UPDATE users
		SET password_hash = $2, reset_password_token = NULL, reset_password_expires = NULL, updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, query, id, passwordHash)
}

func (r *UserRepository) SetResetToken(ctx context.Context, id string, token string, expires time.Time) error {
	const query = `
		UPDATE users
		SET reset_password_token = $2, reset_password_expires = $3, updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, query, id, token, expires)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM users WHERE id = $1`
	return r.exec(ctx, query, id)
}

func (r *UserRepository) exec(ctx context.Context, query string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.RoleID,
		&user.RoleName,
		&user.ResetPasswordToken,
		&user.ResetPasswordExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
