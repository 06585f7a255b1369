package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// can run inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type CreateUserInput struct {
	Email    string
	Name     *string
	PhotoURL *string
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// CreateIfAbsent inserts a user keyed by email, leaving existing rows
// untouched. It reports whether a new row was created.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, input CreateUserInput) (*models.User, bool, error) {
	query := `
		INSERT INTO users (email, name, photo_url, role)
		VALUES ($1, $2, $3, 'unset')
		ON CONFLICT (email) DO NOTHING
		RETURNING id, email, name, photo_url, role, created_at, updated_at
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, input.Email, input.Name, input.PhotoURL).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PhotoURL,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		existing, lookupErr := r.GetByEmail(ctx, input.Email)
		if lookupErr != nil {
			return nil, false, lookupErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, photo_url, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PhotoURL,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, email, name, photo_url, role, created_at, updated_at
		FROM users
		ORDER BY created_at ASC, id ASC
	`
	return r.list(ctx, query)
}

func (r *UserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	query := `
		SELECT id, email, name, photo_url, role, created_at, updated_at
		FROM users
		WHERE role = $1
		ORDER BY created_at ASC, id ASC
	`
	return r.list(ctx, query, role)
}

func (r *UserRepository) UpdateRole(ctx context.Context, email string, role models.Role) (*models.User, error) {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE email = $1
		RETURNING id, email, name, photo_url, role, created_at, updated_at
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, email, role).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PhotoURL,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) list(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.PhotoURL,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
