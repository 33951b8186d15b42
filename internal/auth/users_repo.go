package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/burakcan/atelier/internal/telemetry/tracing"
	"github.com/burakcan/atelier/pkg"
)

var _ usersRepo = (*UsersRepo)(nil)

type UsersRepo struct {
	db *pgxpool.Pool
}

func NewUsersRepo(db *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{
		db: db,
	}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "usersRepo.GetByEmail")
	defer span.End()

	var user User
	err := r.db.QueryRow(
		ctx,
		`SELECT id, email, password_hash, COALESCE(name, ''), created_at, updated_at
			FROM users WHERE email = $1;`,
		email,
	).Scan(
		&user.ID, &user.Email, &user.PasswordHash,
		&user.Name, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UsersRepo) Add(ctx context.Context, email, passwordHash, name string) (*User, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "usersRepo.Add")
	defer span.End()

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	}

	err := r.db.QueryRow(
		ctx,
		`INSERT INTO users (id, email, password_hash, name, created_at, updated_at)
			VALUES ($1, $2, $3, NULLIF($4, ''), NOW(), NOW())
			RETURNING created_at, updated_at;`,
		user.ID, user.Email, user.PasswordHash, user.Name,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}
