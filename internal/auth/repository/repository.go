// Package repository implements account and session persistence.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")
var ErrEmailTaken = errors.New("email already registered")

const uniqueViolation = "23505"

// Repository persists users and refresh tokens.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// User is an account row.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Phone        *string
	Role         string
	BusinessID   *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const userColumns = `u.id, u.email, u.password_hash, u.full_name, u.phone, u.role,
		(SELECT b.id FROM businesses b WHERE b.owner_user_id = u.id LIMIT 1) AS business_id,
		u.created_at, u.updated_at`

// CreateUser inserts a new account. Role is "owner" for business operators,
// "staff" for employees invited later.
func (r *Repository) CreateUser(ctx context.Context, email, passwordHash, fullName, role string, phone *string) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password_hash, full_name, phone, role, NULL::uuid, created_at, updated_at
	`, email, passwordHash, fullName, phone, role).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName,
		&user.Phone, &user.Role, &user.BusinessID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return user, nil
}

// GetUserByEmail returns the account for a login attempt.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users u WHERE u.email = $1`, email)
}

// GetUserByID returns the account for the profile endpoint.
func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, userID)
}

func (r *Repository) getUser(ctx context.Context, query string, arg interface{}) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName,
		&user.Phone, &user.Role, &user.BusinessID, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

// UpdatePassword replaces the stored hash.
func (r *Repository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now()
		WHERE id = $1
	`, userID, passwordHash)
	return err
}

// UpdateProfile changes mutable profile fields.
func (r *Repository) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName string, phone *string) (User, error) {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET full_name = $2, phone = $3, updated_at = now()
		WHERE id = $1
	`, userID, fullName, phone)
	if err != nil {
		return User{}, err
	}
	return r.GetUserByID(ctx, userID)
}

// CreateRefreshToken stores a hashed refresh token.
func (r *Repository) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	return err
}

// GetRefreshToken resolves a live refresh token hash to its user.
func (r *Repository) GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	var userID uuid.UUID
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, expires_at FROM refresh_tokens
		WHERE token_hash = $1 AND revoked_at IS NULL
	`, tokenHash).Scan(&userID, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.UUID{}, time.Time{}, ErrNotFound
	}
	return userID, expiresAt, err
}

// RevokeRefreshToken marks one token revoked (rotation and sign-out).
func (r *Repository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = now()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`, tokenHash)
	return err
}

// RevokeAllRefreshTokens invalidates every session after a password change.
func (r *Repository) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = now()
		WHERE user_id = $1 AND revoked_at IS NULL
	`, userID)
	return err
}
