// Package repository implements tenant business persistence.
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

var ErrNotFound = errors.New("business not found")
var ErrAlreadyRegistered = errors.New("owner already has a business")

const uniqueViolation = "23505"

// Business is a tenant row.
type Business struct {
	ID          uuid.UUID
	OwnerUserID uuid.UUID
	Name        string
	About       string
	WebsiteLink string
	Phone       string
	Province    string
	District    string
	Sector      string
	Cell        string
	Village     string
	Latitude    float64
	Longitude   float64
	LogoKey     *string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Repository persists businesses.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new business repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const businessColumns = `id, owner_user_id, name, about, website_link, phone,
		province, district, sector, cell, village,
		latitude, longitude, logo_key, published, created_at, updated_at`

// Create inserts the tenant business. One business per owner is enforced by
// a unique index on owner_user_id.
func (r *Repository) Create(ctx context.Context, b Business) (Business, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO businesses (
			owner_user_id, name, about, website_link, phone,
			province, district, sector, cell, village,
			latitude, longitude, published
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, true)
		RETURNING `+businessColumns,
		b.OwnerUserID, b.Name, b.About, b.WebsiteLink, b.Phone,
		b.Province, b.District, b.Sector, b.Cell, b.Village,
		b.Latitude, b.Longitude,
	)
	created, err := scanBusiness(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Business{}, ErrAlreadyRegistered
		}
		return Business{}, err
	}
	return created, nil
}

// GetByID fetches one business.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Business, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id)
	b, err := scanBusiness(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Business{}, ErrNotFound
	}
	return b, err
}

// GetByOwner fetches the caller's business.
func (r *Repository) GetByOwner(ctx context.Context, ownerUserID uuid.UUID) (Business, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE owner_user_id = $1`, ownerUserID)
	b, err := scanBusiness(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Business{}, ErrNotFound
	}
	return b, err
}

// Update replaces the mutable profile fields.
func (r *Repository) Update(ctx context.Context, b Business) (Business, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE businesses SET
			name = $2, about = $3, website_link = $4, phone = $5,
			province = $6, district = $7, sector = $8, cell = $9, village = $10,
			latitude = $11, longitude = $12, published = $13, updated_at = now()
		WHERE id = $1
		RETURNING `+businessColumns,
		b.ID, b.Name, b.About, b.WebsiteLink, b.Phone,
		b.Province, b.District, b.Sector, b.Cell, b.Village,
		b.Latitude, b.Longitude, b.Published,
	)
	updated, err := scanBusiness(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Business{}, ErrNotFound
	}
	return updated, err
}

// SetLogoKey stores the object key of the uploaded logo.
func (r *Repository) SetLogoKey(ctx context.Context, id uuid.UUID, logoKey string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE businesses SET logo_key = $2, updated_at = now() WHERE id = $1
	`, id, logoKey)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBusiness(row pgx.Row) (Business, error) {
	var b Business
	err := row.Scan(
		&b.ID, &b.OwnerUserID, &b.Name, &b.About, &b.WebsiteLink, &b.Phone,
		&b.Province, &b.District, &b.Sector, &b.Cell, &b.Village,
		&b.Latitude, &b.Longitude, &b.LogoKey, &b.Published, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}
