// Package repository implements directory listing persistence and geo search.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopwise_backend/platform/apperr"
	"shopwise_backend/platform/geo"
)

const listingNotFoundMessage = "business not found"

// Listing is a directory row as stored.
type Listing struct {
	ID            uuid.UUID
	BusinessID    uuid.UUID
	Name          string
	About         string
	WebsiteLink   string
	Phone         string
	Province      string
	District      string
	Sector        string
	Cell          string
	Village       string
	Latitude      float64
	Longitude     float64
	ProductCount  int
	EmployeeCount *int
	DistanceKm    *float64
}

// SearchParams drives the dynamic geo search query. Zero-value fields are
// skipped; RadiusKm <= 0 means unbounded (nearest ordering only).
type SearchParams struct {
	Latitude    float64
	Longitude   float64
	RadiusKm    float64
	Name        string
	ProductName string
	Province    string
	District    string
	Sector      string
	Cell        string
	Village     string
	Skip        int
	Limit       int
}

// Repository defines directory persistence operations.
type Repository interface {
	Search(ctx context.Context, params SearchParams) ([]Listing, int, error)
	FilterByRegion(ctx context.Context, level, value string, skip, limit int) ([]Listing, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (Listing, error)
	Upsert(ctx context.Context, listing Listing) (uuid.UUID, error)
	RefreshCounts(ctx context.Context, businessID uuid.UUID) error
	RefreshAllCounts(ctx context.Context) (int, error)
	DeleteByBusiness(ctx context.Context, businessID uuid.UUID) error
}

// Repo implements Repository on Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new directory repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// distanceExpr computes haversine kilometers against the bound lat/lng
// placeholders. least() guards acos from rounding just above 1.
func distanceExpr(latArg, lngArg int) string {
	return fmt.Sprintf(
		"6371 * acos(least(1.0, cos(radians($%d)) * cos(radians(latitude)) * cos(radians(longitude) - radians($%d)) + sin(radians($%d)) * sin(radians(latitude))))",
		latArg, lngArg, latArg,
	)
}

// Search runs the dynamic geo query: optional region/name/product filters,
// a bounding-box prefilter when a radius is set, exact haversine ordering.
func (r *Repo) Search(ctx context.Context, params SearchParams) ([]Listing, int, error) {
	args := []interface{}{params.Latitude, params.Longitude}
	dist := distanceExpr(1, 2)
	argIdx := 3

	whereClauses := []string{"published"}

	if params.RadiusKm > 0 {
		// Cheap rectangle prefilter so the index on (latitude, longitude)
		// narrows the rows before the exact distance check.
		bound := geo.BoundAround(geo.Point{Latitude: params.Latitude, Longitude: params.Longitude}, params.RadiusKm)
		whereClauses = append(whereClauses,
			fmt.Sprintf("latitude BETWEEN $%d AND $%d", argIdx, argIdx+1),
			fmt.Sprintf("longitude BETWEEN $%d AND $%d", argIdx+2, argIdx+3),
		)
		args = append(args, bound.Min.Lat(), bound.Max.Lat(), bound.Min.Lon(), bound.Max.Lon())
		argIdx += 4

		whereClauses = append(whereClauses, fmt.Sprintf("%s <= $%d", dist, argIdx))
		args = append(args, params.RadiusKm)
		argIdx++
	}

	regionValues := []struct {
		column string
		value  string
	}{
		{"province", params.Province},
		{"district", params.District},
		{"sector", params.Sector},
		{"cell", params.Cell},
		{"village", params.Village},
	}
	for _, region := range regionValues {
		column, value := region.column, region.value
		if value == "" {
			continue
		}
		whereClauses = append(whereClauses, fmt.Sprintf("%s ILIKE $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if params.Name != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+params.Name+"%")
		argIdx++
	}

	if params.ProductName != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM catalog_products p WHERE p.business_id = directory_listings.business_id AND p.title ILIKE $%d)", argIdx))
		args = append(args, "%"+params.ProductName+"%")
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM directory_listings WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count directory listings: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, business_id, name, about, website_link, phone,
			province, district, sector, cell, village,
			latitude, longitude, product_count, employee_count,
			%s AS distance_km
		FROM directory_listings
		WHERE %s
		ORDER BY %s ASC, name ASC
		LIMIT $%d OFFSET $%d`, dist, whereClause, dist, argIdx, argIdx+1)
	args = append(args, params.Limit, params.Skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search directory listings: %w", err)
	}
	defer rows.Close()

	listings, err := scanListings(rows, true)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// FilterByRegion lists every published business in a single administrative
// region, ordered by name. No coordinate is involved.
func (r *Repo) FilterByRegion(ctx context.Context, level, value string, skip, limit int) ([]Listing, int, error) {
	column, ok := regionColumn(level)
	if !ok {
		return nil, 0, apperr.BadRequest("unknown region level")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM directory_listings WHERE published AND %s ILIKE $1", column)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, value).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count region listings: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, business_id, name, about, website_link, phone,
			province, district, sector, cell, village,
			latitude, longitude, product_count, employee_count,
			NULL::float8 AS distance_km
		FROM directory_listings
		WHERE published AND %s ILIKE $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`, column)

	rows, err := r.pool.Query(ctx, query, value, limit, skip)
	if err != nil {
		return nil, 0, fmt.Errorf("filter region listings: %w", err)
	}
	defer rows.Close()

	listings, err := scanListings(rows, false)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// GetByID fetches a single published listing.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Listing, error) {
	query := `
		SELECT id, business_id, name, about, website_link, phone,
			province, district, sector, cell, village,
			latitude, longitude, product_count, employee_count,
			NULL::float8 AS distance_km
		FROM directory_listings
		WHERE id = $1 AND published`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return Listing{}, fmt.Errorf("get directory listing: %w", err)
	}
	defer rows.Close()

	listings, err := scanListings(rows, false)
	if err != nil {
		return Listing{}, err
	}
	if len(listings) == 0 {
		return Listing{}, apperr.NotFound(listingNotFoundMessage)
	}
	return listings[0], nil
}

// Upsert creates or replaces the directory listing for a business.
func (r *Repo) Upsert(ctx context.Context, listing Listing) (uuid.UUID, error) {
	query := `
		INSERT INTO directory_listings (
			business_id, name, about, website_link, phone,
			province, district, sector, cell, village,
			latitude, longitude, published
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, true)
		ON CONFLICT (business_id) DO UPDATE SET
			name = EXCLUDED.name,
			about = EXCLUDED.about,
			website_link = EXCLUDED.website_link,
			phone = EXCLUDED.phone,
			province = EXCLUDED.province,
			district = EXCLUDED.district,
			sector = EXCLUDED.sector,
			cell = EXCLUDED.cell,
			village = EXCLUDED.village,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			updated_at = now()
		RETURNING id`

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, query,
		listing.BusinessID, listing.Name, listing.About, listing.WebsiteLink, listing.Phone,
		listing.Province, listing.District, listing.Sector, listing.Cell, listing.Village,
		listing.Latitude, listing.Longitude,
	).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("upsert directory listing: %w", err)
	}
	return id, nil
}

// RefreshCounts recomputes the denormalized product and employee counters.
func (r *Repo) RefreshCounts(ctx context.Context, businessID uuid.UUID) error {
	query := `
		UPDATE directory_listings SET
			product_count = (SELECT COUNT(*) FROM catalog_products p WHERE p.business_id = $1),
			employee_count = (SELECT COUNT(*) FROM workforce_employees e WHERE e.business_id = $1 AND e.active),
			updated_at = now()
		WHERE business_id = $1`
	if _, err := r.pool.Exec(ctx, query, businessID); err != nil {
		return fmt.Errorf("refresh listing counts: %w", err)
	}
	return nil
}

// RefreshAllCounts recomputes the counters for every listing. Used by the
// nightly reconciliation job to repair drift from missed events.
func (r *Repo) RefreshAllCounts(ctx context.Context) (int, error) {
	query := `
		UPDATE directory_listings l SET
			product_count = (SELECT COUNT(*) FROM catalog_products p WHERE p.business_id = l.business_id),
			employee_count = (SELECT COUNT(*) FROM workforce_employees e WHERE e.business_id = l.business_id AND e.active),
			updated_at = now()`
	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("refresh all listing counts: %w", err)
	}
	return int(result.RowsAffected()), nil
}

// DeleteByBusiness removes a business from the public directory.
func (r *Repo) DeleteByBusiness(ctx context.Context, businessID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM directory_listings WHERE business_id = $1`, businessID)
	if err != nil {
		return fmt.Errorf("delete directory listing: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(listingNotFoundMessage)
	}
	return nil
}

func regionColumn(level string) (string, bool) {
	switch strings.ToLower(level) {
	case "province", "district", "sector", "cell", "village":
		return strings.ToLower(level), true
	default:
		return "", false
	}
}

func scanListings(rows pgx.Rows, keepDistance bool) ([]Listing, error) {
	listings := make([]Listing, 0)
	for rows.Next() {
		var listing Listing
		var distance *float64
		if err := rows.Scan(
			&listing.ID, &listing.BusinessID, &listing.Name, &listing.About,
			&listing.WebsiteLink, &listing.Phone,
			&listing.Province, &listing.District, &listing.Sector, &listing.Cell, &listing.Village,
			&listing.Latitude, &listing.Longitude,
			&listing.ProductCount, &listing.EmployeeCount,
			&distance,
		); err != nil {
			return nil, fmt.Errorf("scan directory listing: %w", err)
		}
		if keepDistance {
			listing.DistanceKm = distance
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return listings, nil
		}
		return nil, fmt.Errorf("iterate directory listings: %w", err)
	}
	return listings, nil
}
