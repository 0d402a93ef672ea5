package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopwise_backend/platform/apperr"
)

const (
	productNotFoundMessage = "product not found"
	insufficientStockMsg   = "insufficient stock"
)

// ErrInsufficientStock is returned when a stock decrement would go negative.
var ErrInsufficientStock = errors.New(insufficientStockMsg)

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const productColumns = `id, business_id, title, category, description, price_cents, stock_quantity, created_at, updated_at`

// CreateProduct creates a product.
func (r *Repo) CreateProduct(ctx context.Context, params CreateProductParams) (Product, error) {
	query := `
		INSERT INTO catalog_products (
			business_id, title, category, description, price_cents, stock_quantity
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns

	product, err := scanProduct(r.pool.QueryRow(ctx, query,
		params.BusinessID, params.Title, params.Category, params.Description,
		params.PriceCents, params.StockQuantity,
	))
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// UpdateProduct updates a product.
func (r *Repo) UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error) {
	query := `
		UPDATE catalog_products
		SET
			title = COALESCE($3, title),
			category = COALESCE($4, category),
			description = COALESCE($5, description),
			price_cents = COALESCE($6, price_cents),
			stock_quantity = COALESCE($7, stock_quantity),
			updated_at = now()
		WHERE id = $1 AND business_id = $2
		RETURNING ` + productColumns

	product, err := scanProduct(r.pool.QueryRow(ctx, query,
		params.ID, params.BusinessID, params.Title, params.Category, params.Description,
		params.PriceCents, params.StockQuantity,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// DeleteProduct deletes a product.
func (r *Repo) DeleteProduct(ctx context.Context, businessID uuid.UUID, id uuid.UUID) error {
	query := `DELETE FROM catalog_products WHERE id = $1 AND business_id = $2`
	result, err := r.pool.Exec(ctx, query, id, businessID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMessage)
	}
	return nil
}

// GetProductByID retrieves a product by ID.
func (r *Repo) GetProductByID(ctx context.Context, businessID uuid.UUID, id uuid.UUID) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM catalog_products WHERE id = $1 AND business_id = $2`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// ListProducts lists products with filters and pagination.
func (r *Repo) ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error) {
	whereClauses := []string{"business_id = $1"}
	args := []interface{}{params.BusinessID}
	argIdx := 2

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("title ILIKE $%d", argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	if params.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM catalog_products WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	sortColumn := "created_at"
	switch params.SortBy {
	case "title":
		sortColumn = "title"
	case "category":
		sortColumn = "category"
	case "priceCents":
		sortColumn = "price_cents"
	case "stockQuantity":
		sortColumn = "stock_quantity"
	case "updatedAt":
		sortColumn = "updated_at"
	}

	sortOrder := "DESC"
	if params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM catalog_products
		WHERE %s
		ORDER BY %s %s, created_at DESC
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, product)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", rows.Err())
	}

	return items, total, nil
}

// AdjustStock changes stock by delta atomically. A negative delta that would
// take stock below zero fails with ErrInsufficientStock.
func (r *Repo) AdjustStock(ctx context.Context, businessID uuid.UUID, id uuid.UUID, delta int) (Product, error) {
	query := `
		UPDATE catalog_products
		SET stock_quantity = stock_quantity + $3, updated_at = now()
		WHERE id = $1 AND business_id = $2 AND stock_quantity + $3 >= 0
		RETURNING ` + productColumns

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id, businessID, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the product is missing or the decrement would go negative.
			if _, getErr := r.GetProductByID(ctx, businessID, id); getErr != nil {
				return Product{}, getErr
			}
			return Product{}, ErrInsufficientStock
		}
		return Product{}, fmt.Errorf("adjust stock: %w", err)
	}
	return product, nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var product Product
	var createdAt, updatedAt time.Time
	if err := row.Scan(
		&product.ID, &product.BusinessID, &product.Title, &product.Category,
		&product.Description, &product.PriceCents, &product.StockQuantity,
		&createdAt, &updatedAt,
	); err != nil {
		return Product{}, err
	}
	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}
