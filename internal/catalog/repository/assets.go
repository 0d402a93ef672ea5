package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"shopwise_backend/platform/apperr"
)

const productAssetNotFoundMessage = "product asset not found"

// CreateProductAsset registers an uploaded product file.
func (r *Repo) CreateProductAsset(ctx context.Context, params CreateProductAssetParams) (ProductAsset, error) {
	query := `
        INSERT INTO catalog_product_assets (
            business_id, product_id, file_key, file_name, content_type, size_bytes
        ) VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, business_id, product_id, file_key, file_name, content_type, size_bytes, created_at`

	asset, err := scanAsset(r.pool.QueryRow(ctx, query,
		params.BusinessID,
		params.ProductID,
		params.FileKey,
		params.FileName,
		params.ContentType,
		params.SizeBytes,
	))
	if err != nil {
		return ProductAsset{}, fmt.Errorf("create product asset: %w", err)
	}
	return asset, nil
}

// GetProductAssetByID retrieves a product asset by ID.
func (r *Repo) GetProductAssetByID(ctx context.Context, businessID uuid.UUID, id uuid.UUID) (ProductAsset, error) {
	query := `
        SELECT id, business_id, product_id, file_key, file_name, content_type, size_bytes, created_at
        FROM catalog_product_assets
        WHERE id = $1 AND business_id = $2`

	asset, err := scanAsset(r.pool.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProductAsset{}, apperr.NotFound(productAssetNotFoundMessage)
		}
		return ProductAsset{}, fmt.Errorf("get product asset by id: %w", err)
	}
	return asset, nil
}

// ListProductAssets lists assets for a product, newest first.
func (r *Repo) ListProductAssets(ctx context.Context, businessID uuid.UUID, productID uuid.UUID) ([]ProductAsset, error) {
	query := `
        SELECT id, business_id, product_id, file_key, file_name, content_type, size_bytes, created_at
        FROM catalog_product_assets
        WHERE business_id = $1 AND product_id = $2
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, businessID, productID)
	if err != nil {
		return nil, fmt.Errorf("list product assets: %w", err)
	}
	defer rows.Close()

	items := make([]ProductAsset, 0)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product asset: %w", err)
		}
		items = append(items, asset)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate product assets: %w", rows.Err())
	}

	return items, nil
}

// DeleteProductAsset deletes a product asset by ID.
func (r *Repo) DeleteProductAsset(ctx context.Context, businessID uuid.UUID, id uuid.UUID) error {
	query := `DELETE FROM catalog_product_assets WHERE id = $1 AND business_id = $2`
	result, err := r.pool.Exec(ctx, query, id, businessID)
	if err != nil {
		return fmt.Errorf("delete product asset: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productAssetNotFoundMessage)
	}
	return nil
}

func scanAsset(row pgx.Row) (ProductAsset, error) {
	var asset ProductAsset
	var createdAt time.Time
	if err := row.Scan(
		&asset.ID,
		&asset.BusinessID,
		&asset.ProductID,
		&asset.FileKey,
		&asset.FileName,
		&asset.ContentType,
		&asset.SizeBytes,
		&createdAt,
	); err != nil {
		return ProductAsset{}, err
	}
	asset.CreatedAt = createdAt.Format(time.RFC3339)
	return asset, nil
}
