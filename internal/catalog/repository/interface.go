package repository

import (
	"context"

	"github.com/google/uuid"
)

// Product represents a catalog product belonging to one business.
type Product struct {
	ID            uuid.UUID `db:"id"`
	BusinessID    uuid.UUID `db:"business_id"`
	Title         string    `db:"title"`
	Category      string    `db:"category"`
	Description   *string   `db:"description"`
	PriceCents    int64     `db:"price_cents"`
	StockQuantity int       `db:"stock_quantity"`
	CreatedAt     string    `db:"created_at"`
	UpdatedAt     string    `db:"updated_at"`
}

// ProductAsset represents an uploaded file linked to a product.
type ProductAsset struct {
	ID          uuid.UUID `db:"id"`
	BusinessID  uuid.UUID `db:"business_id"`
	ProductID   uuid.UUID `db:"product_id"`
	FileKey     string    `db:"file_key"`
	FileName    string    `db:"file_name"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	CreatedAt   string    `db:"created_at"`
}

// CreateProductParams contains data for creating a product.
type CreateProductParams struct {
	BusinessID    uuid.UUID
	Title         string
	Category      string
	Description   *string
	PriceCents    int64
	StockQuantity int
}

// UpdateProductParams contains data for updating a product.
type UpdateProductParams struct {
	ID            uuid.UUID
	BusinessID    uuid.UUID
	Title         *string
	Category      *string
	Description   *string
	PriceCents    *int64
	StockQuantity *int
}

// ListProductsParams defines filters for listing products.
type ListProductsParams struct {
	BusinessID uuid.UUID
	Search     string
	Category   string
	Offset     int
	Limit      int
	SortBy     string
	SortOrder  string
}

// CreateProductAssetParams contains data for registering an uploaded asset.
type CreateProductAssetParams struct {
	BusinessID  uuid.UUID
	ProductID   uuid.UUID
	FileKey     string
	FileName    string
	ContentType string
	SizeBytes   int64
}

// Repository defines catalog storage operations.
type Repository interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, businessID uuid.UUID, id uuid.UUID) error
	GetProductByID(ctx context.Context, businessID uuid.UUID, id uuid.UUID) (Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error)
	AdjustStock(ctx context.Context, businessID uuid.UUID, id uuid.UUID, delta int) (Product, error)

	CreateProductAsset(ctx context.Context, params CreateProductAssetParams) (ProductAsset, error)
	GetProductAssetByID(ctx context.Context, businessID uuid.UUID, id uuid.UUID) (ProductAsset, error)
	ListProductAssets(ctx context.Context, businessID uuid.UUID, productID uuid.UUID) ([]ProductAsset, error)
	DeleteProductAsset(ctx context.Context, businessID uuid.UUID, id uuid.UUID) error
}
