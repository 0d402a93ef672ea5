package transport

import "github.com/google/uuid"

// Products

type CreateProductRequest struct {
	Title         string  `json:"title" validate:"required,min=1,max=200"`
	Category      string  `json:"category" validate:"required,min=1,max=100"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	PriceCents    int64   `json:"priceCents" validate:"min=0"`
	StockQuantity int     `json:"stockQuantity" validate:"min=0"`
}

type UpdateProductRequest struct {
	Title         *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Category      *string `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	PriceCents    *int64  `json:"priceCents,omitempty" validate:"omitempty,min=0"`
	StockQuantity *int    `json:"stockQuantity,omitempty" validate:"omitempty,min=0"`
}

type ListProductsRequest struct {
	Search    string `form:"search" validate:"max=100"`
	Category  string `form:"category" validate:"omitempty,max=100"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=title category priceCents stockQuantity createdAt updatedAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type ProductResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Description   *string   `json:"description,omitempty"`
	PriceCents    int64     `json:"priceCents"`
	StockQuantity int       `json:"stockQuantity"`
	CreatedAt     string    `json:"createdAt"`
	UpdatedAt     string    `json:"updatedAt"`
}

type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// Assets

type PresignProductAssetRequest struct {
	FileName    string `json:"fileName" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,min=1,max=255"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type PresignedUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresAt int64  `json:"expiresAt"`
}

type CreateProductAssetRequest struct {
	FileKey     string `json:"fileKey" validate:"required,min=1"`
	FileName    string `json:"fileName" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,min=1,max=255"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type ProductAssetResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	FileKey     string    `json:"fileKey"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   string    `json:"createdAt"`
}

type ProductAssetListResponse struct {
	Items []ProductAssetResponse `json:"items"`
}

type PresignedDownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
	ExpiresAt   int64  `json:"expiresAt"`
}
