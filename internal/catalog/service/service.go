package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"shopwise_backend/internal/adapters/storage"
	"shopwise_backend/internal/catalog/repository"
	"shopwise_backend/internal/catalog/transport"
	"shopwise_backend/internal/events"
	"shopwise_backend/platform/apperr"
	"shopwise_backend/platform/logger"
)

// Config is the subset of application config the catalog service needs.
type Config interface {
	GetMinioBucketProductAssets() string
}

// Service provides business logic for the product catalog.
type Service struct {
	repo  repository.Repository
	store storage.StorageService
	cfg   Config
	bus   events.Bus
	log   *logger.Logger
}

// New creates a new catalog service. store may be nil when MinIO is not
// configured; asset endpoints then return 503.
func New(repo repository.Repository, store storage.StorageService, cfg Config, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, store: store, cfg: cfg, bus: bus, log: log}
}

// CreateProduct creates a new product.
func (s *Service) CreateProduct(ctx context.Context, businessID uuid.UUID, req transport.CreateProductRequest) (transport.ProductResponse, error) {
	product, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		BusinessID:    businessID,
		Title:         strings.TrimSpace(req.Title),
		Category:      strings.TrimSpace(req.Category),
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.bus.Publish(ctx, events.CatalogChanged{
		BaseEvent:  events.NewBaseEvent(),
		BusinessID: businessID,
	})

	s.log.Info("product created", "id", product.ID, "title", product.Title)
	return toProductResponse(product), nil
}

// UpdateProduct updates an existing product.
func (s *Service) UpdateProduct(ctx context.Context, businessID uuid.UUID, id uuid.UUID, req transport.UpdateProductRequest) (transport.ProductResponse, error) {
	title := req.Title
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		title = &trimmed
	}
	category := req.Category
	if category != nil {
		trimmed := strings.TrimSpace(*category)
		category = &trimmed
	}

	product, err := s.repo.UpdateProduct(ctx, repository.UpdateProductParams{
		ID:            id,
		BusinessID:    businessID,
		Title:         title,
		Category:      category,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product updated", "id", product.ID, "title", product.Title)
	return toProductResponse(product), nil
}

// DeleteProduct deletes a product.
func (s *Service) DeleteProduct(ctx context.Context, businessID uuid.UUID, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, businessID, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.CatalogChanged{
		BaseEvent:  events.NewBaseEvent(),
		BusinessID: businessID,
	})

	s.log.Info("product deleted", "id", id)
	return nil
}

// GetProductByID retrieves a product by ID.
func (s *Service) GetProductByID(ctx context.Context, businessID uuid.UUID, id uuid.UUID) (transport.ProductResponse, error) {
	product, err := s.repo.GetProductByID(ctx, businessID, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

// ListProducts retrieves products with search and pagination.
func (s *Service) ListProducts(ctx context.Context, businessID uuid.UUID, req transport.ListProductsRequest) (transport.ProductListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	items, total, err := s.repo.ListProducts(ctx, repository.ListProductsParams{
		BusinessID: businessID,
		Search:     strings.TrimSpace(req.Search),
		Category:   strings.TrimSpace(req.Category),
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		return transport.ProductListResponse{}, err
	}

	responses := make([]transport.ProductResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toProductResponse(item))
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return transport.ProductListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// AdjustStock applies a manual stock correction.
func (s *Service) AdjustStock(ctx context.Context, businessID uuid.UUID, id uuid.UUID, delta int) (transport.ProductResponse, error) {
	product, err := s.repo.AdjustStock(ctx, businessID, id, delta)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return transport.ProductResponse{}, apperr.Conflict("insufficient stock")
		}
		return transport.ProductResponse{}, err
	}

	s.log.Info("stock adjusted", "id", product.ID, "delta", delta, "stock", product.StockQuantity)
	return toProductResponse(product), nil
}

// PresignAssetUpload presigns a PUT for a product image.
func (s *Service) PresignAssetUpload(ctx context.Context, businessID uuid.UUID, productID uuid.UUID, req transport.PresignProductAssetRequest) (transport.PresignedUploadResponse, error) {
	if s.store == nil {
		return transport.PresignedUploadResponse{}, apperr.Unavailable("file storage is not configured")
	}

	// The product must exist and belong to the caller.
	if _, err := s.repo.GetProductByID(ctx, businessID, productID); err != nil {
		return transport.PresignedUploadResponse{}, err
	}

	folder := businessID.String() + "/" + productID.String()
	presigned, err := s.store.GenerateUploadURL(ctx, s.cfg.GetMinioBucketProductAssets(), folder, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return transport.PresignedUploadResponse{}, apperr.BadRequest(err.Error())
	}

	return transport.PresignedUploadResponse{
		UploadURL: presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt.Unix(),
	}, nil
}

// RegisterAsset records a completed upload against the product.
func (s *Service) RegisterAsset(ctx context.Context, businessID uuid.UUID, productID uuid.UUID, req transport.CreateProductAssetRequest) (transport.ProductAssetResponse, error) {
	if _, err := s.repo.GetProductByID(ctx, businessID, productID); err != nil {
		return transport.ProductAssetResponse{}, err
	}

	asset, err := s.repo.CreateProductAsset(ctx, repository.CreateProductAssetParams{
		BusinessID:  businessID,
		ProductID:   productID,
		FileKey:     req.FileKey,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		return transport.ProductAssetResponse{}, err
	}
	return toAssetResponse(asset), nil
}

// ListAssets lists the product's uploaded assets.
func (s *Service) ListAssets(ctx context.Context, businessID uuid.UUID, productID uuid.UUID) (transport.ProductAssetListResponse, error) {
	items, err := s.repo.ListProductAssets(ctx, businessID, productID)
	if err != nil {
		return transport.ProductAssetListResponse{}, err
	}

	responses := make([]transport.ProductAssetResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toAssetResponse(item))
	}
	return transport.ProductAssetListResponse{Items: responses}, nil
}

// PresignAssetDownload presigns a GET for a stored asset.
func (s *Service) PresignAssetDownload(ctx context.Context, businessID uuid.UUID, assetID uuid.UUID) (transport.PresignedDownloadResponse, error) {
	if s.store == nil {
		return transport.PresignedDownloadResponse{}, apperr.Unavailable("file storage is not configured")
	}

	asset, err := s.repo.GetProductAssetByID(ctx, businessID, assetID)
	if err != nil {
		return transport.PresignedDownloadResponse{}, err
	}

	presigned, err := s.store.GenerateDownloadURL(ctx, s.cfg.GetMinioBucketProductAssets(), asset.FileKey)
	if err != nil {
		return transport.PresignedDownloadResponse{}, err
	}

	return transport.PresignedDownloadResponse{
		DownloadURL: presigned.URL,
		ExpiresAt:   presigned.ExpiresAt.Unix(),
	}, nil
}

// DeleteAsset removes an asset record and the stored object.
func (s *Service) DeleteAsset(ctx context.Context, businessID uuid.UUID, assetID uuid.UUID) error {
	asset, err := s.repo.GetProductAssetByID(ctx, businessID, assetID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteProductAsset(ctx, businessID, assetID); err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.DeleteObject(ctx, s.cfg.GetMinioBucketProductAssets(), asset.FileKey); err != nil {
			s.log.Warn("failed to delete stored object", "fileKey", asset.FileKey, "error", err)
		}
	}
	return nil
}

func toProductResponse(product repository.Product) transport.ProductResponse {
	return transport.ProductResponse{
		ID:            product.ID,
		Title:         product.Title,
		Category:      product.Category,
		Description:   product.Description,
		PriceCents:    product.PriceCents,
		StockQuantity: product.StockQuantity,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

func toAssetResponse(asset repository.ProductAsset) transport.ProductAssetResponse {
	return transport.ProductAssetResponse{
		ID:          asset.ID,
		ProductID:   asset.ProductID,
		FileKey:     asset.FileKey,
		FileName:    asset.FileName,
		ContentType: asset.ContentType,
		SizeBytes:   asset.SizeBytes,
		CreatedAt:   asset.CreatedAt,
	}
}
