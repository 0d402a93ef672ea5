package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"

	catalogrepo "shopwise_backend/internal/catalog/repository"
	financeservice "shopwise_backend/internal/finance/service"
)

// CatalogStockAdjuster implements the finance module's StockPort on top of
// the catalog repository. The decrement is a single atomic update that
// refuses to take stock below zero.
type CatalogStockAdjuster struct {
	repo catalogrepo.Repository
}

// NewCatalogStockAdjuster creates the adapter.
func NewCatalogStockAdjuster(repo catalogrepo.Repository) *CatalogStockAdjuster {
	return &CatalogStockAdjuster{repo: repo}
}

// DecrementStock reduces product stock by quantity and returns the
// product's title and current price for the sale record.
func (a *CatalogStockAdjuster) DecrementStock(ctx context.Context, businessID, productID uuid.UUID, quantity int) (financeservice.ProductInfo, error) {
	product, err := a.repo.AdjustStock(ctx, businessID, productID, -quantity)
	if err != nil {
		if errors.Is(err, catalogrepo.ErrInsufficientStock) {
			return financeservice.ProductInfo{}, financeservice.ErrInsufficientStock
		}
		return financeservice.ProductInfo{}, err
	}
	return financeservice.ProductInfo{
		Title:      product.Title,
		PriceCents: product.PriceCents,
	}, nil
}

// RestoreStock adds quantity back after a sale could not be persisted.
func (a *CatalogStockAdjuster) RestoreStock(ctx context.Context, businessID, productID uuid.UUID, quantity int) error {
	_, err := a.repo.AdjustStock(ctx, businessID, productID, quantity)
	return err
}

// Compile-time check that the adapter satisfies the port.
var _ financeservice.StockPort = (*CatalogStockAdjuster)(nil)
