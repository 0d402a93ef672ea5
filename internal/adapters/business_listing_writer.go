// Package adapters wires bounded contexts together through narrow interfaces.
package adapters

import (
	"context"

	"github.com/google/uuid"

	businessrepo "shopwise_backend/internal/business/repository"
	"shopwise_backend/internal/business/service"
	discoveryrepo "shopwise_backend/internal/discovery/repository"
)

// BusinessListingWriter implements the business module's ListingWriter port
// on top of the discovery repository, keeping the public directory in sync
// with tenant profile changes.
type BusinessListingWriter struct {
	repo discoveryrepo.Repository
}

// NewBusinessListingWriter creates the adapter.
func NewBusinessListingWriter(repo discoveryrepo.Repository) *BusinessListingWriter {
	return &BusinessListingWriter{repo: repo}
}

// UpsertListing projects the tenant profile into a directory listing.
func (a *BusinessListingWriter) UpsertListing(ctx context.Context, b businessrepo.Business) error {
	_, err := a.repo.Upsert(ctx, discoveryrepo.Listing{
		BusinessID:  b.ID,
		Name:        b.Name,
		About:       b.About,
		WebsiteLink: b.WebsiteLink,
		Phone:       b.Phone,
		Province:    b.Province,
		District:    b.District,
		Sector:      b.Sector,
		Cell:        b.Cell,
		Village:     b.Village,
		Latitude:    b.Latitude,
		Longitude:   b.Longitude,
	})
	return err
}

// RemoveListing withdraws the business from the public directory.
func (a *BusinessListingWriter) RemoveListing(ctx context.Context, businessID uuid.UUID) error {
	return a.repo.DeleteByBusiness(ctx, businessID)
}

// Compile-time check that the adapter satisfies the port.
var _ service.ListingWriter = (*BusinessListingWriter)(nil)
