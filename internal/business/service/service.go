// Package service implements tenant business profile management.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"shopwise_backend/internal/adapters/storage"
	"shopwise_backend/internal/business/repository"
	"shopwise_backend/internal/business/transport"
	"shopwise_backend/internal/events"
	"shopwise_backend/platform/apperr"
	"shopwise_backend/platform/logger"
	"shopwise_backend/platform/phone"
)

// ListingWriter publishes the business into the public discovery directory.
// Implemented by an adapter over the discovery repository.
type ListingWriter interface {
	UpsertListing(ctx context.Context, b repository.Business) error
	RemoveListing(ctx context.Context, businessID uuid.UUID) error
}

// Config is the subset of application config the business service needs.
type Config interface {
	GetAppBaseURL() string
	GetMinioBucketBusinessLogos() string
}

// Service manages tenant business profiles.
type Service struct {
	repo     *repository.Repository
	listings ListingWriter
	store    storage.StorageService
	cfg      Config
	bus      events.Bus
	log      *logger.Logger
}

// New creates a new business service. store may be nil when MinIO is not
// configured; logo endpoints then return 503.
func New(repo *repository.Repository, listings ListingWriter, store storage.StorageService, cfg Config, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, listings: listings, store: store, cfg: cfg, bus: bus, log: log}
}

// Register creates the caller's business and publishes it to the directory.
func (s *Service) Register(ctx context.Context, ownerUserID uuid.UUID, req transport.RegisterBusinessRequest) (repository.Business, error) {
	e164 := phone.NormalizeE164(req.Phone)

	business, err := s.repo.Create(ctx, repository.Business{
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(req.Name),
		About:       strings.TrimSpace(req.About),
		WebsiteLink: strings.TrimSpace(req.WebsiteLink),
		Phone:       e164,
		Province:    strings.TrimSpace(req.Province),
		District:    strings.TrimSpace(req.District),
		Sector:      strings.TrimSpace(req.Sector),
		Cell:        strings.TrimSpace(req.Cell),
		Village:     strings.TrimSpace(req.Village),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyRegistered) {
			return repository.Business{}, apperr.Conflict("a business is already registered for this account")
		}
		return repository.Business{}, err
	}

	if err := s.listings.UpsertListing(ctx, business); err != nil {
		s.log.DatabaseError("upsert_listing", err)
	}

	s.bus.Publish(ctx, events.BusinessRegistered{
		BaseEvent:  events.NewBaseEvent(),
		BusinessID: business.ID,
		Name:       business.Name,
	})
	return business, nil
}

// Mine returns the caller's business profile.
func (s *Service) Mine(ctx context.Context, ownerUserID uuid.UUID) (repository.Business, error) {
	business, err := s.repo.GetByOwner(ctx, ownerUserID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Business{}, apperr.NotFound("no business registered")
	}
	return business, err
}

// Update replaces the profile and syncs the directory listing.
func (s *Service) Update(ctx context.Context, businessID uuid.UUID, req transport.UpdateBusinessRequest) (repository.Business, error) {
	current, err := s.repo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Business{}, apperr.NotFound("business not found")
		}
		return repository.Business{}, err
	}

	e164 := phone.NormalizeE164(req.Phone)

	published := current.Published
	if req.Published != nil {
		published = *req.Published
	}

	updated, err := s.repo.Update(ctx, repository.Business{
		ID:          businessID,
		Name:        strings.TrimSpace(req.Name),
		About:       strings.TrimSpace(req.About),
		WebsiteLink: strings.TrimSpace(req.WebsiteLink),
		Phone:       e164,
		Province:    strings.TrimSpace(req.Province),
		District:    strings.TrimSpace(req.District),
		Sector:      strings.TrimSpace(req.Sector),
		Cell:        strings.TrimSpace(req.Cell),
		Village:     strings.TrimSpace(req.Village),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Published:   published,
	})
	if err != nil {
		return repository.Business{}, err
	}

	if updated.Published {
		if err := s.listings.UpsertListing(ctx, updated); err != nil {
			s.log.DatabaseError("upsert_listing", err)
		}
	} else {
		if err := s.listings.RemoveListing(ctx, updated.ID); err != nil {
			s.log.DatabaseError("remove_listing", err)
		}
	}
	return updated, nil
}

// LogoUploadURL presigns a PUT for the business logo.
func (s *Service) LogoUploadURL(ctx context.Context, businessID uuid.UUID, req transport.LogoUploadRequest) (*storage.PresignedURL, error) {
	if s.store == nil {
		return nil, apperr.Unavailable("file storage is not configured")
	}
	if !storage.IsImageContentType(req.ContentType) {
		return nil, apperr.BadRequest("logo must be an image")
	}

	presigned, err := s.store.GenerateUploadURL(ctx, s.cfg.GetMinioBucketBusinessLogos(), businessID.String(), req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	return presigned, nil
}

// ConfirmLogo records the uploaded object key on the profile.
func (s *Service) ConfirmLogo(ctx context.Context, businessID uuid.UUID, fileKey string) error {
	if strings.TrimSpace(fileKey) == "" {
		return apperr.BadRequest("fileKey is required")
	}
	err := s.repo.SetLogoKey(ctx, businessID, fileKey)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("business not found")
	}
	return err
}

// LogoDownloadURL presigns a GET for the stored logo.
func (s *Service) LogoDownloadURL(ctx context.Context, businessID uuid.UUID) (*storage.PresignedURL, error) {
	if s.store == nil {
		return nil, apperr.Unavailable("file storage is not configured")
	}

	business, err := s.repo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("business not found")
		}
		return nil, err
	}
	if business.LogoKey == nil {
		return nil, apperr.NotFound("no logo uploaded")
	}

	return s.store.GenerateDownloadURL(ctx, s.cfg.GetMinioBucketBusinessLogos(), *business.LogoKey)
}

// ProfileQR renders a PNG QR code pointing at the public profile page.
func (s *Service) ProfileQR(ctx context.Context, businessID uuid.UUID) ([]byte, error) {
	business, err := s.repo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("business not found")
		}
		return nil, err
	}

	profileURL := fmt.Sprintf("%s/discover/%s", strings.TrimRight(s.cfg.GetAppBaseURL(), "/"), business.ID)
	png, err := qrcode.Encode(profileURL, qrcode.Medium, 512)
	if err != nil {
		return nil, fmt.Errorf("encode profile qr: %w", err)
	}
	return png, nil
}
