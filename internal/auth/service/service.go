package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"shopwise_backend/internal/auth/password"
	"shopwise_backend/internal/auth/repository"
	"shopwise_backend/internal/auth/token"
	"shopwise_backend/internal/events"
	"shopwise_backend/platform/apperr"
	"shopwise_backend/platform/config"
	"shopwise_backend/platform/logger"
	"shopwise_backend/platform/phone"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")
var ErrInvalidCurrentPassword = errors.New("current password is incorrect")

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"

	RoleOwner = "owner"
	RoleStaff = "staff"
)

// Service implements account and session operations.
type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo *repository.Repository, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// Register creates an owner account and signs it in immediately.
func (s *Service) Register(ctx context.Context, email, plainPassword, fullName, rawPhone string) (repository.User, string, string, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return repository.User{}, "", "", err
	}

	var normalizedPhone *string
	if strings.TrimSpace(rawPhone) != "" {
		e164 := phone.NormalizeE164(rawPhone)
		normalizedPhone = &e164
	}

	user, err := s.repo.CreateUser(ctx, strings.ToLower(strings.TrimSpace(email)), hash, strings.TrimSpace(fullName), RoleOwner, normalizedPhone)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return repository.User{}, "", "", apperr.Conflict("email already registered")
		}
		return repository.User{}, "", "", err
	}

	s.log.AuthEvent("register", user.Email, true, "")
	s.bus.Publish(ctx, events.UserRegistered{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
	})

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return repository.User{}, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (repository.User, string, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return repository.User{}, "", "", ErrInvalidCredentials
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", user.Email, false, "bad password")
		return repository.User{}, "", "", ErrInvalidCredentials
	}

	s.log.AuthEvent("login", user.Email, true, "")
	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return repository.User{}, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// Refresh rotates a refresh token: the presented token is revoked whether or
// not it is still valid, and a fresh pair is issued when it was.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return "", "", ErrTokenInvalid
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return "", "", ErrTokenExpired
	}

	_ = s.repo.RevokeRefreshToken(ctx, hash)

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return "", "", ErrTokenInvalid
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	hash := token.HashSHA256(refreshToken)
	return s.repo.RevokeRefreshToken(ctx, hash)
}

// Me returns the caller's account.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.User{}, apperr.NotFound("account not found")
	}
	return user, err
}

// UpdateProfile changes the caller's name and phone.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, rawPhone string) (repository.User, error) {
	var normalizedPhone *string
	if strings.TrimSpace(rawPhone) != "" {
		e164 := phone.NormalizeE164(rawPhone)
		normalizedPhone = &e164
	}
	return s.repo.UpdateProfile(ctx, userID, strings.TrimSpace(fullName), normalizedPhone)
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every open session.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return ErrInvalidCurrentPassword
	}

	if err := password.Compare(user.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCurrentPassword
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	_ = s.repo.RevokeAllRefreshTokens(ctx, userID)
	s.log.AuthEvent("password_change", user.Email, true, "")
	return nil
}

func (s *Service) issueTokens(ctx context.Context, user repository.User) (string, string, error) {
	accessToken, err := s.signJWT(user, s.cfg.GetAccessTokenTTL())
	if err != nil {
		return "", "", err
	}

	refreshToken, err := token.GenerateRandomToken(48)
	if err != nil {
		return "", "", err
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, user.ID, hash, expiresAt); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *Service) signJWT(user repository.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"type":  accessTokenType,
		"roles": []string{user.Role},
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	if user.BusinessID != nil {
		claims["business_id"] = user.BusinessID.String()
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
