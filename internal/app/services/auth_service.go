package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kesher-org/kesher-backend/internal/app/models"
	"github.com/kesher-org/kesher-backend/internal/pkg/apperrors"
	"github.com/kesher-org/kesher-backend/internal/pkg/auth"
)

// AdminStore is the auth service's view of operator accounts
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// LoginResult carries the issued token and its lifetime in seconds
type LoginResult struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// AuthService handles operator login
type AuthService struct {
	adminStore AdminStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(adminStore AdminStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		adminStore: adminStore,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies the credentials and issues an access token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := s.adminStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading admin: %w", err)
	}

	if !auth.CheckPassword(admin.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !admin.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateToken(admin)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	if err := s.adminStore.UpdateLastLogin(ctx, admin.ID, time.Now()); err != nil {
		// Best effort; the login itself already succeeded.
		s.logger.Warn().Err(err).Str("adminId", admin.ID).Msg("Failed to update last login")
	}

	return &LoginResult{Token: token, ExpiresIn: expiresIn}, nil
}
