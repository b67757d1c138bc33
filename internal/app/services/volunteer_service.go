package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kesher-org/kesher-backend/internal/app/models"
	"github.com/kesher-org/kesher-backend/internal/pkg/apperrors"
	"github.com/kesher-org/kesher-backend/internal/pkg/geocode"
	"github.com/kesher-org/kesher-backend/internal/pkg/validation"
)

// VolunteerStore is the volunteer service's view of storage
type VolunteerStore interface {
	Create(ctx context.Context, volunteer *models.Volunteer) error
	GetByID(ctx context.Context, id string) (*models.Volunteer, error)
	List(ctx context.Context, active *bool, city, language string, offset uint64, limit int) ([]*models.Volunteer, int64, error)
	Deactivate(ctx context.Context, id string) error
}

// VolunteerService handles volunteer intake, lookups and deactivation
type VolunteerService struct {
	store    VolunteerStore
	geocoder geocode.Geocoder
	logger   zerolog.Logger
}

// NewVolunteerService creates a new volunteer service instance
func NewVolunteerService(store VolunteerStore, geocoder geocode.Geocoder, logger zerolog.Logger) *VolunteerService {
	return &VolunteerService{
		store:    store,
		geocoder: geocoder,
		logger:   logger,
	}
}

// CreateVolunteer validates and inserts a new volunteer
func (s *VolunteerService) CreateVolunteer(ctx context.Context, volunteer *models.Volunteer) error {
	if err := validateVolunteer(volunteer); err != nil {
		return err
	}

	volunteer.ID = uuid.New().String()
	volunteer.CurrentMatches = 0

	if volunteer.Coordinates == nil {
		if coords, ok := s.geocoder.Lookup(volunteer.City); ok {
			volunteer.Coordinates = coords
		} else {
			s.logger.Debug().Str("city", volunteer.City).Msg("City not geocoded, leaving coordinates empty")
		}
	}

	if err := s.store.Create(ctx, volunteer); err != nil {
		return fmt.Errorf("error creating volunteer: %w", err)
	}

	return nil
}

// GetVolunteer retrieves a volunteer by ID
func (s *VolunteerService) GetVolunteer(ctx context.Context, id string) (*models.Volunteer, error) {
	if id == "" {
		return nil, apperrors.NewBadRequestError("volunteer ID is required")
	}
	return s.store.GetByID(ctx, id)
}

// ListVolunteers retrieves volunteers with optional filters
func (s *VolunteerService) ListVolunteers(ctx context.Context, active *bool, city, language string, offset uint64, limit int) ([]*models.Volunteer, int64, error) {
	return s.store.List(ctx, active, city, language, offset, limit)
}

// DeactivateVolunteer removes a volunteer from future matching runs without
// touching already approved pairings
func (s *VolunteerService) DeactivateVolunteer(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewBadRequestError("volunteer ID is required")
	}
	return s.store.Deactivate(ctx, id)
}

func validateVolunteer(volunteer *models.Volunteer) error {
	if volunteer == nil {
		return apperrors.NewBadRequestError("volunteer is required")
	}
	if strings.TrimSpace(volunteer.FullName) == "" {
		return apperrors.NewBadRequestError("full name is required")
	}
	if !validation.CompiledPatterns.Email.MatchString(strings.ToLower(volunteer.Email)) {
		return apperrors.NewBadRequestError("a valid email is required")
	}
	if strings.TrimSpace(volunteer.NativeLanguage) == "" {
		return apperrors.NewBadRequestError("native language is required")
	}
	if volunteer.Capacity < 1 {
		return apperrors.NewBadRequestError("capacity must be at least 1")
	}
	return nil
}
