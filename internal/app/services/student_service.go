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

// StudentStore is the student service's view of storage
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context, matched *bool, offset uint64, limit int) ([]*models.Student, int64, error)
}

// StudentService handles student intake and lookups
type StudentService struct {
	store    StudentStore
	geocoder geocode.Geocoder
	logger   zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(store StudentStore, geocoder geocode.Geocoder, logger zerolog.Logger) *StudentService {
	return &StudentService{
		store:    store,
		geocoder: geocoder,
		logger:   logger,
	}
}

// CreateStudent validates and inserts a new student. The city is geocoded
// best effort; a miss leaves coordinates nil and the record still fully
// participates in matching under the co-located fallback.
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) error {
	if err := validateStudent(student); err != nil {
		return err
	}

	student.ID = uuid.New().String()
	student.IsMatched = false

	if student.Coordinates == nil {
		if coords, ok := s.geocoder.Lookup(student.City); ok {
			student.Coordinates = coords
		} else {
			s.logger.Debug().Str("city", student.City).Msg("City not geocoded, leaving coordinates empty")
		}
	}

	if err := s.store.Create(ctx, student); err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetStudent retrieves a student by ID
func (s *StudentService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	if id == "" {
		return nil, apperrors.NewBadRequestError("student ID is required")
	}
	return s.store.GetByID(ctx, id)
}

// ListStudents retrieves students with optional matched-state filtering
func (s *StudentService) ListStudents(ctx context.Context, matched *bool, offset uint64, limit int) ([]*models.Student, int64, error) {
	return s.store.List(ctx, matched, offset, limit)
}

func validateStudent(student *models.Student) error {
	if student == nil {
		return apperrors.NewBadRequestError("student is required")
	}
	if strings.TrimSpace(student.FullName) == "" {
		return apperrors.NewBadRequestError("full name is required")
	}
	if !validation.CompiledPatterns.Email.MatchString(strings.ToLower(student.Email)) {
		return apperrors.NewBadRequestError("a valid email is required")
	}
	if strings.TrimSpace(student.NativeLanguage) == "" {
		return apperrors.NewBadRequestError("native language is required")
	}
	return nil
}
