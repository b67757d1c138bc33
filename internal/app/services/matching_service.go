package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kesher-org/kesher-backend/internal/app/models"
	"github.com/kesher-org/kesher-backend/internal/pkg/apperrors"
	"github.com/kesher-org/kesher-backend/internal/pkg/matching"
)

// MatchingStudentStore is the student-side input of a matching run
type MatchingStudentStore interface {
	GetUnmatched(ctx context.Context) ([]*models.Student, error)
}

// MatchingVolunteerStore is the volunteer-side input of a matching run
type MatchingVolunteerStore interface {
	GetEligible(ctx context.Context) ([]*models.Volunteer, error)
}

// MatchingMatchStore is the persistence gate's view of match storage
type MatchingMatchStore interface {
	ExistsByPair(ctx context.Context, studentID, volunteerID string) (bool, error)
	Create(ctx context.Context, match *models.Match) error
}

// GenerateParams carries the per-request overrides for one matching run.
// Nil fields fall back to the configured defaults.
type GenerateParams struct {
	MinScore       *int
	MaxDistanceKm  *float64
	ResultLimit    *int
	CityFilter     string
	LanguageFilter string
	MatchGender    bool
}

// GenerateResult summarizes one matching run
type GenerateResult struct {
	SuggestedCount int
	Message        string
}

// MatchingService runs the candidate generator, the greedy allocator and the
// match persistence gate as one request-scoped unit of work. It never mutates
// volunteer capacity or student flags in storage; those move only at approval.
type MatchingService struct {
	studentStore   MatchingStudentStore
	volunteerStore MatchingVolunteerStore
	matchStore     MatchingMatchStore
	defaults       matching.Options
	logger         zerolog.Logger
}

// NewMatchingService creates a new matching service instance
func NewMatchingService(
	studentStore MatchingStudentStore,
	volunteerStore MatchingVolunteerStore,
	matchStore MatchingMatchStore,
	defaults matching.Options,
	logger zerolog.Logger,
) *MatchingService {
	return &MatchingService{
		studentStore:   studentStore,
		volunteerStore: volunteerStore,
		matchStore:     matchStore,
		defaults:       defaults,
		logger:         logger,
	}
}

// GenerateMatches computes scored candidates for every unmatched student
// against every under-capacity volunteer, greedily allocates a conflict-free
// subset and records the survivors as pending matches. Pairs that already have
// a match row, whatever its status, are skipped silently. An empty outcome is
// a success, not an error.
func (s *MatchingService) GenerateMatches(ctx context.Context, params GenerateParams) (*GenerateResult, error) {
	opts, err := s.resolveOptions(params)
	if err != nil {
		return nil, err
	}

	students, err := s.studentStore.GetUnmatched(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading unmatched students: %w", err)
	}

	volunteers, err := s.volunteerStore.GetEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading eligible volunteers: %w", err)
	}

	if len(students) == 0 || len(volunteers) == 0 {
		return &GenerateResult{
			SuggestedCount: 0,
			Message:        "No unmatched students or available volunteers; nothing to suggest.",
		}, nil
	}

	candidates := matching.GenerateCandidates(students, volunteers, opts)

	remaining := make(map[string]int, len(volunteers))
	for _, v := range volunteers {
		remaining[v.ID] = v.RemainingCapacity()
	}
	allocated := matching.Allocate(candidates, remaining, opts.ResultLimit)

	created, skipped := s.persistAllocations(ctx, allocated)

	s.logger.Info().
		Int("students", len(students)).
		Int("volunteers", len(volunteers)).
		Int("candidates", len(candidates)).
		Int("allocated", len(allocated)).
		Int("created", created).
		Int("skipped", skipped).
		Msg("Matching run completed")

	return &GenerateResult{
		SuggestedCount: created,
		Message:        summaryMessage(created, skipped),
	}, nil
}

// persistAllocations is the match persistence gate: dedup against existing
// pairs, insert each survivor independently. One failed insert does not abort
// the loop; already-inserted matches stay committed and the run reports a
// partial success.
func (s *MatchingService) persistAllocations(ctx context.Context, allocated []matching.Candidate) (created, skipped int) {
	for _, candidate := range allocated {
		exists, err := s.matchStore.ExistsByPair(ctx, candidate.StudentID, candidate.VolunteerID)
		if err != nil {
			s.logger.Error().Err(err).
				Str("studentId", candidate.StudentID).
				Str("volunteerId", candidate.VolunteerID).
				Msg("Failed to check existing match, skipping pair")
			continue
		}
		if exists {
			skipped++
			continue
		}

		studentID := candidate.StudentID
		volunteerID := candidate.VolunteerID
		match := &models.Match{
			ID:              uuid.New().String(),
			StudentID:       &studentID,
			VolunteerID:     &volunteerID,
			ConfidenceScore: candidate.Score,
			MatchReason:     candidate.Reason,
			Status:          models.MatchStatusPending,
		}

		if err := s.matchStore.Create(ctx, match); err != nil {
			// A concurrent run inserted the same pair between the existence
			// check and the insert; same outcome as the dedup check.
			if errors.Is(err, apperrors.ErrMatchAlreadyExists) {
				skipped++
				continue
			}
			s.logger.Error().Err(err).
				Str("studentId", candidate.StudentID).
				Str("volunteerId", candidate.VolunteerID).
				Msg("Failed to insert match, continuing run")
			continue
		}
		created++
	}

	return created, skipped
}

// resolveOptions merges the request overrides onto the configured defaults
func (s *MatchingService) resolveOptions(params GenerateParams) (matching.Options, error) {
	opts := s.defaults

	if params.MinScore != nil {
		if *params.MinScore < 0 || *params.MinScore > 100 {
			return opts, apperrors.NewBadRequestError("minScore must be between 0 and 100")
		}
		opts.MinScore = *params.MinScore
	}
	if params.MaxDistanceKm != nil {
		if *params.MaxDistanceKm < 0 {
			return opts, apperrors.NewBadRequestError("maxDistance must not be negative")
		}
		opts.MaxDistanceKm = *params.MaxDistanceKm
	}
	if params.ResultLimit != nil {
		if *params.ResultLimit < 1 {
			return opts, apperrors.NewBadRequestError("limit must be at least 1")
		}
		opts.ResultLimit = *params.ResultLimit
	}
	opts.CityFilter = params.CityFilter
	opts.LanguageFilter = params.LanguageFilter
	opts.RequireGenderMatch = params.MatchGender

	return opts, nil
}

func summaryMessage(created, skipped int) string {
	switch {
	case created == 0 && skipped == 0:
		return "No compatible pairs found with the current criteria."
	case created == 0:
		return fmt.Sprintf("No new matches; %d suggested pairs already exist.", skipped)
	case skipped == 0:
		return fmt.Sprintf("Suggested %d new matches for review.", created)
	default:
		return fmt.Sprintf("Suggested %d new matches for review (%d pairs already existed).", created, skipped)
	}
}
