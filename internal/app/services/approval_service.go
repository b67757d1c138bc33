package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kesher-org/kesher-backend/internal/app/models"
	"github.com/kesher-org/kesher-backend/internal/pkg/apperrors"
)

// ApprovalStore is the state machine's view of storage. Approve must apply the
// status flip, the approved_at stamp, the volunteer counter increment and the
// student flag as a single all-or-nothing unit, and must fail with the
// matching conflict error when any conditional write affects zero rows.
type ApprovalStore interface {
	GetByIDWithParties(ctx context.Context, id string) (*models.Match, error)
	Approve(ctx context.Context, matchID, studentID, volunteerID string) (time.Time, error)
	Reject(ctx context.Context, matchID string) error
}

// ApprovalNotifier is told about committed approvals. Dispatch happens after
// the transaction and is never awaited for correctness.
type ApprovalNotifier interface {
	MatchApproved(match *models.Match)
}

// StatusResult is the outcome of one status update
type StatusResult struct {
	MatchID string `json:"matchId"`
	Message string `json:"message"`
}

// ApprovalService transitions matches between pending and the terminal
// approved/rejected states. Volunteer current_matches and student is_matched
// are written only here; the allocator's capacity bookkeeping is advisory and
// the checks are repeated authoritatively at commit time.
type ApprovalService struct {
	store    ApprovalStore
	notifier ApprovalNotifier
	logger   zerolog.Logger
}

// NewApprovalService creates a new approval service instance
func NewApprovalService(store ApprovalStore, notifier ApprovalNotifier, logger zerolog.Logger) *ApprovalService {
	return &ApprovalService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// UpdateMatchStatus performs one approve or reject transition. Preconditions
// are verified on a fresh load for friendly error context, then enforced again
// inside the store's conditional writes; two concurrent approvals of the same
// match therefore have exactly one winner and the loser receives a Conflict.
func (s *ApprovalService) UpdateMatchStatus(ctx context.Context, matchID string, action models.MatchAction) (*StatusResult, error) {
	if matchID == "" {
		return nil, apperrors.NewBadRequestError("matchId is required")
	}
	if action != models.MatchActionApprove && action != models.MatchActionReject {
		return nil, apperrors.NewBadRequestError(`action must be "approve" or "reject"`)
	}

	match, err := s.store.GetByIDWithParties(ctx, matchID)
	if err != nil {
		return nil, err
	}

	// Dangling references (party deleted after the match was created) read as
	// not found rather than as a broken record.
	if match.Student == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound, "the student linked to this match no longer exists")
	}
	if match.Volunteer == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrVolunteerNotFound, "the volunteer linked to this match no longer exists")
	}

	if match.Status.IsTerminal() {
		return nil, s.terminalStatusError(match)
	}

	if action == models.MatchActionReject {
		if err := s.store.Reject(ctx, matchID); err != nil {
			return nil, s.decorateConflict(err, match)
		}

		s.logger.Info().Str("matchId", matchID).Msg("Match rejected")
		return &StatusResult{
			MatchID: matchID,
			Message: fmt.Sprintf("Match between %s and %s rejected.", match.Student.FullName, match.Volunteer.FullName),
		}, nil
	}

	// Advisory pre-checks; the same conditions guard the conditional writes
	// inside Approve, which is what actually closes the race.
	if match.Volunteer.CurrentMatches >= match.Volunteer.Capacity {
		return nil, s.capacityConflict(match.Volunteer)
	}
	if match.Student.IsMatched {
		return nil, s.studentConflict(match.Student)
	}

	approvedAt, err := s.store.Approve(ctx, matchID, match.Student.ID, match.Volunteer.ID)
	if err != nil {
		return nil, s.decorateConflict(err, match)
	}

	match.Status = models.MatchStatusApproved
	match.ApprovedAt = &approvedAt

	if s.notifier != nil {
		s.notifier.MatchApproved(match)
	}

	s.logger.Info().
		Str("matchId", matchID).
		Str("studentId", match.Student.ID).
		Str("volunteerId", match.Volunteer.ID).
		Msg("Match approved")

	return &StatusResult{
		MatchID: matchID,
		Message: fmt.Sprintf("Match between %s and %s approved.", match.Student.FullName, match.Volunteer.FullName),
	}, nil
}

// BatchItem is one entry of a batch status update
type BatchItem struct {
	MatchID string
	Action  models.MatchAction
}

// BatchItemResult reports the outcome of one batch entry
type BatchItemResult struct {
	MatchID string `json:"matchId"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// UpdateMatchStatusBatch applies independent status updates one by one.
// Partial failure is expected and reported per item; nothing is rolled back.
func (s *ApprovalService) UpdateMatchStatusBatch(ctx context.Context, items []BatchItem) []BatchItemResult {
	results := make([]BatchItemResult, 0, len(items))
	for _, item := range items {
		result, err := s.UpdateMatchStatus(ctx, item.MatchID, item.Action)
		if err != nil {
			results = append(results, BatchItemResult{
				MatchID: item.MatchID,
				Success: false,
				Error:   err.Error(),
			})
			continue
		}
		results = append(results, BatchItemResult{
			MatchID: item.MatchID,
			Success: true,
			Message: result.Message,
		})
	}
	return results
}

// terminalStatusError distinguishes the two terminal states in the message
func (s *ApprovalService) terminalStatusError(match *models.Match) error {
	if match.Status == models.MatchStatusApproved {
		return apperrors.NewCustomError(apperrors.ErrMatchAlreadyApproved,
			fmt.Sprintf("match %s has already been approved", match.ID))
	}
	return apperrors.NewCustomError(apperrors.ErrMatchAlreadyRejected,
		fmt.Sprintf("match %s has already been rejected", match.ID))
}

// decorateConflict attaches human-readable context to conflicts surfaced by
// the store's conditional writes
func (s *ApprovalService) decorateConflict(err error, match *models.Match) error {
	switch {
	case errors.Is(err, apperrors.ErrVolunteerAtCapacity):
		return s.capacityConflict(match.Volunteer)
	case errors.Is(err, apperrors.ErrStudentAlreadyMatched):
		return s.studentConflict(match.Student)
	case errors.Is(err, apperrors.ErrMatchAlreadyApproved), errors.Is(err, apperrors.ErrMatchAlreadyRejected):
		match.Status = models.MatchStatusApproved
		if errors.Is(err, apperrors.ErrMatchAlreadyRejected) {
			match.Status = models.MatchStatusRejected
		}
		return s.terminalStatusError(match)
	default:
		return err
	}
}

func (s *ApprovalService) capacityConflict(volunteer *models.Volunteer) error {
	return apperrors.NewCustomError(apperrors.ErrVolunteerAtCapacity,
		fmt.Sprintf("%s is at full capacity (%d of %d students)",
			volunteer.FullName, volunteer.CurrentMatches, volunteer.Capacity)).
		WithDetails(map[string]interface{}{
			"volunteerName":  volunteer.FullName,
			"capacity":       volunteer.Capacity,
			"currentMatches": volunteer.CurrentMatches,
		})
}

func (s *ApprovalService) studentConflict(student *models.Student) error {
	return apperrors.NewCustomError(apperrors.ErrStudentAlreadyMatched,
		fmt.Sprintf("%s was already matched with another volunteer", student.FullName)).
		WithDetails(map[string]interface{}{
			"studentName": student.FullName,
		})
}
