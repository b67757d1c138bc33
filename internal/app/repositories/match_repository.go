package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kesher-org/kesher-backend/internal/app/models"
	"github.com/kesher-org/kesher-backend/internal/db"
	"github.com/kesher-org/kesher-backend/internal/pkg/apperrors"
	"github.com/kesher-org/kesher-backend/internal/pkg/dberrors"
)

// matchPairConstraint is the unique constraint guaranteeing at most one match
// row per (student, volunteer) pair regardless of status
const matchPairConstraint = "matches_student_id_volunteer_id_key"

// MatchRepository handles database operations for matches, including the
// transactional approval commit
type MatchRepository struct {
	db *pgxpool.Pool
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{
		db: db,
	}
}

const matchColumns = `
	id, student_id, volunteer_id, confidence_score, match_reason, status,
	approved_at, created_at
`

// Create inserts a new pending match. Returns ErrMatchAlreadyExists when a row
// for the same (student, volunteer) pair is already present, whatever its
// status; the persistence gate treats that as a silent skip.
func (r *MatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (id, student_id, volunteer_id, confidence_score, match_reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		match.ID, match.StudentID, match.VolunteerID,
		match.ConfidenceScore, match.MatchReason, match.Status,
	).Scan(&match.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, matchPairConstraint) {
			return apperrors.ErrMatchAlreadyExists
		}
		return fmt.Errorf("error creating match: %w", err)
	}

	return nil
}

// ExistsByPair checks whether any match row exists for the pair, regardless of status
func (r *MatchRepository) ExistsByPair(ctx context.Context, studentID, volunteerID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM matches WHERE student_id = $1 AND volunteer_id = $2)`,
		studentID, volunteerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking match existence: %w", err)
	}

	return exists, nil
}

// GetByID retrieves a match by ID
func (r *MatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, fmt.Errorf("error retrieving match: %w", err)
	}

	return match, nil
}

// GetByIDWithParties retrieves a match together with its student and
// volunteer. A dangling reference (party deleted after the match was created)
// leaves the relation nil; the state machine treats that as not found.
func (r *MatchRepository) GetByIDWithParties(ctx context.Context, id string) (*models.Match, error) {
	match, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if match.StudentID != nil {
		student, err := NewStudentRepository(r.db).GetByID(ctx, *match.StudentID)
		if err != nil && !errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		match.Student = student
	}

	if match.VolunteerID != nil {
		volunteer, err := NewVolunteerRepository(r.db).GetByID(ctx, *match.VolunteerID)
		if err != nil && !errors.Is(err, apperrors.ErrVolunteerNotFound) {
			return nil, err
		}
		match.Volunteer = volunteer
	}

	return match, nil
}

// List retrieves matches with optional status filtering and pagination
func (r *MatchRepository) List(ctx context.Context, status models.MatchStatus, offset uint64, limit int) ([]*models.Match, int64, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = "WHERE status = $1"
		args = append(args, status)
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM matches " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting matches: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM matches %s ORDER BY confidence_score DESC, created_at DESC OFFSET $%d LIMIT $%d`,
		matchColumns, where, len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, 0, err
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return matches, total, nil
}

// Approve commits the approval as one all-or-nothing unit: the match flips to
// approved with approved_at stamped, the volunteer's current_matches is
// incremented and the student's is_matched flag is set. Every write is a
// conditional update; zero rows affected on any of them aborts the whole
// transaction with the matching conflict error, so the loser of a concurrent
// approval race always observes a Conflict and never a silent success.
func (r *MatchRepository) Approve(ctx context.Context, matchID, studentID, volunteerID string) (time.Time, error) {
	var approvedAt time.Time

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE matches
			SET status = $1, approved_at = NOW()
			WHERE id = $2 AND status = $3
			RETURNING approved_at`,
			models.MatchStatusApproved, matchID, models.MatchStatusPending,
		).Scan(&approvedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return r.classifyStatusConflict(ctx, tx, matchID)
			}
			return fmt.Errorf("error approving match: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE volunteers
			SET current_matches = current_matches + 1
			WHERE id = $1 AND current_matches < capacity`,
			volunteerID)
		if err != nil {
			return fmt.Errorf("error incrementing volunteer matches: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrVolunteerAtCapacity
		}

		tag, err = tx.Exec(ctx, `
			UPDATE students
			SET is_matched = TRUE
			WHERE id = $1 AND is_matched = FALSE`,
			studentID)
		if err != nil {
			return fmt.Errorf("error flagging student as matched: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrStudentAlreadyMatched
		}

		return nil
	})
	if err != nil {
		return time.Time{}, err
	}

	return approvedAt, nil
}

// Reject flips a pending match to rejected. No counters move.
func (r *MatchRepository) Reject(ctx context.Context, matchID string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE matches
			SET status = $1
			WHERE id = $2 AND status = $3`,
			models.MatchStatusRejected, matchID, models.MatchStatusPending)
		if err != nil {
			return fmt.Errorf("error rejecting match: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return r.classifyStatusConflict(ctx, tx, matchID)
		}
		return nil
	})
}

// classifyStatusConflict distinguishes why a conditional status write matched
// zero rows: the match is gone, already approved or already rejected
func (r *MatchRepository) classifyStatusConflict(ctx context.Context, tx pgx.Tx, matchID string) error {
	var status models.MatchStatus
	err := tx.QueryRow(ctx, `SELECT status FROM matches WHERE id = $1`, matchID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrMatchNotFound
		}
		return fmt.Errorf("error reading match status: %w", err)
	}

	switch status {
	case models.MatchStatusApproved:
		return apperrors.ErrMatchAlreadyApproved
	case models.MatchStatusRejected:
		return apperrors.ErrMatchAlreadyRejected
	default:
		// Pending again means another writer rolled back; report a plain conflict.
		return apperrors.ErrConflict
	}
}

func scanMatch(row pgx.Row) (*models.Match, error) {
	var match models.Match
	err := row.Scan(
		&match.ID,
		&match.StudentID,
		&match.VolunteerID,
		&match.ConfidenceScore,
		&match.MatchReason,
		&match.Status,
		&match.ApprovedAt,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &match, nil
}
