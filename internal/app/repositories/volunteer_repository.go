package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kesher-org/kesher-backend/internal/app/models"
	"github.com/kesher-org/kesher-backend/internal/pkg/apperrors"
	"github.com/kesher-org/kesher-backend/internal/pkg/dberrors"
)

// VolunteerRepository handles database operations for volunteers
type VolunteerRepository struct {
	db *pgxpool.Pool
}

// NewVolunteerRepository creates a new volunteer repository
func NewVolunteerRepository(db *pgxpool.Pool) *VolunteerRepository {
	return &VolunteerRepository{
		db: db,
	}
}

const volunteerColumns = `
	id, full_name, email, phone, city, native_language, gender, capacity,
	current_matches, is_active, scholarship_active, latitude, longitude, created_at
`

// Create inserts a new volunteer record
func (r *VolunteerRepository) Create(ctx context.Context, volunteer *models.Volunteer) error {
	query := `
		INSERT INTO volunteers (id, full_name, email, phone, city, native_language, gender,
			capacity, current_matches, is_active, scholarship_active, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`

	var lat, lon *float64
	if volunteer.Coordinates != nil {
		lat = &volunteer.Coordinates.Latitude
		lon = &volunteer.Coordinates.Longitude
	}

	err := r.db.QueryRow(ctx, query,
		volunteer.ID, volunteer.FullName, volunteer.Email, volunteer.Phone,
		volunteer.City, volunteer.NativeLanguage, volunteer.Gender,
		volunteer.Capacity, volunteer.CurrentMatches, volunteer.IsActive,
		volunteer.ScholarshipActive, lat, lon,
	).Scan(&volunteer.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "volunteers_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating volunteer: %w", err)
	}

	return nil
}

// GetByID retrieves a volunteer by ID
func (r *VolunteerRepository) GetByID(ctx context.Context, id string) (*models.Volunteer, error) {
	query := `SELECT ` + volunteerColumns + ` FROM volunteers WHERE id = $1`

	volunteer, err := scanVolunteer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVolunteerNotFound
		}
		return nil, fmt.Errorf("error retrieving volunteer: %w", err)
	}

	return volunteer, nil
}

// GetEligible retrieves every volunteer that may enter a matching run: active,
// program-enabled and with spare capacity. Free-text city/language filters are
// applied in the candidate generator, not here.
func (r *VolunteerRepository) GetEligible(ctx context.Context) ([]*models.Volunteer, error) {
	query := `
		SELECT ` + volunteerColumns + `
		FROM volunteers
		WHERE is_active = TRUE
		  AND scholarship_active = TRUE
		  AND current_matches < capacity
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving eligible volunteers: %w", err)
	}
	defer rows.Close()

	return collectVolunteers(rows)
}

// List retrieves volunteers with optional filters and pagination
func (r *VolunteerRepository) List(ctx context.Context, active *bool, city, language string, offset uint64, limit int) ([]*models.Volunteer, int64, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if active != nil {
		args = append(args, *active)
		where += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	if city != "" {
		args = append(args, city)
		where += fmt.Sprintf(" AND LOWER(city) = LOWER($%d)", len(args))
	}
	if language != "" {
		args = append(args, language)
		where += fmt.Sprintf(" AND LOWER(native_language) = LOWER($%d)", len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM volunteers " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting volunteers: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM volunteers %s ORDER BY created_at DESC OFFSET $%d LIMIT $%d`,
		volunteerColumns, where, len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing volunteers: %w", err)
	}
	defer rows.Close()

	volunteers, err := collectVolunteers(rows)
	if err != nil {
		return nil, 0, err
	}

	return volunteers, total, nil
}

// Deactivate flags a volunteer as no longer accepting pairings. Existing
// approved matches are untouched.
func (r *VolunteerRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE volunteers SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating volunteer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrVolunteerNotFound
	}
	return nil
}

func scanVolunteer(row pgx.Row) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	var lat, lon *float64

	err := row.Scan(
		&volunteer.ID,
		&volunteer.FullName,
		&volunteer.Email,
		&volunteer.Phone,
		&volunteer.City,
		&volunteer.NativeLanguage,
		&volunteer.Gender,
		&volunteer.Capacity,
		&volunteer.CurrentMatches,
		&volunteer.IsActive,
		&volunteer.ScholarshipActive,
		&lat,
		&lon,
		&volunteer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat != nil && lon != nil {
		volunteer.Coordinates = &models.Coordinates{Latitude: *lat, Longitude: *lon}
	}

	return &volunteer, nil
}

func collectVolunteers(rows pgx.Rows) ([]*models.Volunteer, error) {
	var volunteers []*models.Volunteer
	for rows.Next() {
		volunteer, err := scanVolunteer(rows)
		if err != nil {
			return nil, err
		}
		volunteers = append(volunteers, volunteer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return volunteers, nil
}
