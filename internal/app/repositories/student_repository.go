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

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentColumns = `
	id, full_name, email, phone, city, native_language, gender,
	special_request, latitude, longitude, is_matched, created_at
`

// Create inserts a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (id, full_name, email, phone, city, native_language, gender,
			special_request, latitude, longitude, is_matched)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	var lat, lon *float64
	if student.Coordinates != nil {
		lat = &student.Coordinates.Latitude
		lon = &student.Coordinates.Longitude
	}

	err := r.db.QueryRow(ctx, query,
		student.ID, student.FullName, student.Email, student.Phone,
		student.City, student.NativeLanguage, student.Gender,
		student.SpecialRequest, lat, lon, student.IsMatched,
	).Scan(&student.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetUnmatched retrieves every student without an approved match. This is the
// student side of the candidate generator's input.
func (r *StudentRepository) GetUnmatched(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE is_matched = FALSE`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving unmatched students: %w", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

// List retrieves students with optional matched-state filtering and pagination
func (r *StudentRepository) List(ctx context.Context, matched *bool, offset uint64, limit int) ([]*models.Student, int64, error) {
	where := ""
	args := []interface{}{}
	if matched != nil {
		where = "WHERE is_matched = $1"
		args = append(args, *matched)
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM students " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM students %s ORDER BY created_at DESC OFFSET $%d LIMIT $%d`,
		studentColumns, where, len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students, err := collectStudents(rows)
	if err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// scanStudent scans one student row, folding the nullable coordinate columns
// into a single optional Coordinates value
func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var lat, lon *float64

	err := row.Scan(
		&student.ID,
		&student.FullName,
		&student.Email,
		&student.Phone,
		&student.City,
		&student.NativeLanguage,
		&student.Gender,
		&student.SpecialRequest,
		&lat,
		&lon,
		&student.IsMatched,
		&student.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat != nil && lon != nil {
		student.Coordinates = &models.Coordinates{Latitude: *lat, Longitude: *lon}
	}

	return &student, nil
}

func collectStudents(rows pgx.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
