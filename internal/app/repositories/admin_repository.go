package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kesher-org/kesher-backend/internal/app/models"
	"github.com/kesher-org/kesher-backend/internal/pkg/apperrors"
	"github.com/kesher-org/kesher-backend/internal/pkg/dberrors"
)

// AdminRepository handles database operations for operator accounts
type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{
		db: db,
	}
}

// Create inserts a new admin account
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (id, email, password, full_name, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		admin.ID, admin.Email, admin.Password, admin.FullName, admin.IsActive,
	).Scan(&admin.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "admins_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating admin: %w", err)
	}

	return nil
}

// GetByEmail retrieves an admin by email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
		SELECT id, email, password, full_name, is_active, last_login_at, created_at
		FROM admins
		WHERE email = $1
	`

	var admin models.Admin
	err := r.db.QueryRow(ctx, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.Password,
		&admin.FullName,
		&admin.IsActive,
		&admin.LastLoginAt,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}

	return &admin, nil
}

// UpdateLastLogin stamps the admin's last successful login
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE admins SET last_login_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// ExistsAny reports whether any admin account exists; used by the seeder
func (r *AdminRepository) ExistsAny(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM admins)`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking admin existence: %w", err)
	}
	return exists, nil
}
