package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/kesher-org/kesher-backend/internal/app/models"
	appRepos "github.com/kesher-org/kesher-backend/internal/app/repositories"
	"github.com/kesher-org/kesher-backend/internal/pkg/auth"
)

const defaultAdminEmail = "admin@kesher.org"

// CreateDefaultData creates the initial operator account when the admins
// table is empty, so a fresh deployment can log in. The password comes from
// ADMIN_INITIAL_PASSWORD; without it no account is created.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	adminRepo := appRepos.NewAdminRepository(dbPool)

	exists, err := adminRepo.ExistsAny(ctx)
	if err != nil {
		return fmt.Errorf("error checking for existing admins: %w", err)
	}
	if exists {
		lgr.Info().Msg("Admin account already exists, skipping seed")
		return nil
	}

	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if password == "" {
		lgr.Warn().Msg("ADMIN_INITIAL_PASSWORD not set, skipping default admin creation")
		return nil
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	admin := &appModels.Admin{
		ID:       uuid.New().String(),
		Email:    defaultAdminEmail,
		Password: hashedPassword,
		FullName: "Kesher Admin",
		IsActive: true,
	}

	if err := adminRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("error creating default admin: %w", err)
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}
