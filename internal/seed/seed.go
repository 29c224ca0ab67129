package seed

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/coursehub/regportal/internal/app/models"
	appRepos "github.com/coursehub/regportal/internal/app/repositories"
	"github.com/coursehub/regportal/internal/pkg/auth"
)

const defaultStaffUsername = "admin"

// CreateDefaultData ensures a staff account exists so the portal is usable
// after a fresh migration. The account is only created when
// SEED_STAFF_PASSWORD is set; an existing username is left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	username := os.Getenv("SEED_STAFF_USERNAME")
	if username == "" {
		username = defaultStaffUsername
	}
	password := os.Getenv("SEED_STAFF_PASSWORD")
	if password == "" {
		lgr.Info().Msg("SEED_STAFF_PASSWORD not set, skipping staff account seed")
		return nil
	}

	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		lgr.Debug().Str("username", username).Msg("Staff account already exists, skipping seed")
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	staff := &appModels.User{
		Username:  username,
		Password:  hashed,
		FirstName: "Portal",
		LastName:  "Staff",
		RoleType:  appModels.RoleStaff,
	}
	if err := userRepo.CreateStaff(ctx, staff); err != nil {
		return err
	}

	lgr.Info().Str("username", username).Int64("userID", staff.ID).Msg("Default staff account created")
	return nil
}
