package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/campushub/internal/app/models"
	appRepos "github.com/yigit/campushub/internal/app/repositories"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"github.com/yigit/campushub/internal/pkg/auth"
)

const (
	adminEmail  = "admin@campushub.app"
	devTokenTTL = 24 * time.Hour
)

// CreateDefaultData creates the admin account and a sample event when they
// don't exist yet. In development it also logs a bearer token for the admin.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, jwtService *auth.JWTService, development bool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (admin user, sample event)...")
	var finalErr error

	admin, err := repos.UserRepository.GetByEmail(ctx, adminEmail)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		admin = &appModels.User{Name: "Campus Admin", Email: adminEmail, Role: appModels.RoleAdmin}
		if err := repos.UserRepository.Create(ctx, admin); err != nil {
			lgr.Error().Err(err).Msg("Error creating admin user")
			return err
		}
		lgr.Info().Int64("userID", admin.ID).Msg("Admin user created")

		limit := 50
		event := &appModels.Event{
			Title:             "Campus Hackathon",
			Description:       "Build something in a weekend",
			CreatedBy:         admin.ID,
			RegistrationLimit: &limit,
			IsTeamEvent:       true,
			MinTeamSize:       2,
			MaxTeamSize:       4,
		}
		if err := repos.EventRepository.Create(ctx, event); err != nil {
			lgr.Error().Err(err).Msg("Error creating sample event")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Int64("eventID", event.ID).Msg("Sample event created")
		}
	} else if err != nil {
		lgr.Error().Err(err).Msg("Error checking admin user")
		return err
	}

	if development {
		token, err := jwtService.GenerateToken(admin.ID, admin.Role, devTokenTTL)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Int64("userID", admin.ID).Str("token", token).Msg("Development admin token")
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation completed.")
	}
	return finalErr
}
