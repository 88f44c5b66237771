package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/kaan/eduflow/internal/app/models"
	appRepos "github.com/kaan/eduflow/internal/app/repositories"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
)

// CreateDefaultData creates the default instructor account if it doesn't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	instructorRepo := appRepos.NewInstructorRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Instructor123!"), 12)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default instructor password")
		return err
	}

	instructor := &appModels.Instructor{
		Name:     "Demo Instructor",
		Email:    "instructor@eduflow.dev",
		Password: string(hashedPassword),
	}

	id, err := instructorRepo.Create(ctx, instructor)
	if err != nil {
		if errors.Is(err, apperrors.ErrInstructorAlreadyExists) {
			lgr.Info().Msg("Default instructor already exists, skipping creation")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default instructor")
		return err
	}

	lgr.Info().Int64("instructorID", id).Msg("Default instructor created successfully")
	return nil
}
