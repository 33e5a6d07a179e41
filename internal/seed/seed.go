package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/schoolvax/vaccine-portal/internal/app/models"
	appRepos "github.com/schoolvax/vaccine-portal/internal/app/repositories"
	"github.com/schoolvax/vaccine-portal/internal/config"
	"github.com/schoolvax/vaccine-portal/internal/pkg/apperrors"
	"github.com/schoolvax/vaccine-portal/internal/pkg/auth"
)

// CreateDefaultData seeds the default admin account and a starter vaccine
// catalog if they don't exist yet.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	vaccineRepo := appRepos.NewVaccineRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	if err := seedAdminUser(ctx, userRepo, cfg, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedVaccineCatalog(ctx, vaccineRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

// seedAdminUser creates the portal administrator from configuration.
func seedAdminUser(ctx context.Context, userRepo *appRepos.UserRepository, cfg *config.Config, lgr zerolog.Logger) error {
	exists, err := userRepo.ExistsByEmail(ctx, cfg.Admin.Email)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for existing admin user")
		return err
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.User{
		Email:     cfg.Admin.Email,
		Password:  hashed,
		FirstName: "Portal",
		LastName:  "Admin",
		Role:      appModels.RoleAdmin,
		IsActive:  true,
	}

	if _, err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin user")
		return err
	}

	lgr.Info().Str("email", cfg.Admin.Email).Msg("Default admin user created")
	return nil
}

// seedVaccineCatalog inserts the common school immunization vaccines so a
// fresh installation has something to schedule drives against.
func seedVaccineCatalog(ctx context.Context, vaccineRepo *appRepos.VaccineRepository, lgr zerolog.Logger) error {
	expiry := time.Now().AddDate(2, 0, 0)
	vaccines := []*appModels.Vaccine{
		{
			Name:             "MMR",
			Manufacturer:     "Serum Institute",
			Description:      "Measles, mumps and rubella combined vaccine",
			DosesRequired:    2,
			DaysBetweenDoses: 28,
			ExpiryDate:       expiry,
			AvailableDoses:   500,
			Price:            12.50,
		},
		{
			Name:             "Hepatitis B",
			Manufacturer:     "GSK",
			Description:      "Hepatitis B recombinant vaccine",
			DosesRequired:    3,
			DaysBetweenDoses: 30,
			ExpiryDate:       expiry,
			AvailableDoses:   500,
			Price:            9.75,
		},
		{
			Name:             "Tdap",
			Manufacturer:     "Sanofi",
			Description:      "Tetanus, diphtheria and pertussis booster",
			DosesRequired:    1,
			DaysBetweenDoses: 0,
			ExpiryDate:       expiry,
			AvailableDoses:   300,
			Price:            15.00,
		},
	}

	var finalErr error
	for _, vaccine := range vaccines {
		exists, err := vaccineRepo.ExistsByName(ctx, vaccine.Name)
		if err != nil {
			lgr.Error().Err(err).Str("vaccine", vaccine.Name).Msg("Error checking for existing vaccine")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		if _, err := vaccineRepo.Create(ctx, vaccine); err != nil && !errors.Is(err, apperrors.ErrVaccineNameExists) {
			lgr.Error().Err(err).Str("vaccine", vaccine.Name).Msg("Error creating default vaccine")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check complete")
	}
	return finalErr
}
