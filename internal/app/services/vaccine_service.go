package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/app/repositories"
	"github.com/schoolvax/vaccine-portal/internal/pkg/apperrors"
	"github.com/schoolvax/vaccine-portal/internal/pkg/helpers"
)

// VaccineService handles vaccine catalog management
type VaccineService struct {
	vaccineRepo *repositories.VaccineRepository
}

// NewVaccineService creates a new VaccineService
func NewVaccineService(vaccineRepo *repositories.VaccineRepository) *VaccineService {
	return &VaccineService{vaccineRepo: vaccineRepo}
}

// Create adds a vaccine to the catalog. Names are unique.
func (s *VaccineService) Create(ctx context.Context, req *dto.CreateVaccineRequest) (*models.Vaccine, error) {
	vaccine, err := vaccineFromRequest(req.Name, req.Manufacturer, req.Description, req.DosesRequired,
		req.DaysBetweenDoses, req.ExpiryDate, req.AvailableDoses, req.Price)
	if err != nil {
		return nil, err
	}

	id, err := s.vaccineRepo.Create(ctx, vaccine)
	if err != nil {
		return nil, err
	}
	vaccine.ID = id
	return s.vaccineRepo.GetByID(ctx, id)
}

// GetByID retrieves a vaccine
func (s *VaccineService) GetByID(ctx context.Context, id int64) (*models.Vaccine, error) {
	return s.vaccineRepo.GetByID(ctx, id)
}

// GetAll lists vaccines, optionally filtered by name, paginated
func (s *VaccineService) GetAll(ctx context.Context, search string, page, pageSize int) ([]*models.Vaccine, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return s.vaccineRepo.GetAll(ctx, search, offset, limit)
}

// Update modifies a vaccine
func (s *VaccineService) Update(ctx context.Context, id int64, req *dto.UpdateVaccineRequest) (*models.Vaccine, error) {
	if _, err := s.vaccineRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	vaccine, err := vaccineFromRequest(req.Name, req.Manufacturer, req.Description, req.DosesRequired,
		req.DaysBetweenDoses, req.ExpiryDate, req.AvailableDoses, req.Price)
	if err != nil {
		return nil, err
	}
	vaccine.ID = id

	if err := s.vaccineRepo.Update(ctx, vaccine); err != nil {
		return nil, err
	}
	return s.vaccineRepo.GetByID(ctx, id)
}

// Delete removes a vaccine. Vaccines referenced by drives are kept.
func (s *VaccineService) Delete(ctx context.Context, id int64) error {
	return s.vaccineRepo.Delete(ctx, id)
}

func vaccineFromRequest(name, manufacturer, description string, dosesRequired, daysBetween int, expiryDate string, availableDoses int, price float64) (*models.Vaccine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: vaccine name cannot be empty", apperrors.ErrValidationFailed)
	}
	if dosesRequired < 1 {
		return nil, fmt.Errorf("%w: dosesRequired must be at least 1", apperrors.ErrValidationFailed)
	}

	var expiry time.Time
	if expiryDate != "" {
		parsed, err := helpers.ParseDate(expiryDate)
		if err != nil {
			return nil, err
		}
		expiry = parsed
	}

	return &models.Vaccine{
		Name:             name,
		Manufacturer:     manufacturer,
		Description:      description,
		DosesRequired:    dosesRequired,
		DaysBetweenDoses: daysBetween,
		ExpiryDate:       expiry,
		AvailableDoses:   availableDoses,
		Price:            price,
	}, nil
}
