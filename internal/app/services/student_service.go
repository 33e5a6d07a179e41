package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/app/repositories"
	"github.com/schoolvax/vaccine-portal/internal/pkg/apperrors"
	"github.com/schoolvax/vaccine-portal/internal/pkg/helpers"
	"github.com/schoolvax/vaccine-portal/internal/pkg/logger"
	"github.com/schoolvax/vaccine-portal/internal/pkg/validation"
)

// rollPrefix is the school roll number scheme: ROLL-<year>-<seq>.
const rollPrefix = "ROLL"

// StudentService handles student registration and lookup
type StudentService struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo *repositories.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// Create registers a student, generating the next roll number for the
// current year.
func (s *StudentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	dob, err := helpers.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	if dob.After(time.Now()) {
		return nil, fmt.Errorf("%w: date of birth cannot be in the future", apperrors.ErrValidationFailed)
	}

	grade := strings.TrimSpace(req.Grade)
	if !validation.IsValidGrade(grade) {
		return nil, fmt.Errorf("%w: unrecognized grade %q", apperrors.ErrValidationFailed, req.Grade)
	}
	if req.ParentEmail != "" && !validation.IsValidEmail(strings.ToLower(req.ParentEmail)) {
		return nil, fmt.Errorf("%w: invalid parent email %q", apperrors.ErrValidationFailed, req.ParentEmail)
	}

	rollNumber, err := s.nextRollNumber(ctx, time.Now().Year())
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		StudentID:     rollNumber,
		Name:          strings.TrimSpace(req.Name),
		Grade:         grade,
		DateOfBirth:   dob,
		Gender:        req.Gender,
		ParentName:    req.ParentName,
		ParentEmail:   req.ParentEmail,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	logger.Info().Str("studentID", student.StudentID).Str("grade", student.Grade).Msg("Student registered")
	return student, nil
}

// nextRollNumber allocates the next sequential roll number for a year.
func (s *StudentService) nextRollNumber(ctx context.Context, year int) (string, error) {
	last, err := s.studentRepo.LastRollNumber(ctx, year)
	if err != nil {
		return "", err
	}

	next := 1
	if last != "" {
		parts := strings.Split(last, "-")
		seq, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			return "", fmt.Errorf("malformed roll number %q: %w", last, err)
		}
		next = seq + 1
	}

	return fmt.Sprintf("%s-%d-%04d", rollPrefix, year, next), nil
}

// GetByID retrieves a student together with its record flag
func (s *StudentService) GetByID(ctx context.Context, studentID string) (*models.Student, bool, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, false, err
	}
	hasRecords, err := s.studentRepo.HasVaccinationRecords(ctx, studentID)
	if err != nil {
		return nil, false, err
	}
	return student, hasRecords, nil
}

// GetAll lists students matching the filter, paginated
func (s *StudentService) GetAll(ctx context.Context, filter repositories.StudentFilter, page, pageSize int) ([]*models.Student, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return s.studentRepo.GetAll(ctx, filter, offset, limit)
}

// Update modifies a student's details. The roll number never changes.
func (s *StudentService) Update(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	dob, err := helpers.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	grade := strings.TrimSpace(req.Grade)
	if !validation.IsValidGrade(grade) {
		return nil, fmt.Errorf("%w: unrecognized grade %q", apperrors.ErrValidationFailed, req.Grade)
	}

	student.Name = strings.TrimSpace(req.Name)
	student.Grade = grade
	student.DateOfBirth = dob
	student.Gender = req.Gender
	student.ParentName = req.ParentName
	student.ParentEmail = req.ParentEmail
	student.ContactNumber = req.ContactNumber
	student.Address = req.Address
	if req.IsActive != nil {
		student.IsActive = *req.IsActive
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Deactivate soft deletes a student. Vaccination records stay.
func (s *StudentService) Deactivate(ctx context.Context, studentID string) error {
	return s.studentRepo.SoftDelete(ctx, studentID)
}

// csvHeader is the required header of a student import file.
var csvHeader = []string{"name", "grade", "dateOfBirth", "gender", "parentName", "parentEmail", "contactNumber", "address"}

// ImportCSV bulk-registers students from a CSV stream. Rows are
// processed independently: a bad row is reported and skipped, the
// rest are still imported.
func (s *StudentService) ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read CSV header", apperrors.ErrValidationFailed)
	}
	if err := validateCSVHeader(header); err != nil {
		return nil, err
	}

	result := &dto.ImportResult{Errors: []string{}}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Total++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		result.Total++
		req := &dto.CreateStudentRequest{
			Name:          row[0],
			Grade:         row[1],
			DateOfBirth:   row[2],
			Gender:        row[3],
			ParentName:    row[4],
			ParentEmail:   row[5],
			ContactNumber: row[6],
			Address:       row[7],
		}
		if req.Name == "" || req.Grade == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: name and grade are required", line))
			continue
		}
		if _, err := s.Create(ctx, req); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Imported++
	}

	logger.Info().Int("total", result.Total).Int("imported", result.Imported).Msg("Student CSV import finished")
	return result, nil
}

func validateCSVHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("%w: expected %d CSV columns, got %d", apperrors.ErrValidationFailed, len(csvHeader), len(header))
	}
	for i, want := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("%w: expected column %q, got %q", apperrors.ErrValidationFailed, want, header[i])
		}
	}
	return nil
}
