package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/pkg/apperrors"
	"github.com/schoolvax/vaccine-portal/internal/pkg/dberrors"
	"github.com/schoolvax/vaccine-portal/internal/pkg/logger"
)

// StudentFilter holds the optional filters for student listing
type StudentFilter struct {
	Search   string // matches name or student_id, case insensitive
	Grade    string
	IsActive *bool
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const studentColumns = "student_id, name, grade, date_of_birth, gender, parent_name, parent_email, contact_number, address, is_active, created_at, updated_at"

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.StudentID,
		&student.Name,
		&student.Grade,
		&student.DateOfBirth,
		&student.Gender,
		&student.ParentName,
		&student.ParentEmail,
		&student.ContactNumber,
		&student.Address,
		&student.IsActive,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// Create inserts a new student with its pre-generated roll number
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("students").
		Columns("student_id", "name", "grade", "date_of_birth", "gender",
			"parent_name", "parent_email", "contact_number", "address",
			"is_active", "created_at", "updated_at").
		Values(student.StudentID, student.Name, student.Grade, student.DateOfBirth, student.Gender,
			student.ParentName, student.ParentEmail, student.ContactNumber, student.Address,
			true, now, now).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Str("studentID", student.StudentID).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	student.IsActive = true
	student.CreatedAt = now
	student.UpdatedAt = now
	return nil
}

// GetByID retrieves a student by roll number
func (r *StudentRepository) GetByID(ctx context.Context, studentID string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		Where(squirrel.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// GetAll retrieves students matching the filter, paginated
func (r *StudentRepository) GetAll(ctx context.Context, filter StudentFilter, offset, limit int) ([]*models.Student, int64, error) {
	base := r.sb.Select(studentColumns).From("students")
	countBase := r.sb.Select("COUNT(*)").From("students")

	conds := r.filterConditions(filter)
	for _, cond := range conds {
		base = base.Where(cond)
		countBase = countBase.Where(cond)
	}

	countSql, countArgs, err := countBase.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count students SQL")
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	sql, args, err := base.
		OrderBy("student_id ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all students SQL")
		return nil, 0, fmt.Errorf("failed to build get all students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all students query")
		return nil, 0, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row during get all")
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, 0, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, total, nil
}

func (r *StudentRepository) filterConditions(filter StudentFilter) []squirrel.Sqlizer {
	conds := []squirrel.Sqlizer{}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"student_id": pattern},
		})
	}
	if filter.Grade != "" {
		conds = append(conds, squirrel.Eq{"grade": filter.Grade})
	}
	if filter.IsActive != nil {
		conds = append(conds, squirrel.Eq{"is_active": *filter.IsActive})
	}
	return conds
}

// GetAllActive retrieves every active student, unpaginated.
// Dashboard aggregation works over the full population.
func (r *StudentRepository) GetAllActive(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("student_id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get active students SQL")
		return nil, fmt.Errorf("failed to build get active students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get active students query")
		return nil, fmt.Errorf("error querying active students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Update updates an existing student's mutable fields
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":           student.Name,
			"grade":          student.Grade,
			"date_of_birth":  student.DateOfBirth,
			"gender":         student.Gender,
			"parent_name":    student.ParentName,
			"parent_email":   student.ParentEmail,
			"contact_number": student.ContactNumber,
			"address":        student.Address,
			"is_active":      student.IsActive,
			"updated_at":     time.Now(),
		}).
		Where(squirrel.Eq{"student_id": student.StudentID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", student.StudentID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// SoftDelete deactivates a student without removing their records
func (r *StudentRepository) SoftDelete(ctx context.Context, studentID string) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building deactivate student SQL")
		return fmt.Errorf("failed to build deactivate student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error executing deactivate student query")
		return fmt.Errorf("error deactivating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// HasVaccinationRecords reports whether any record references the student
func (r *StudentRepository) HasVaccinationRecords(ctx context.Context, studentID string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("vaccination_records").
		Where(squirrel.Eq{"student_id": studentID}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building student records exists SQL")
		return false, fmt.Errorf("failed to build student records existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error checking student records existence")
		return false, fmt.Errorf("error checking student records: %w", err)
	}

	return exists, nil
}

// LastRollNumber returns the highest roll number issued for a year,
// e.g. "ROLL-2025-0042", or "" when none exists yet.
func (r *StudentRepository) LastRollNumber(ctx context.Context, year int) (string, error) {
	prefix := fmt.Sprintf("ROLL-%d-%%", year)
	sql, args, err := r.sb.Select("student_id").
		From("students").
		Where(squirrel.Like{"student_id": prefix}).
		OrderBy("student_id DESC").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building last roll number SQL")
		return "", fmt.Errorf("failed to build last roll number query: %w", err)
	}

	var last string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		logger.Error().Err(err).Int("year", year).Msg("Error scanning last roll number")
		return "", fmt.Errorf("error getting last roll number: %w", err)
	}

	return last, nil
}
