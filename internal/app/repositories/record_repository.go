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

// RecordFilter holds the optional filters for record listing and reporting
type RecordFilter struct {
	StudentID      string
	DriveID        *int64
	VaccineID      *int64
	Status         models.RecordStatus
	VaccinatedFrom *time.Time
	VaccinatedTo   *time.Time
}

// RecordRepository handles vaccination record database operations
type RecordRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(db *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const recordColumns = "r.id, r.student_id, r.drive_id, r.dose_number, r.vaccination_date, r.next_dose_date, r.batch_number, r.administered_by, r.vaccination_site, r.status, r.side_effects, r.notes, r.created_at, r.updated_at"

func scanRecordJoined(row pgx.Row) (*models.VaccinationRecord, error) {
	record := &models.VaccinationRecord{
		Student: &models.Student{},
		Drive:   &models.VaccinationDrive{Vaccine: &models.Vaccine{}},
	}
	err := row.Scan(
		&record.ID,
		&record.StudentID,
		&record.DriveID,
		&record.DoseNumber,
		&record.VaccinationDate,
		&record.NextDoseDate,
		&record.BatchNumber,
		&record.AdministeredBy,
		&record.VaccinationSite,
		&record.Status,
		&record.SideEffects,
		&record.Notes,
		&record.CreatedAt,
		&record.UpdatedAt,
		&record.Student.StudentID,
		&record.Student.Name,
		&record.Student.Grade,
		&record.Drive.Vaccine.ID,
		&record.Drive.Vaccine.Name,
	)
	if err != nil {
		return nil, err
	}
	record.Drive.ID = record.DriveID
	record.Drive.VaccineID = record.Drive.Vaccine.ID
	return record, nil
}

func (r *RecordRepository) selectJoined() squirrel.SelectBuilder {
	return r.sb.Select(recordColumns + ", s.student_id, s.name, s.grade, v.id, v.name").
		From("vaccination_records r").
		Join("students s ON s.student_id = r.student_id").
		Join("vaccination_drives d ON d.id = r.drive_id").
		Join("vaccines v ON v.id = d.vaccine_id")
}

// Create inserts a new vaccination record.
// The (student, drive, dose) triple is unique.
func (r *RecordRepository) Create(ctx context.Context, record *models.VaccinationRecord) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("vaccination_records").
		Columns("student_id", "drive_id", "dose_number", "vaccination_date", "next_dose_date",
			"batch_number", "administered_by", "vaccination_site", "status",
			"side_effects", "notes", "created_at", "updated_at").
		Values(record.StudentID, record.DriveID, record.DoseNumber, record.VaccinationDate, record.NextDoseDate,
			record.BatchNumber, record.AdministeredBy, record.VaccinationSite, record.Status,
			record.SideEffects, record.Notes, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create record SQL")
		return 0, fmt.Errorf("failed to build create record query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_records_student_drive_dose") {
			return 0, apperrors.ErrDuplicateDose
		}
		logger.Error().Err(err).Str("studentID", record.StudentID).Int64("driveID", record.DriveID).Msg("Error executing create record query")
		return 0, fmt.Errorf("error creating record: %w", err)
	}

	return id, nil
}

// GetByID retrieves a record by ID with its student and vaccine
func (r *RecordRepository) GetByID(ctx context.Context, id int64) (*models.VaccinationRecord, error) {
	sql, args, err := r.selectJoined().
		Where(squirrel.Eq{"r.id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get record by ID SQL")
		return nil, fmt.Errorf("failed to build get record query: %w", err)
	}

	record, err := scanRecordJoined(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRecordNotFound
		}
		logger.Error().Err(err).Int64("recordID", id).Msg("Error scanning record row")
		return nil, fmt.Errorf("error getting record by ID: %w", err)
	}

	return record, nil
}

// GetAll retrieves records matching the filter, paginated
func (r *RecordRepository) GetAll(ctx context.Context, filter RecordFilter, offset, limit int) ([]*models.VaccinationRecord, int64, error) {
	base := r.selectJoined()
	countBase := r.sb.Select("COUNT(*)").
		From("vaccination_records r").
		Join("vaccination_drives d ON d.id = r.drive_id")

	for _, cond := range r.filterConditions(filter) {
		base = base.Where(cond)
		countBase = countBase.Where(cond)
	}

	countSql, countArgs, err := countBase.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count records SQL")
		return nil, 0, fmt.Errorf("failed to build count records query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting records")
		return nil, 0, fmt.Errorf("error counting records: %w", err)
	}

	sql, args, err := base.
		OrderBy("r.vaccination_date DESC", "r.id DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all records SQL")
		return nil, 0, fmt.Errorf("failed to build get all records query: %w", err)
	}

	records, err := r.queryRecords(ctx, sql, args)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetFiltered retrieves all records matching the filter, unpaginated.
// Report exports use this.
func (r *RecordRepository) GetFiltered(ctx context.Context, filter RecordFilter) ([]*models.VaccinationRecord, error) {
	base := r.selectJoined()
	for _, cond := range r.filterConditions(filter) {
		base = base.Where(cond)
	}

	sql, args, err := base.OrderBy("r.vaccination_date ASC", "r.id ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building filtered records SQL")
		return nil, fmt.Errorf("failed to build filtered records query: %w", err)
	}

	return r.queryRecords(ctx, sql, args)
}

func (r *RecordRepository) filterConditions(filter RecordFilter) []squirrel.Sqlizer {
	conds := []squirrel.Sqlizer{}
	if filter.StudentID != "" {
		conds = append(conds, squirrel.Eq{"r.student_id": filter.StudentID})
	}
	if filter.DriveID != nil {
		conds = append(conds, squirrel.Eq{"r.drive_id": *filter.DriveID})
	}
	if filter.VaccineID != nil {
		conds = append(conds, squirrel.Eq{"d.vaccine_id": *filter.VaccineID})
	}
	if filter.Status != "" {
		conds = append(conds, squirrel.Eq{"r.status": filter.Status})
	}
	if filter.VaccinatedFrom != nil {
		conds = append(conds, squirrel.GtOrEq{"r.vaccination_date": *filter.VaccinatedFrom})
	}
	if filter.VaccinatedTo != nil {
		conds = append(conds, squirrel.LtOrEq{"r.vaccination_date": *filter.VaccinatedTo})
	}
	return conds
}

func (r *RecordRepository) queryRecords(ctx context.Context, sql string, args []interface{}) ([]*models.VaccinationRecord, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing records query")
		return nil, fmt.Errorf("error querying records: %w", err)
	}
	defer rows.Close()

	records := []*models.VaccinationRecord{}
	for rows.Next() {
		record, err := scanRecordJoined(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning record row")
			return nil, fmt.Errorf("error scanning record row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating record rows")
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}

	return records, nil
}

// GetAllForDashboard retrieves every record joined with student grade.
// Dashboard aggregation works over the full record set.
func (r *RecordRepository) GetAllForDashboard(ctx context.Context) ([]*models.VaccinationRecord, error) {
	sql, args, err := r.selectJoined().ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building dashboard records SQL")
		return nil, fmt.Errorf("failed to build dashboard records query: %w", err)
	}
	return r.queryRecords(ctx, sql, args)
}

// DoseNumbers returns the dose numbers already recorded for the
// (student, drive) pair, excluding excludeRecordID (0 excludes nothing).
func (r *RecordRepository) DoseNumbers(ctx context.Context, studentID string, driveID int64, excludeRecordID int64) ([]int, error) {
	base := r.sb.Select("dose_number").
		From("vaccination_records").
		Where(squirrel.Eq{"student_id": studentID, "drive_id": driveID})
	if excludeRecordID != 0 {
		base = base.Where(squirrel.NotEq{"id": excludeRecordID})
	}

	sql, args, err := base.OrderBy("dose_number ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building dose numbers SQL")
		return nil, fmt.Errorf("failed to build dose numbers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Int64("driveID", driveID).Msg("Error querying dose numbers")
		return nil, fmt.Errorf("error querying dose numbers: %w", err)
	}
	defer rows.Close()

	doses := []int{}
	for rows.Next() {
		var dose int
		if err := rows.Scan(&dose); err != nil {
			return nil, fmt.Errorf("error scanning dose number: %w", err)
		}
		doses = append(doses, dose)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dose numbers: %w", err)
	}

	return doses, nil
}

// MaxDoseNumber returns the highest dose number recorded for the
// (student, drive) pair, excluding excludeRecordID (0 excludes nothing).
// Returns 0 when no doses exist.
func (r *RecordRepository) MaxDoseNumber(ctx context.Context, studentID string, driveID int64, excludeRecordID int64) (int, error) {
	base := r.sb.Select("COALESCE(MAX(dose_number), 0)").
		From("vaccination_records").
		Where(squirrel.Eq{"student_id": studentID, "drive_id": driveID})
	if excludeRecordID != 0 {
		base = base.Where(squirrel.NotEq{"id": excludeRecordID})
	}

	sql, args, err := base.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building max dose number SQL")
		return 0, fmt.Errorf("failed to build max dose number query: %w", err)
	}

	var max int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&max); err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Int64("driveID", driveID).Msg("Error scanning max dose number")
		return 0, fmt.Errorf("error getting max dose number: %w", err)
	}

	return max, nil
}

// Update rewrites a record's mutable fields
func (r *RecordRepository) Update(ctx context.Context, record *models.VaccinationRecord) error {
	sql, args, err := r.sb.Update("vaccination_records").
		SetMap(map[string]interface{}{
			"dose_number":      record.DoseNumber,
			"vaccination_date": record.VaccinationDate,
			"next_dose_date":   record.NextDoseDate,
			"batch_number":     record.BatchNumber,
			"administered_by":  record.AdministeredBy,
			"vaccination_site": record.VaccinationSite,
			"status":           record.Status,
			"side_effects":     record.SideEffects,
			"notes":            record.Notes,
			"updated_at":       time.Now(),
		}).
		Where(squirrel.Eq{"id": record.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update record SQL")
		return fmt.Errorf("failed to build update record query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_records_student_drive_dose") {
			return apperrors.ErrDuplicateDose
		}
		logger.Error().Err(err).Int64("recordID", record.ID).Msg("Error executing update record query")
		return fmt.Errorf("error updating record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecordNotFound
	}

	return nil
}

// Delete removes a record permanently
func (r *RecordRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("vaccination_records").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete record SQL")
		return fmt.Errorf("failed to build delete record query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("recordID", id).Msg("Error executing delete record query")
		return fmt.Errorf("error deleting record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecordNotFound
	}

	return nil
}
