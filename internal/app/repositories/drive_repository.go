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
	"github.com/schoolvax/vaccine-portal/internal/pkg/logger"
)

// DriveFilter holds the optional filters for drive listing
type DriveFilter struct {
	VaccineID *int64
	Status    models.DriveStatus
	Grade     string
	From      *time.Time
	To        *time.Time
	IsActive  *bool
}

// DriveRepository handles vaccination drive database operations
type DriveRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewDriveRepository creates a new DriveRepository
func NewDriveRepository(db *pgxpool.Pool) *DriveRepository {
	return &DriveRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the transaction, so
// a conflict scan and the following write share one isolation scope.
func (r *DriveRepository) WithTx(tx pgx.Tx) *DriveRepository {
	return &DriveRepository{db: tx, sb: r.sb}
}

// driveColumns are prefixed so the vaccine join can select alongside them
const driveColumns = "d.id, d.vaccine_id, d.vaccine_batch, d.drive_date, d.available_doses, d.applicable_grades, d.minimum_age, d.maximum_age, d.status, d.is_active, d.notes, d.created_at, d.updated_at"

func scanDriveWithVaccine(row pgx.Row) (*models.VaccinationDrive, error) {
	drive := &models.VaccinationDrive{Vaccine: &models.Vaccine{}}
	err := row.Scan(
		&drive.ID,
		&drive.VaccineID,
		&drive.VaccineBatch,
		&drive.DriveDate,
		&drive.AvailableDoses,
		&drive.ApplicableGrades,
		&drive.MinimumAge,
		&drive.MaximumAge,
		&drive.Status,
		&drive.IsActive,
		&drive.Notes,
		&drive.CreatedAt,
		&drive.UpdatedAt,
		&drive.Vaccine.ID,
		&drive.Vaccine.Name,
	)
	if err != nil {
		return nil, err
	}
	return drive, nil
}

func (r *DriveRepository) selectWithVaccine() squirrel.SelectBuilder {
	return r.sb.Select(driveColumns + ", v.id, v.name").
		From("vaccination_drives d").
		Join("vaccines v ON v.id = d.vaccine_id")
}

// Create inserts a new vaccination drive
func (r *DriveRepository) Create(ctx context.Context, drive *models.VaccinationDrive) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("vaccination_drives").
		Columns("vaccine_id", "vaccine_batch", "drive_date", "available_doses", "applicable_grades",
			"minimum_age", "maximum_age", "status", "is_active", "notes", "created_at", "updated_at").
		Values(drive.VaccineID, drive.VaccineBatch, drive.DriveDate, drive.AvailableDoses, drive.ApplicableGrades,
			drive.MinimumAge, drive.MaximumAge, models.DriveScheduled, true, drive.Notes, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create drive SQL")
		return 0, fmt.Errorf("failed to build create drive query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("vaccineID", drive.VaccineID).Msg("Error executing create drive query")
		return 0, fmt.Errorf("error creating drive: %w", err)
	}

	return id, nil
}

// GetByID retrieves a drive by ID with its vaccine
func (r *DriveRepository) GetByID(ctx context.Context, id int64) (*models.VaccinationDrive, error) {
	sql, args, err := r.selectWithVaccine().
		Where(squirrel.Eq{"d.id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get drive by ID SQL")
		return nil, fmt.Errorf("failed to build get drive query: %w", err)
	}

	drive, err := scanDriveWithVaccine(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDriveNotFound
		}
		logger.Error().Err(err).Int64("driveID", id).Msg("Error scanning drive row")
		return nil, fmt.Errorf("error getting drive by ID: %w", err)
	}

	return drive, nil
}

// GetAll retrieves drives matching the filter, paginated
func (r *DriveRepository) GetAll(ctx context.Context, filter DriveFilter, offset, limit int) ([]*models.VaccinationDrive, int64, error) {
	base := r.selectWithVaccine()
	countBase := r.sb.Select("COUNT(*)").From("vaccination_drives d")

	for _, cond := range r.filterConditions(filter) {
		base = base.Where(cond)
		countBase = countBase.Where(cond)
	}

	countSql, countArgs, err := countBase.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count drives SQL")
		return nil, 0, fmt.Errorf("failed to build count drives query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting drives")
		return nil, 0, fmt.Errorf("error counting drives: %w", err)
	}

	sql, args, err := base.
		OrderBy("d.drive_date ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all drives SQL")
		return nil, 0, fmt.Errorf("failed to build get all drives query: %w", err)
	}

	drives, err := r.queryDrives(ctx, sql, args)
	if err != nil {
		return nil, 0, err
	}

	return drives, total, nil
}

func (r *DriveRepository) filterConditions(filter DriveFilter) []squirrel.Sqlizer {
	conds := []squirrel.Sqlizer{}
	if filter.VaccineID != nil {
		conds = append(conds, squirrel.Eq{"d.vaccine_id": *filter.VaccineID})
	}
	if filter.Status != "" {
		conds = append(conds, squirrel.Eq{"d.status": filter.Status})
	}
	if filter.Grade != "" {
		// applicable_grades is stored as a normalized comma list, so a
		// padded LIKE matches whole labels only.
		conds = append(conds, squirrel.Expr("',' || d.applicable_grades || ',' LIKE ?", "%,"+filter.Grade+",%"))
	}
	if filter.From != nil {
		conds = append(conds, squirrel.GtOrEq{"d.drive_date": *filter.From})
	}
	if filter.To != nil {
		conds = append(conds, squirrel.LtOrEq{"d.drive_date": *filter.To})
	}
	if filter.IsActive != nil {
		conds = append(conds, squirrel.Eq{"d.is_active": *filter.IsActive})
	}
	return conds
}

func (r *DriveRepository) queryDrives(ctx context.Context, sql string, args []interface{}) ([]*models.VaccinationDrive, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing drives query")
		return nil, fmt.Errorf("error querying drives: %w", err)
	}
	defer rows.Close()

	drives := []*models.VaccinationDrive{}
	for rows.Next() {
		drive, err := scanDriveWithVaccine(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning drive row")
			return nil, fmt.Errorf("error scanning drive row: %w", err)
		}
		drives = append(drives, drive)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating drive rows")
		return nil, fmt.Errorf("error iterating drive rows: %w", err)
	}

	return drives, nil
}

// FindActiveBetween retrieves active drives whose date falls inside
// [from, to], excluding the drive with excludeID (0 excludes nothing).
// Scheduling conflict checks and the upcoming-drives dashboard use this.
func (r *DriveRepository) FindActiveBetween(ctx context.Context, from, to time.Time, excludeID int64) ([]*models.VaccinationDrive, error) {
	base := r.selectWithVaccine().
		Where(squirrel.Eq{"d.is_active": true}).
		Where(squirrel.GtOrEq{"d.drive_date": from}).
		Where(squirrel.LtOrEq{"d.drive_date": to})
	if excludeID != 0 {
		base = base.Where(squirrel.NotEq{"d.id": excludeID})
	}

	sql, args, err := base.OrderBy("d.drive_date ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find active drives SQL")
		return nil, fmt.Errorf("failed to build find active drives query: %w", err)
	}

	return r.queryDrives(ctx, sql, args)
}

// Update updates an existing drive
func (r *DriveRepository) Update(ctx context.Context, drive *models.VaccinationDrive) error {
	sql, args, err := r.sb.Update("vaccination_drives").
		SetMap(map[string]interface{}{
			"vaccine_id":        drive.VaccineID,
			"vaccine_batch":     drive.VaccineBatch,
			"drive_date":        drive.DriveDate,
			"available_doses":   drive.AvailableDoses,
			"applicable_grades": drive.ApplicableGrades,
			"minimum_age":       drive.MinimumAge,
			"maximum_age":       drive.MaximumAge,
			"status":            drive.Status,
			"is_active":         drive.IsActive,
			"notes":             drive.Notes,
			"updated_at":        time.Now(),
		}).
		Where(squirrel.Eq{"id": drive.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update drive SQL")
		return fmt.Errorf("failed to build update drive query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("driveID", drive.ID).Msg("Error executing update drive query")
		return fmt.Errorf("error updating drive: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}

	return nil
}

// SoftDelete deactivates a drive, keeping its records intact
func (r *DriveRepository) SoftDelete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("vaccination_drives").
		SetMap(map[string]interface{}{
			"is_active":  false,
			"status":     models.DriveCancelled,
			"updated_at": time.Now(),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building deactivate drive SQL")
		return fmt.Errorf("failed to build deactivate drive query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("driveID", id).Msg("Error executing deactivate drive query")
		return fmt.Errorf("error deactivating drive: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}

	return nil
}
