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

// VaccineRepository handles vaccine database operations
type VaccineRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewVaccineRepository creates a new VaccineRepository
func NewVaccineRepository(db *pgxpool.Pool) *VaccineRepository {
	return &VaccineRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const vaccineColumns = "id, name, manufacturer, description, doses_required, days_between_doses, expiry_date, available_doses, price, created_at, updated_at"

func scanVaccine(row pgx.Row) (*models.Vaccine, error) {
	vaccine := &models.Vaccine{}
	err := row.Scan(
		&vaccine.ID,
		&vaccine.Name,
		&vaccine.Manufacturer,
		&vaccine.Description,
		&vaccine.DosesRequired,
		&vaccine.DaysBetweenDoses,
		&vaccine.ExpiryDate,
		&vaccine.AvailableDoses,
		&vaccine.Price,
		&vaccine.CreatedAt,
		&vaccine.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return vaccine, nil
}

// Create inserts a new vaccine. Vaccine names are globally unique.
func (r *VaccineRepository) Create(ctx context.Context, vaccine *models.Vaccine) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("vaccines").
		Columns("name", "manufacturer", "description", "doses_required", "days_between_doses",
			"expiry_date", "available_doses", "price", "created_at", "updated_at").
		Values(vaccine.Name, vaccine.Manufacturer, vaccine.Description, vaccine.DosesRequired,
			vaccine.DaysBetweenDoses, vaccine.ExpiryDate, vaccine.AvailableDoses, vaccine.Price, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create vaccine SQL")
		return 0, fmt.Errorf("failed to build create vaccine query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrVaccineNameExists
		}
		logger.Error().Err(err).Str("name", vaccine.Name).Msg("Error executing create vaccine query")
		return 0, fmt.Errorf("error creating vaccine: %w", err)
	}

	return id, nil
}

// GetByID retrieves a vaccine by ID
func (r *VaccineRepository) GetByID(ctx context.Context, id int64) (*models.Vaccine, error) {
	sql, args, err := r.sb.Select(vaccineColumns).
		From("vaccines").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get vaccine by ID SQL")
		return nil, fmt.Errorf("failed to build get vaccine query: %w", err)
	}

	vaccine, err := scanVaccine(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVaccineNotFound
		}
		logger.Error().Err(err).Int64("vaccineID", id).Msg("Error scanning vaccine row")
		return nil, fmt.Errorf("error getting vaccine by ID: %w", err)
	}

	return vaccine, nil
}

// GetAll retrieves vaccines, optionally filtered by name, paginated
func (r *VaccineRepository) GetAll(ctx context.Context, search string, offset, limit int) ([]*models.Vaccine, int64, error) {
	base := r.sb.Select(vaccineColumns).From("vaccines")
	countBase := r.sb.Select("COUNT(*)").From("vaccines")

	if search != "" {
		cond := squirrel.ILike{"name": "%" + search + "%"}
		base = base.Where(cond)
		countBase = countBase.Where(cond)
	}

	countSql, countArgs, err := countBase.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count vaccines SQL")
		return nil, 0, fmt.Errorf("failed to build count vaccines query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting vaccines")
		return nil, 0, fmt.Errorf("error counting vaccines: %w", err)
	}

	sql, args, err := base.
		OrderBy("name ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all vaccines SQL")
		return nil, 0, fmt.Errorf("failed to build get all vaccines query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all vaccines query")
		return nil, 0, fmt.Errorf("error querying vaccines: %w", err)
	}
	defer rows.Close()

	vaccines := []*models.Vaccine{}
	for rows.Next() {
		vaccine, err := scanVaccine(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning vaccine row during get all")
			return nil, 0, fmt.Errorf("error scanning vaccine row: %w", err)
		}
		vaccines = append(vaccines, vaccine)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating vaccine rows")
		return nil, 0, fmt.Errorf("error iterating vaccine rows: %w", err)
	}

	return vaccines, total, nil
}

// Update updates an existing vaccine
func (r *VaccineRepository) Update(ctx context.Context, vaccine *models.Vaccine) error {
	sql, args, err := r.sb.Update("vaccines").
		SetMap(map[string]interface{}{
			"name":               vaccine.Name,
			"manufacturer":       vaccine.Manufacturer,
			"description":        vaccine.Description,
			"doses_required":     vaccine.DosesRequired,
			"days_between_doses": vaccine.DaysBetweenDoses,
			"expiry_date":        vaccine.ExpiryDate,
			"available_doses":    vaccine.AvailableDoses,
			"price":              vaccine.Price,
			"updated_at":         time.Now(),
		}).
		Where(squirrel.Eq{"id": vaccine.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update vaccine SQL")
		return fmt.Errorf("failed to build update vaccine query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrVaccineNameExists
		}
		logger.Error().Err(err).Int64("vaccineID", vaccine.ID).Msg("Error executing update vaccine query")
		return fmt.Errorf("error updating vaccine: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrVaccineNotFound
	}

	return nil
}

// Delete removes a vaccine if no drive references it
func (r *VaccineRepository) Delete(ctx context.Context, id int64) error {
	checkSql, checkArgs, err := r.sb.Select("1").
		From("vaccination_drives").
		Where(squirrel.Eq{"vaccine_id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building check vaccine references SQL")
		return fmt.Errorf("failed to build check vaccine references query: %w", err)
	}

	var inUse bool
	err = r.db.QueryRow(ctx, checkSql, checkArgs...).Scan(&inUse)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Int64("vaccineID", id).Msg("Error checking vaccine references")
		return fmt.Errorf("error checking vaccine references: %w", err)
	}
	if inUse {
		return apperrors.ErrVaccineInUse
	}

	sql, args, err := r.sb.Delete("vaccines").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete vaccine SQL")
		return fmt.Errorf("failed to build delete vaccine query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("vaccineID", id).Msg("Error executing delete vaccine query")
		return fmt.Errorf("error deleting vaccine: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrVaccineNotFound
	}

	return nil
}

// ExistsByName reports whether a vaccine with the given name exists
func (r *VaccineRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("vaccines").
		Where(squirrel.Eq{"name": name}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building vaccine exists SQL")
		return false, fmt.Errorf("failed to build vaccine existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("name", name).Msg("Error checking vaccine existence")
		return false, fmt.Errorf("error checking vaccine existence: %w", err)
	}

	return exists, nil
}
