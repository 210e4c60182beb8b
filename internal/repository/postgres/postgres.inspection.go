// FilePath: internal/repository/postgres/postgres.inspection.go
package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/bkeeper/hub/internal/database"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type InspectionRepo struct {
	PostgresBaseRepo
}

func NewInspectionRepository(db database.DB) *InspectionRepo {
	repo := &PostgresBaseRepo{db: db}
	return &InspectionRepo{PostgresBaseRepo: *repo}
}

// CreateWithHiveUpdate persists the inspection and the recomputed hive
// display cache in one transaction. The hive row is only ever touched
// through this path after an inspection save, never edited directly.
func (r *InspectionRepo) CreateWithHiveUpdate(ctx context.Context, insp *models.Inspection, hive *models.Hive) error {
	if insp.ID == "" {
		insp.ID = nuts.NID("insp", 12)
	}
	now := time.Now()
	insp.CreatedAt = now
	insp.UpdatedAt = now
	hive.UpdatedAt = now

	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO inspections (
			id, hive_id, inspector_id, date, time, weather, temperature,
			duration, brood_frames, total_frames, queen_seen, temperament,
			varroa_count, varroa_days, varroa_per_day, varroa_level,
			observations, notes, is_wintering, winter_feed,
			is_varroa_treatment, treatment_type, new_queen_added,
			new_queen_marked, new_queen_color, new_queen_wing_clipped,
			rating, findings, ai_analysis, created_at, updated_at
		) VALUES (
			:id, :hive_id, :inspector_id, :date, :time, :weather, :temperature,
			:duration, :brood_frames, :total_frames, :queen_seen, :temperament,
			:varroa_count, :varroa_days, :varroa_per_day, :varroa_level,
			:observations, :notes, :is_wintering, :winter_feed,
			:is_varroa_treatment, :treatment_type, :new_queen_added,
			:new_queen_marked, :new_queen_color, :new_queen_wing_clipped,
			:rating, :findings, :ai_analysis, :created_at, :updated_at
		)`

	if _, err := tx.NamedExecContext(ctx, insertQuery, insp); err != nil {
		return errors.NewStorageError("failed to create inspection", err)
	}

	updateQuery := `
		UPDATE hives SET
			frames = :frames,
			status = :status,
			population = :population,
			varroa = :varroa,
			has_queen = :has_queen,
			queen_marked = :queen_marked,
			queen_color = :queen_color,
			queen_wing_clipped = :queen_wing_clipped,
			queen_added_date = :queen_added_date,
			last_inspection = :last_inspection,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := tx.NamedExecContext(ctx, updateQuery, hive)
	if err != nil {
		return errors.NewStorageError("failed to update hive after inspection", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("hive not found", nil)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageError("failed to commit inspection", err)
	}
	return nil
}

func (r *InspectionRepo) Get(ctx context.Context, id string) (*models.Inspection, error) {
	insp := &models.Inspection{}
	query := `SELECT * FROM inspections WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, insp, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("inspection not found", err)
		}
		return nil, errors.NewStorageError("failed to get inspection", err)
	}
	return insp, nil
}

func (r *InspectionRepo) ListByHive(ctx context.Context, filters models.InspectionFilters, offset, limit int) ([]*models.Inspection, error) {
	inspections := []*models.Inspection{}
	query := `SELECT * FROM inspections WHERE hive_id = $1`
	args := []interface{}{filters.HiveID}

	if filters.Since != "" {
		args = append(args, filters.Since)
		query += ` AND date >= $2`
	}
	args = append(args, limit, offset)
	query += ` ORDER BY date DESC, created_at DESC` +
		` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	err := r.db.GetDB().SelectContext(ctx, &inspections, query, args...)
	if err != nil {
		return nil, errors.NewStorageError("failed to list inspections", err)
	}
	return inspections, nil
}

func (r *InspectionRepo) DeleteByHive(ctx context.Context, hiveID string, tx database.Transaction) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM inspections WHERE hive_id = $1`, hiveID)
	if err != nil {
		return errors.NewStorageError("failed to delete inspections", err)
	}
	return nil
}
