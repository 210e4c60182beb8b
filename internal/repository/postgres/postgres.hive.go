// FilePath: internal/repository/postgres/postgres.hive.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bkeeper/hub/internal/database"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type HiveRepo struct {
	PostgresBaseRepo
}

func NewHiveRepository(db database.DB) *HiveRepo {
	repo := &PostgresBaseRepo{db: db}
	return &HiveRepo{PostgresBaseRepo: *repo}
}

func (r *HiveRepo) Create(ctx context.Context, hive *models.Hive) error {
	if hive.ID == "" {
		hive.ID = nuts.NID("hv", 12)
	}
	now := time.Now()
	hive.CreatedAt = now
	hive.UpdatedAt = now

	query := `
		INSERT INTO hives (
			id, apiary_id, name, location, frames, status, population,
			varroa, honey, has_queen, queen_marked, queen_color,
			queen_wing_clipped, queen_added_date, is_nucleus, is_wintered,
			notes, last_inspection, created_at, updated_at
		) VALUES (
			:id, :apiary_id, :name, :location, :frames, :status, :population,
			:varroa, :honey, :has_queen, :queen_marked, :queen_color,
			:queen_wing_clipped, :queen_added_date, :is_nucleus, :is_wintered,
			:notes, :last_inspection, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, hive)
	if err != nil {
		return errors.NewStorageError("failed to create hive", err)
	}
	return nil
}

func (r *HiveRepo) Get(ctx context.Context, id string) (*models.Hive, error) {
	hive := &models.Hive{}
	query := `SELECT * FROM hives WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, hive, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("hive not found", err)
		}
		return nil, errors.NewStorageError("failed to get hive", err)
	}
	return hive, nil
}

func (r *HiveRepo) Update(ctx context.Context, hive *models.Hive) error {
	query := `
		UPDATE hives SET
			name = :name,
			location = :location,
			frames = :frames,
			status = :status,
			population = :population,
			varroa = :varroa,
			honey = :honey,
			has_queen = :has_queen,
			queen_marked = :queen_marked,
			queen_color = :queen_color,
			queen_wing_clipped = :queen_wing_clipped,
			queen_added_date = :queen_added_date,
			is_nucleus = :is_nucleus,
			is_wintered = :is_wintered,
			notes = :notes,
			last_inspection = :last_inspection,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, hive)
	if err != nil {
		return errors.NewStorageError("failed to update hive", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("hive not found", nil)
	}
	return nil
}

func (r *HiveRepo) Delete(ctx context.Context, id string, tx database.Transaction) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM hives WHERE id = $1`, id)
	if err != nil {
		return errors.NewStorageError("failed to delete hive", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("hive not found", nil)
	}
	return nil
}

func (r *HiveRepo) ListByApiary(ctx context.Context, apiaryID string) ([]*models.Hive, error) {
	hives := []*models.Hive{}
	query := `SELECT * FROM hives WHERE apiary_id = $1 ORDER BY created_at ASC`

	err := r.db.GetDB().SelectContext(ctx, &hives, query, apiaryID)
	if err != nil {
		return nil, errors.NewStorageError("failed to list hives", err)
	}
	return hives, nil
}

// ListSharedWithProfile returns hives reached through hive-level
// shared access grants. Callers tag these is_shared for display.
func (r *HiveRepo) ListSharedWithProfile(ctx context.Context, profileID string) ([]*models.Hive, error) {
	hives := []*models.Hive{}
	query := `
		SELECT h.*
		FROM hives h
		JOIN shared_access sa
		  ON sa.resource_type = 'hive' AND sa.resource_id = h.id
		WHERE sa.profile_id = $1
		ORDER BY h.created_at ASC`

	err := r.db.GetDB().SelectContext(ctx, &hives, query, profileID)
	if err != nil {
		return nil, errors.NewStorageError("failed to list shared hives", err)
	}
	return hives, nil
}

// CountByApiaryAndName supports the unique-name-per-apiary invariant
func (r *HiveRepo) CountByApiaryAndName(ctx context.Context, apiaryID, name, excludeID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM hives WHERE apiary_id = $1 AND LOWER(name) = LOWER($2) AND id != $3`

	err := r.db.GetDB().GetContext(ctx, &count, query, apiaryID, name, excludeID)
	if err != nil {
		return 0, errors.NewStorageError("failed to count hives by name", err)
	}
	return count, nil
}
