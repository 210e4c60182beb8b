// FilePath: internal/repository/postgres/postgres.harvest.go
package postgres

import (
	"context"
	"time"

	"github.com/bkeeper/hub/internal/database"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type HarvestRepo struct {
	PostgresBaseRepo
}

func NewHarvestRepository(db database.DB) *HarvestRepo {
	repo := &PostgresBaseRepo{db: db}
	return &HarvestRepo{PostgresBaseRepo: *repo}
}

func (r *HarvestRepo) Create(ctx context.Context, harvest *models.Harvest) error {
	if harvest.ID == "" {
		harvest.ID = nuts.NID("hrv", 12)
	}
	if harvest.CreatedAt.IsZero() {
		harvest.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO harvests (
			id, hive_id, date, honey_frames, estimated_kg, notes, created_at
		) VALUES (
			:id, :hive_id, :date, :honey_frames, :estimated_kg, :notes, :created_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, harvest)
	if err != nil {
		return errors.NewStorageError("failed to create harvest", err)
	}
	return nil
}

func (r *HarvestRepo) ListByHive(ctx context.Context, hiveID string) ([]*models.Harvest, error) {
	harvests := []*models.Harvest{}
	query := `SELECT * FROM harvests WHERE hive_id = $1 ORDER BY date DESC`

	err := r.db.GetDB().SelectContext(ctx, &harvests, query, hiveID)
	if err != nil {
		return nil, errors.NewStorageError("failed to list harvests", err)
	}
	return harvests, nil
}

func (r *HarvestRepo) TotalKgSince(ctx context.Context, hiveID string, since time.Time) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(estimated_kg), 0) FROM harvests WHERE hive_id = $1 AND created_at >= $2`

	err := r.db.GetDB().GetContext(ctx, &total, query, hiveID, since)
	if err != nil {
		return 0, errors.NewStorageError("failed to total harvests", err)
	}
	return total, nil
}

func (r *HarvestRepo) DeleteByHive(ctx context.Context, hiveID string, tx database.Transaction) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM harvests WHERE hive_id = $1`, hiveID)
	if err != nil {
		return errors.NewStorageError("failed to delete harvests", err)
	}
	return nil
}
