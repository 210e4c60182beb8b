// FilePath: internal/repository/postgres/postgres.profile.go
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

type ProfileRepo struct {
	PostgresBaseRepo
}

func NewProfileRepository(db database.DB) *ProfileRepo {
	repo := &PostgresBaseRepo{db: db}
	return &ProfileRepo{PostgresBaseRepo: *repo}
}

func (r *ProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = nuts.NID("prf", 12)
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `
		INSERT INTO profiles (
			id, user_id, email, full_name, avatar_url, created_at, updated_at
		) VALUES (
			:id, :user_id, :email, :full_name, :avatar_url, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, profile)
	if err != nil {
		return errors.NewStorageError("failed to create profile", err)
	}
	return nil
}

func (r *ProfileRepo) Get(ctx context.Context, id string) (*models.Profile, error) {
	profile := &models.Profile{}
	query := `SELECT * FROM profiles WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, profile, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("profile not found", err)
		}
		return nil, errors.NewStorageError("failed to get profile", err)
	}
	return profile, nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	profile := &models.Profile{}
	query := `SELECT * FROM profiles WHERE user_id = $1`

	err := r.db.GetDB().GetContext(ctx, profile, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("profile not found", err)
		}
		return nil, errors.NewStorageError("failed to get profile", err)
	}
	return profile, nil
}
