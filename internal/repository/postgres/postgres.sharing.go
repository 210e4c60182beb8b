// FilePath: internal/repository/postgres/postgres.sharing.go
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

type SharingRepo struct {
	PostgresBaseRepo
}

func NewSharingRepository(db database.DB) *SharingRepo {
	repo := &PostgresBaseRepo{db: db}
	return &SharingRepo{PostgresBaseRepo: *repo}
}

func (r *SharingRepo) CreateCode(ctx context.Context, code *models.SharingCode) error {
	if code.ID == "" {
		code.ID = nuts.NID("shc", 12)
	}
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}
	code.IsActive = true

	query := `
		INSERT INTO sharing_codes (
			id, code, resource_type, resource_id, created_by, access_level,
			expires_at, max_uses, current_uses, is_active, created_at
		) VALUES (
			:id, :code, :resource_type, :resource_id, :created_by, :access_level,
			:expires_at, :max_uses, :current_uses, :is_active, :created_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, code)
	if err != nil {
		return errors.NewStorageError("failed to create sharing code", err)
	}
	return nil
}

// GetActiveByCode looks up a redeemable code by its value. Inactive
// codes are indistinguishable from missing ones by design.
func (r *SharingRepo) GetActiveByCode(ctx context.Context, code string) (*models.SharingCode, error) {
	sc := &models.SharingCode{}
	query := `SELECT * FROM sharing_codes WHERE code = $1 AND is_active = true`

	err := r.db.GetDB().GetContext(ctx, sc, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("sharing code not found", err)
		}
		return nil, errors.NewStorageError("failed to look up sharing code", err)
	}
	return sc, nil
}

// Redeem records one successful redemption: the use-count increment
// and the access grant insert commit together or not at all.
func (r *SharingRepo) Redeem(ctx context.Context, code *models.SharingCode, grant *models.SharedAccess) error {
	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE sharing_codes SET current_uses = current_uses + 1
		 WHERE id = $1 AND is_active = true
		   AND (max_uses IS NULL OR current_uses < max_uses)`,
		code.ID,
	)
	if err != nil {
		return errors.NewStorageError("failed to increment code uses", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageError("failed to get rows affected", err)
	}
	if rows == 0 {
		// Lost a race to the final use between check and redemption.
		return errors.NewExhaustedError("sharing code has reached its use limit")
	}

	if grant.ID == "" {
		grant.ID = nuts.NID("sha", 12)
	}
	if grant.JoinedAt.IsZero() {
		grant.JoinedAt = time.Now()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO shared_access (
			id, sharing_code_id, profile_id, resource_type, resource_id,
			access_level, joined_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		grant.ID, grant.SharingCodeID, grant.ProfileID,
		grant.ResourceType, grant.ResourceID, grant.AccessLevel, grant.JoinedAt,
	)
	if err != nil {
		return errors.NewStorageError("failed to record shared access", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageError("failed to commit redemption", err)
	}
	return nil
}

func (r *SharingRepo) GetGrant(ctx context.Context, profileID string, resourceType models.ResourceType, resourceID string) (*models.SharedAccess, error) {
	grant := &models.SharedAccess{}
	query := `SELECT * FROM shared_access
		WHERE profile_id = $1 AND resource_type = $2 AND resource_id = $3`

	err := r.db.GetDB().GetContext(ctx, grant, query, profileID, resourceType, resourceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("no shared access grant", err)
		}
		return nil, errors.NewStorageError("failed to get shared access", err)
	}
	return grant, nil
}

func (r *SharingRepo) DeleteGrantsByResource(ctx context.Context, resourceType models.ResourceType, resourceID string, tx database.Transaction) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM shared_access WHERE resource_type = $1 AND resource_id = $2`,
		resourceType, resourceID,
	)
	if err != nil {
		return errors.NewStorageError("failed to delete shared access grants", err)
	}
	return nil
}
