// FilePath: internal/repository/postgres/postgres.apiary.go
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

type ApiaryRepo struct {
	PostgresBaseRepo
}

func NewApiaryRepository(db database.DB) *ApiaryRepo {
	repo := &PostgresBaseRepo{db: db}
	return &ApiaryRepo{PostgresBaseRepo: *repo}
}

func (r *ApiaryRepo) Create(ctx context.Context, apiary *models.Apiary) error {
	if apiary.ID == "" {
		apiary.ID = nuts.NID("apy", 12)
	}
	now := time.Now()
	apiary.CreatedAt = now
	apiary.UpdatedAt = now

	query := `
		INSERT INTO apiaries (
			id, name, description, location, owner_id, invite_code,
			created_at, updated_at
		) VALUES (
			:id, :name, :description, :location, :owner_id, :invite_code,
			:created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, apiary)
	if err != nil {
		return errors.NewStorageError("failed to create apiary", err)
	}
	return nil
}

func (r *ApiaryRepo) Get(ctx context.Context, id string) (*models.Apiary, error) {
	apiary := &models.Apiary{}
	query := `SELECT id, name, description, location, owner_id, invite_code,
		created_at, updated_at FROM apiaries WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, apiary, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("apiary not found", err)
		}
		return nil, errors.NewStorageError("failed to get apiary", err)
	}
	return apiary, nil
}

func (r *ApiaryRepo) GetByInviteCode(ctx context.Context, code string) (*models.Apiary, error) {
	apiary := &models.Apiary{}
	query := `SELECT id, name, description, location, owner_id, invite_code,
		created_at, updated_at FROM apiaries WHERE invite_code = $1`

	err := r.db.GetDB().GetContext(ctx, apiary, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("no apiary matches this invite code", err)
		}
		return nil, errors.NewStorageError("failed to look up invite code", err)
	}
	return apiary, nil
}

func (r *ApiaryRepo) Update(ctx context.Context, apiary *models.Apiary) error {
	query := `
		UPDATE apiaries SET
			name = :name,
			description = :description,
			location = :location,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, apiary)
	if err != nil {
		return errors.NewStorageError("failed to update apiary", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("apiary not found", nil)
	}
	return nil
}

func (r *ApiaryRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.GetDB().ExecContext(ctx, `DELETE FROM apiaries WHERE id = $1`, id)
	if err != nil {
		return errors.NewStorageError("failed to delete apiary", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("apiary not found", nil)
	}
	return nil
}

// ListForProfile unions direct memberships with apiary-level shared
// access grants. When both exist for the same apiary, the direct
// membership role wins.
func (r *ApiaryRepo) ListForProfile(ctx context.Context, profileID string) ([]*models.Apiary, error) {
	apiaries := []*models.Apiary{}
	query := `
		SELECT a.id, a.name, a.description, a.location, a.owner_id,
		       a.invite_code, a.created_at, a.updated_at,
		       COALESCE(m.role, sa.access_level) AS role
		FROM apiaries a
		LEFT JOIN apiary_members m
		       ON m.apiary_id = a.id AND m.profile_id = $1
		LEFT JOIN shared_access sa
		       ON sa.resource_type = 'apiary' AND sa.resource_id = a.id
		      AND sa.profile_id = $1
		WHERE m.id IS NOT NULL OR sa.id IS NOT NULL
		ORDER BY a.created_at ASC`

	err := r.db.GetDB().SelectContext(ctx, &apiaries, query, profileID)
	if err != nil {
		return nil, errors.NewStorageError("failed to list apiaries", err)
	}
	return apiaries, nil
}

func (r *ApiaryRepo) AddMember(ctx context.Context, member *models.ApiaryMember) error {
	if member.ID == "" {
		member.ID = nuts.NID("mbr", 12)
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}
	query := `
		INSERT INTO apiary_members (id, apiary_id, profile_id, role, joined_at)
		VALUES (:id, :apiary_id, :profile_id, :role, :joined_at)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, member)
	if err != nil {
		return errors.NewStorageError("failed to add apiary member", err)
	}
	return nil
}

func (r *ApiaryRepo) GetMember(ctx context.Context, apiaryID, profileID string) (*models.ApiaryMember, error) {
	member := &models.ApiaryMember{}
	query := `SELECT * FROM apiary_members WHERE apiary_id = $1 AND profile_id = $2`

	err := r.db.GetDB().GetContext(ctx, member, query, apiaryID, profileID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("not a member of this apiary", err)
		}
		return nil, errors.NewStorageError("failed to get apiary member", err)
	}
	return member, nil
}

func (r *ApiaryRepo) ListMembers(ctx context.Context, apiaryID string) ([]*models.ApiaryMember, error) {
	members := []*models.ApiaryMember{}
	query := `SELECT * FROM apiary_members WHERE apiary_id = $1 ORDER BY joined_at ASC`

	err := r.db.GetDB().SelectContext(ctx, &members, query, apiaryID)
	if err != nil {
		return nil, errors.NewStorageError("failed to list apiary members", err)
	}
	return members, nil
}

func (r *ApiaryRepo) RemoveMembers(ctx context.Context, apiaryID string, tx database.Transaction) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM apiary_members WHERE apiary_id = $1`, apiaryID)
	if err != nil {
		return errors.NewStorageError("failed to remove apiary members", err)
	}
	return nil
}
