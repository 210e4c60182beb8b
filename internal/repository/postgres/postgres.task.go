// FilePath: internal/repository/postgres/postgres.task.go
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

type TaskRepo struct {
	PostgresBaseRepo
}

func NewTaskRepository(db database.DB) *TaskRepo {
	repo := &PostgresBaseRepo{db: db}
	return &TaskRepo{PostgresBaseRepo: *repo}
}

func (r *TaskRepo) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = nuts.NID("task", 12)
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	query := `
		INSERT INTO tasks (
			id, apiary_id, hive_id, creator_id, assigned_to, title,
			description, due_date, priority, completed, completed_at,
			created_at, updated_at
		) VALUES (
			:id, :apiary_id, :hive_id, :creator_id, :assigned_to, :title,
			:description, :due_date, :priority, :completed, :completed_at,
			:created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, task)
	if err != nil {
		return errors.NewStorageError("failed to create task", err)
	}
	return nil
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*models.Task, error) {
	task := &models.Task{}
	query := `SELECT * FROM tasks WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, task, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("task not found", err)
		}
		return nil, errors.NewStorageError("failed to get task", err)
	}
	return task, nil
}

func (r *TaskRepo) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			title = :title,
			description = :description,
			due_date = :due_date,
			priority = :priority,
			assigned_to = :assigned_to,
			completed = :completed,
			completed_at = :completed_at,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, task)
	if err != nil {
		return errors.NewStorageError("failed to update task", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("task not found", nil)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.GetDB().ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return errors.NewStorageError("failed to delete task", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("task not found", nil)
	}
	return nil
}

func (r *TaskRepo) List(ctx context.Context, filters models.TaskFilters, offset, limit int) ([]*models.Task, error) {
	tasks := []*models.Task{}
	query := `SELECT * FROM tasks WHERE 1=1`
	args := []interface{}{}

	if filters.ApiaryID != "" {
		args = append(args, filters.ApiaryID)
		query += ` AND apiary_id = $` + strconv.Itoa(len(args))
	}
	if filters.HiveID != "" {
		args = append(args, filters.HiveID)
		query += ` AND hive_id = $` + strconv.Itoa(len(args))
	}
	if filters.Completed != nil {
		args = append(args, *filters.Completed)
		query += ` AND completed = $` + strconv.Itoa(len(args))
	}
	if filters.Priority != "" {
		args = append(args, filters.Priority)
		query += ` AND priority = $` + strconv.Itoa(len(args))
	}
	if filters.ProfileID != "" {
		args = append(args, filters.ProfileID)
		n := strconv.Itoa(len(args))
		query += ` AND (creator_id = $` + n + `
			OR apiary_id IN (SELECT apiary_id FROM apiary_members WHERE profile_id = $` + n + `)
			OR apiary_id IN (SELECT resource_id FROM shared_access
				WHERE profile_id = $` + n + ` AND resource_type = 'apiary'))`
	}
	args = append(args, limit)
	query += ` ORDER BY due_date ASC NULLS LAST, created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	err := r.db.GetDB().SelectContext(ctx, &tasks, query, args...)
	if err != nil {
		return nil, errors.NewStorageError("failed to list tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepo) DeleteByHive(ctx context.Context, hiveID string, tx database.Transaction) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE hive_id = $1`, hiveID)
	if err != nil {
		return errors.NewStorageError("failed to delete tasks", err)
	}
	return nil
}
