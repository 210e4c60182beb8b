// FilePath: internal/hubservice/hubservice.task.go
package hubservice

import (
	"context"
	"strings"
	"time"

	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// CreateTask creates a task, optionally scoped to an apiary and/or
// hive. Any member role may create tasks.
func (s *HubService) CreateTask(ctx context.Context, task *models.Task, profileID string) error {
	if strings.TrimSpace(task.Title) == "" {
		return errors.NewValidationError("task title is required", nil)
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if !models.ValidPriority(task.Priority) {
		return errors.NewValidationError("unknown task priority", nil)
	}
	if task.HiveID != "" {
		hive, err := s.Hives.Get(ctx, task.HiveID)
		if err != nil {
			return err
		}
		if task.ApiaryID == "" {
			task.ApiaryID = hive.ApiaryID
		}
	}
	if task.ApiaryID != "" {
		if _, err := s.effectiveRole(ctx, task.ApiaryID, profileID); err != nil {
			return err
		}
	}
	task.CreatorID = profileID
	return s.Tasks.Create(ctx, task)
}

// ListTasks returns tasks matching the filters, newest first. Every
// listing is scoped: an apiary or hive filter requires access to that
// resource, and an unfiltered listing only covers the caller's own
// tasks and memberships.
func (s *HubService) ListTasks(ctx context.Context, filters models.TaskFilters, profileID string, offset, limit int) ([]*models.Task, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	filters.ProfileID = ""
	switch {
	case filters.ApiaryID != "":
		if _, err := s.effectiveRole(ctx, filters.ApiaryID, profileID); err != nil {
			return nil, err
		}
	case filters.HiveID != "":
		hive, err := s.Hives.Get(ctx, filters.HiveID)
		if err != nil {
			return nil, err
		}
		if _, err := s.hiveRole(ctx, hive, profileID); err != nil {
			return nil, err
		}
	default:
		filters.ProfileID = profileID
	}
	return s.Tasks.List(ctx, filters, offset, limit)
}

// CompleteTask marks a task completed with a timestamp. Apiary tasks
// take any member; personal tasks take only their creator.
func (s *HubService) CompleteTask(ctx context.Context, taskID, profileID string) (*models.Task, error) {
	task, err := s.Tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.ApiaryID == "" {
		if task.CreatorID != profileID {
			return nil, errors.NewAuthorizationError("only the creator may complete this task", nil)
		}
	} else if _, err := s.effectiveRole(ctx, task.ApiaryID, profileID); err != nil {
		return nil, err
	}
	if task.Completed {
		return task, nil
	}
	now := time.Now()
	task.Completed = true
	task.CompletedAt = &now
	task.UpdatedAt = now
	if err := s.Tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task. The creator or an apiary manager may do it.
func (s *HubService) DeleteTask(ctx context.Context, taskID, profileID string) error {
	task, err := s.Tasks.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if task.CreatorID != profileID {
		if task.ApiaryID == "" {
			return errors.NewAuthorizationError("only the creator may delete this task", nil)
		}
		if _, err := s.requireHiveManager(ctx, task.ApiaryID, profileID); err != nil {
			return err
		}
	}
	nuts.L.Infof("[HubService] Deleting task %s", taskID)
	return s.Tasks.Delete(ctx, taskID)
}
