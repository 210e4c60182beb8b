// FilePath: internal/localstore/localstore.tasks.go
package localstore

import (
	"strings"
	"time"

	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/metrics"
	"github.com/bkeeper/hub/internal/models"
	bolt "go.etcd.io/bbolt"
)

// Tasks returns the full task collection
func (s *Store) Tasks() ([]models.Task, error) {
	var tasks []models.Task
	err := s.view(func(b *bolt.Bucket) error {
		return load(b, CollectionTasks, &tasks)
	})
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].Priority == "" {
			tasks[i].Priority = models.TaskPriorityMedium
		}
	}
	return tasks, nil
}

// AddTask appends a task to the local collection
func (s *Store) AddTask(task *models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return errors.NewValidationError("task title is required", nil)
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if !models.ValidPriority(task.Priority) {
		return errors.NewValidationError("unknown task priority", nil)
	}
	return s.mutate(func(b *bolt.Bucket) error {
		var tasks []models.Task
		if err := load(b, CollectionTasks, &tasks); err != nil {
			return err
		}
		if task.ID == "" {
			task.ID = newLocalID()
		}
		now := time.Now()
		task.CreatedAt = now
		task.UpdatedAt = now
		return save(b, CollectionTasks, append(tasks, *task))
	})
}

// CompleteTask marks a task completed
func (s *Store) CompleteTask(id string) error {
	return s.mutate(func(b *bolt.Bucket) error {
		var tasks []models.Task
		if err := load(b, CollectionTasks, &tasks); err != nil {
			return err
		}
		for i := range tasks {
			if tasks[i].ID == id {
				now := time.Now()
				tasks[i].Completed = true
				tasks[i].CompletedAt = &now
				tasks[i].UpdatedAt = now
				return save(b, CollectionTasks, tasks)
			}
		}
		return errors.NewNotFoundError("task not found", nil)
	})
}

// Harvests returns the full harvest collection
func (s *Store) Harvests() ([]models.Harvest, error) {
	var harvests []models.Harvest
	err := s.view(func(b *bolt.Bucket) error {
		return load(b, CollectionHarvests, &harvests)
	})
	if err != nil {
		return nil, err
	}
	return harvests, nil
}

// AddHarvest appends a harvest, filling in the estimated yield
func (s *Store) AddHarvest(h *models.Harvest) error {
	if h.HiveID == "" {
		return errors.NewValidationError("harvest must reference a hive", nil)
	}
	if h.HoneyFrames <= 0 {
		return errors.NewValidationError("honey frame count is required", nil)
	}
	return s.mutate(func(b *bolt.Bucket) error {
		var hives []models.Hive
		if err := load(b, CollectionHives, &hives); err != nil {
			return err
		}
		exists := false
		for i := range hives {
			if hives[i].ID == h.HiveID {
				exists = true
				break
			}
		}
		if !exists {
			return errors.NewNotFoundError("hive not found", nil)
		}
		var harvests []models.Harvest
		if err := load(b, CollectionHarvests, &harvests); err != nil {
			return err
		}
		if h.ID == "" {
			h.ID = newLocalID()
		}
		now := time.Now()
		if h.Date == "" {
			h.Date = now.Format("2006-01-02")
		}
		h.EstimatedKg = metrics.EstimateHoneyKg(h.HoneyFrames)
		h.CreatedAt = now
		return save(b, CollectionHarvests, append(harvests, *h))
	})
}
