// FilePath: internal/cleanup/cleanup.go
package cleanup

import (
	"context"
	"fmt"

	"github.com/bkeeper/hub/internal/models"
	"github.com/bkeeper/hub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// CleanupService coordinates deletion of hierarchical data. A hive
// takes its inspections, tasks, harvests and hive-level access grants
// with it; an apiary additionally takes its hives, member rows and
// apiary-level grants. Each cascade runs in one transaction.
type CleanupService struct {
	apiaries    repository.ApiaryRepository
	hives       repository.HiveRepository
	inspections repository.InspectionRepository
	tasks       repository.TaskRepository
	harvests    repository.HarvestRepository
	sharing     repository.SharingRepository
	events      *nuts.EventEmitter
}

// New creates a new CleanupService
func New(
	apiaries repository.ApiaryRepository,
	hives repository.HiveRepository,
	inspections repository.InspectionRepository,
	tasks repository.TaskRepository,
	harvests repository.HarvestRepository,
	sharing repository.SharingRepository,
) *CleanupService {
	return &CleanupService{
		apiaries:    apiaries,
		hives:       hives,
		inspections: inspections,
		tasks:       tasks,
		harvests:    harvests,
		sharing:     sharing,
		events:      nuts.NewEventEmitter(),
	}
}

// DeleteHive deletes a hive and all its associated data
func (s *CleanupService) DeleteHive(ctx context.Context, hiveID string) error {
	tx, err := s.hives.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	if err := s.inspections.DeleteByHive(ctx, hiveID, tx); err != nil {
		return fmt.Errorf("failed to delete inspections: %w", err)
	}
	if err := s.tasks.DeleteByHive(ctx, hiveID, tx); err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}
	if err := s.harvests.DeleteByHive(ctx, hiveID, tx); err != nil {
		return fmt.Errorf("failed to delete harvests: %w", err)
	}
	if err := s.sharing.DeleteGrantsByResource(ctx, models.ResourceHive, hiveID, tx); err != nil {
		return fmt.Errorf("failed to delete access grants: %w", err)
	}
	if err := s.hives.Delete(ctx, hiveID, tx); err != nil {
		return fmt.Errorf("failed to delete hive: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Emit event after successful deletion
	s.events.Emit("hive.deleted", hiveID)
	return nil
}

// DeleteApiary deletes an apiary, its hives with their dependent data,
// its member rows and its apiary-level access grants
func (s *CleanupService) DeleteApiary(ctx context.Context, apiaryID string) error {
	hives, err := s.hives.ListByApiary(ctx, apiaryID)
	if err != nil {
		return fmt.Errorf("failed to list hives: %w", err)
	}

	tx, err := s.apiaries.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, hive := range hives {
		if err := s.inspections.DeleteByHive(ctx, hive.ID, tx); err != nil {
			return fmt.Errorf("failed to delete inspections: %w", err)
		}
		if err := s.tasks.DeleteByHive(ctx, hive.ID, tx); err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}
		if err := s.harvests.DeleteByHive(ctx, hive.ID, tx); err != nil {
			return fmt.Errorf("failed to delete harvests: %w", err)
		}
		if err := s.sharing.DeleteGrantsByResource(ctx, models.ResourceHive, hive.ID, tx); err != nil {
			return fmt.Errorf("failed to delete access grants: %w", err)
		}
		if err := s.hives.Delete(ctx, hive.ID, tx); err != nil {
			return fmt.Errorf("failed to delete hive: %w", err)
		}
		s.events.Emit("hive.deleted", hive.ID)
	}

	if err := s.sharing.DeleteGrantsByResource(ctx, models.ResourceApiary, apiaryID, tx); err != nil {
		return fmt.Errorf("failed to delete access grants: %w", err)
	}
	if err := s.apiaries.RemoveMembers(ctx, apiaryID, tx); err != nil {
		return fmt.Errorf("failed to remove members: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM apiaries WHERE id = $1", apiaryID); err != nil {
		return fmt.Errorf("failed to delete apiary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.events.Emit("apiary.deleted", apiaryID)
	return nil
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(id string)) {
	s.events.On(event, "cleanup_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}
