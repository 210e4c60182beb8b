package hubservice

import (
	"context"

	"github.com/bkeeper/hub/internal/advisor"
	"github.com/bkeeper/hub/internal/cleanup"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
	"github.com/bkeeper/hub/internal/repository"
)

// HubService contains all repositories and service-wide dependencies
// for the remote collaborative store.
type HubService struct {
	Profiles    repository.ProfileRepository
	Apiaries    repository.ApiaryRepository
	Hives       repository.HiveRepository
	Inspections repository.InspectionRepository
	Tasks       repository.TaskRepository
	Harvests    repository.HarvestRepository
	Sharing     repository.SharingRepository
	Cleanup     *cleanup.CleanupService

	advisor *advisor.Client
}

// New creates a new HubService instance
func New(
	profiles repository.ProfileRepository,
	apiaries repository.ApiaryRepository,
	hives repository.HiveRepository,
	inspections repository.InspectionRepository,
	tasks repository.TaskRepository,
	harvests repository.HarvestRepository,
	sharing repository.SharingRepository,
) *HubService {
	svc := &HubService{
		Profiles:    profiles,
		Apiaries:    apiaries,
		Hives:       hives,
		Inspections: inspections,
		Tasks:       tasks,
		Harvests:    harvests,
		Sharing:     sharing,
	}
	svc.Cleanup = cleanup.New(apiaries, hives, inspections, tasks, harvests, sharing)
	return svc
}

// Validate checks if all required repositories are initialized
func (s *HubService) Validate() error {
	if s.Profiles == nil {
		return ErrMissingRepository("profiles")
	}
	if s.Apiaries == nil {
		return ErrMissingRepository("apiaries")
	}
	if s.Hives == nil {
		return ErrMissingRepository("hives")
	}
	if s.Inspections == nil {
		return ErrMissingRepository("inspections")
	}
	if s.Tasks == nil {
		return ErrMissingRepository("tasks")
	}
	if s.Harvests == nil {
		return ErrMissingRepository("harvests")
	}
	if s.Sharing == nil {
		return ErrMissingRepository("sharing")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}

// effectiveRole resolves a profile's role for an apiary: a direct
// membership wins; otherwise an apiary-level shared access grant maps
// to its access level. No row at all means no access.
func (s *HubService) effectiveRole(ctx context.Context, apiaryID, profileID string) (models.Role, error) {
	member, err := s.Apiaries.GetMember(ctx, apiaryID, profileID)
	if err == nil {
		return member.Role, nil
	}
	if !errors.IsNotFound(err) {
		return "", err
	}
	grant, err := s.Sharing.GetGrant(ctx, profileID, models.ResourceApiary, apiaryID)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.NewAuthorizationError("no access to this apiary", nil)
		}
		return "", err
	}
	return models.Role(grant.AccessLevel), nil
}

// requireHiveManager gates hive create/delete on the owner/admin roles
func (s *HubService) requireHiveManager(ctx context.Context, apiaryID, profileID string) (models.Role, error) {
	role, err := s.effectiveRole(ctx, apiaryID, profileID)
	if err != nil {
		return "", err
	}
	if !role.CanManageHives() {
		return role, errors.NewAuthorizationError("only owners and admins may do this", nil)
	}
	return role, nil
}
