// FilePath: internal/hubservice/hubservice.hive.go
package hubservice

import (
	"context"
	"strings"
	"time"

	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
	"github.com/itsatony/struccy"
	nuts "github.com/vaudience/go-nuts"
)

// CreateHive creates a hive in an apiary. Owner/admin only; names must
// be unique within the apiary; a hive with no inspection starts in
// status new.
func (s *HubService) CreateHive(ctx context.Context, hive *models.Hive, profileID string) error {
	if strings.TrimSpace(hive.Name) == "" {
		return errors.NewValidationError("hive name is required", nil)
	}
	if _, err := s.requireHiveManager(ctx, hive.ApiaryID, profileID); err != nil {
		return err
	}
	count, err := s.Hives.CountByApiaryAndName(ctx, hive.ApiaryID, hive.Name, "")
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.NewValidationError("a hive with this name already exists in this apiary", nil)
	}
	hive.Status = models.HiveStatusNew
	if err := s.Hives.Create(ctx, hive); err != nil {
		return err
	}
	nuts.L.Infof("[HubService] Created hive %s (%s) in apiary %s", hive.Name, hive.ID, hive.ApiaryID)
	return nil
}

// ListHives returns the apiary's hives plus any hives individually
// shared with the profile, the latter tagged is_shared. Direct-apiary
// hives are never tagged.
func (s *HubService) ListHives(ctx context.Context, apiaryID, profileID string) ([]*models.Hive, error) {
	if _, err := s.effectiveRole(ctx, apiaryID, profileID); err != nil {
		return nil, err
	}
	hives, err := s.Hives.ListByApiary(ctx, apiaryID)
	if err != nil {
		return nil, err
	}
	shared, err := s.Hives.ListSharedWithProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(hives))
	for _, h := range hives {
		seen[h.ID] = true
	}
	for _, h := range shared {
		if seen[h.ID] {
			continue
		}
		h.IsShared = true
		hives = append(hives, h)
	}
	return hives, nil
}

// GetHive returns one hive if the profile reaches it via its apiary or
// a hive-level access grant.
func (s *HubService) GetHive(ctx context.Context, hiveID, profileID string) (*models.Hive, error) {
	hive, err := s.Hives.Get(ctx, hiveID)
	if err != nil {
		return nil, err
	}
	if _, err := s.effectiveRole(ctx, hive.ApiaryID, profileID); err == nil {
		return hive, nil
	} else if !errors.IsAuthorization(err) {
		return nil, err
	}
	if _, err := s.Sharing.GetGrant(ctx, profileID, models.ResourceHive, hiveID); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewAuthorizationError("no access to this hive", nil)
		}
		return nil, err
	}
	hive.IsShared = true
	return hive, nil
}

// UpdateHive applies the editable fields of a hive. The cached status
// fields stay untouched; field filtering is role based.
func (s *HubService) UpdateHive(ctx context.Context, hiveID string, updates *models.Hive, profileID string) (*models.Hive, error) {
	current, err := s.GetHive(ctx, hiveID, profileID)
	if err != nil {
		return nil, err
	}
	role, err := s.hiveRole(ctx, current, profileID)
	if err != nil {
		return nil, err
	}
	if updates.Name != "" && !strings.EqualFold(updates.Name, current.Name) {
		if !role.CanManageHives() {
			return nil, errors.NewAuthorizationError("only owners and admins may rename a hive", nil)
		}
		count, err := s.Hives.CountByApiaryAndName(ctx, current.ApiaryID, updates.Name, current.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.NewValidationError("a hive with this name already exists in this apiary", nil)
		}
		// Renames are safe: inspections reference the hive id, never the name
		current.Name = updates.Name
	}
	if role.CanManageHives() {
		current.Location = updates.Location
		current.IsNucleus = updates.IsNucleus
		current.IsWintered = updates.IsWintered
		current.Notes = updates.Notes
	} else {
		// Members write the fields their role allows, nothing more
		updatedFields, _, err := struccy.UpdateStructFields(current, updates, []string{string(role)}, true, true)
		if err != nil {
			return nil, errors.NewAuthorizationError("unauthorized field update", err)
		}
		nuts.L.Infof("[HubService] Hive %s fields changed: %v", current.ID, updatedFields)
	}
	current.UpdatedAt = time.Now()
	if err := s.Hives.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteHive cascades the hive and its dependents. Owner/admin only.
func (s *HubService) DeleteHive(ctx context.Context, hiveID, profileID string) error {
	hive, err := s.Hives.Get(ctx, hiveID)
	if err != nil {
		return err
	}
	if _, err := s.requireHiveManager(ctx, hive.ApiaryID, profileID); err != nil {
		return err
	}
	return s.Cleanup.DeleteHive(ctx, hiveID)
}

// hiveRole resolves the profile's role relative to a hive: the apiary
// role when reachable, else the hive-level grant's access level.
func (s *HubService) hiveRole(ctx context.Context, hive *models.Hive, profileID string) (models.Role, error) {
	role, err := s.effectiveRole(ctx, hive.ApiaryID, profileID)
	if err == nil {
		return role, nil
	}
	if !errors.IsAuthorization(err) {
		return "", err
	}
	grant, err := s.Sharing.GetGrant(ctx, profileID, models.ResourceHive, hive.ID)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.NewAuthorizationError("no access to this hive", nil)
		}
		return "", err
	}
	return models.Role(grant.AccessLevel), nil
}
