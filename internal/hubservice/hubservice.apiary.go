// FilePath: internal/hubservice/hubservice.apiary.go
package hubservice

import (
	"context"
	"strings"
	"time"

	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
	"github.com/itsatony/struccy"
	gonanoid "github.com/matoous/go-nanoid/v2"
	nuts "github.com/vaudience/go-nuts"
)

const inviteCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
const inviteCodeLength = 8

// newInviteCode generates an 8-char lowercase alphanumeric code
func newInviteCode() (string, error) {
	code, err := gonanoid.Generate(inviteCodeAlphabet, inviteCodeLength)
	if err != nil {
		return "", errors.NewInternalError("failed to generate invite code", err)
	}
	return code, nil
}

// CreateApiary creates an apiary with a fresh stable invite code and
// registers the creator as its owner member.
func (s *HubService) CreateApiary(ctx context.Context, apiary *models.Apiary, profileID string) error {
	if strings.TrimSpace(apiary.Name) == "" {
		return errors.NewValidationError("apiary name is required", nil)
	}
	code, err := newInviteCode()
	if err != nil {
		return err
	}
	apiary.OwnerID = profileID
	apiary.InviteCode = code
	if err := s.Apiaries.Create(ctx, apiary); err != nil {
		return err
	}
	member := &models.ApiaryMember{
		ApiaryID:  apiary.ID,
		ProfileID: profileID,
		Role:      models.RoleOwner,
	}
	if err := s.Apiaries.AddMember(ctx, member); err != nil {
		return err
	}
	nuts.L.Infof("[HubService] Created apiary %s (%s) for profile %s", apiary.Name, apiary.ID, profileID)
	apiary.Role = models.RoleOwner
	return nil
}

// ListApiaries returns all apiaries the profile can reach, with the
// effective role resolved per apiary. Invite codes are stripped for
// plain members by the API layer's field filtering.
func (s *HubService) ListApiaries(ctx context.Context, profileID string) ([]*models.Apiary, error) {
	return s.Apiaries.ListForProfile(ctx, profileID)
}

// GetApiary returns one apiary if the profile has access to it
func (s *HubService) GetApiary(ctx context.Context, apiaryID, profileID string) (*models.Apiary, error) {
	role, err := s.effectiveRole(ctx, apiaryID, profileID)
	if err != nil {
		return nil, err
	}
	apiary, err := s.Apiaries.Get(ctx, apiaryID)
	if err != nil {
		return nil, err
	}
	apiary.Role = role
	return apiary, nil
}

// UpdateApiary updates name/description/location. Owner or admin only.
func (s *HubService) UpdateApiary(ctx context.Context, apiary *models.Apiary, profileID string) error {
	role, err := s.effectiveRole(ctx, apiary.ID, profileID)
	if err != nil {
		return err
	}
	if !role.CanManageHives() {
		return errors.NewAuthorizationError("only owners and admins may update an apiary", nil)
	}
	current, err := s.Apiaries.Get(ctx, apiary.ID)
	if err != nil {
		return err
	}
	current.Name = apiary.Name
	current.Description = apiary.Description
	current.Location = apiary.Location
	current.UpdatedAt = time.Now()
	return s.Apiaries.Update(ctx, current)
}

// DeleteApiary cascades the apiary and everything under it. Owner only.
func (s *HubService) DeleteApiary(ctx context.Context, apiaryID, profileID string) error {
	apiary, err := s.Apiaries.Get(ctx, apiaryID)
	if err != nil {
		return err
	}
	if apiary.OwnerID != profileID {
		return errors.NewAuthorizationError("only the owner may delete an apiary", nil)
	}
	return s.Cleanup.DeleteApiary(ctx, apiaryID)
}

// ListApiaryMembers returns the member rows of an apiary
func (s *HubService) ListApiaryMembers(ctx context.Context, apiaryID, profileID string) ([]*models.ApiaryMember, error) {
	if _, err := s.effectiveRole(ctx, apiaryID, profileID); err != nil {
		return nil, err
	}
	return s.Apiaries.ListMembers(ctx, apiaryID)
}

// FilterApiaryForRole strips fields the role may not read, notably the
// invite code for plain members and shared-access viewers.
func FilterApiaryForRole(apiary *models.Apiary) (*models.Apiary, error) {
	roles := []string{string(apiary.Role)}
	filteredMap, err := struccy.StructToMapFieldsWithReadXS(apiary, roles)
	if err != nil {
		return nil, errors.NewInternalError("failed to filter apiary fields", err)
	}
	filtered := &models.Apiary{}
	if _, err := struccy.MergeMapStringFieldsToStruct(filtered, filteredMap, roles); err != nil {
		return nil, errors.NewInternalError("failed to map filtered apiary fields", err)
	}
	filtered.Role = apiary.Role
	return filtered, nil
}
