// FilePath: internal/hubservice/hubservice.sharing.go
package hubservice

import (
	"context"
	"fmt"
	"time"

	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// RedemptionResult is returned by successful code and invite joins
type RedemptionResult struct {
	ResourceType models.ResourceType `json:"resource_type"`
	ResourceID   string              `json:"resource_id"`
	ResourceName string              `json:"resource_name"`
	AccessLevel  models.AccessLevel  `json:"access_level"`
}

// CreateSharingCode creates a one-shot sharing code for an apiary or
// hive. Only the resource owner may share it. Codes collide with an
// existing active code so rarely that a few retries suffice.
func (s *HubService) CreateSharingCode(ctx context.Context, code *models.SharingCode, profileID string) error {
	switch code.ResourceType {
	case models.ResourceApiary, models.ResourceHive:
	default:
		return errors.NewValidationError("unknown resource type", nil)
	}
	ownerID, err := s.resourceOwner(ctx, code.ResourceType, code.ResourceID)
	if err != nil {
		return err
	}
	if ownerID != profileID {
		return errors.NewAuthorizationError("only the owner may share this resource", nil)
	}
	if code.AccessLevel == "" {
		return errors.NewValidationError("access level is required", nil)
	}
	code.CreatedBy = profileID

	for attempt := 0; attempt < 5; attempt++ {
		generated, err := newInviteCode()
		if err != nil {
			return err
		}
		if _, err := s.Sharing.GetActiveByCode(ctx, generated); err == nil {
			continue // active collision, draw again
		} else if !errors.IsNotFound(err) {
			return err
		}
		code.Code = generated
		if err := s.Sharing.CreateCode(ctx, code); err != nil {
			return err
		}
		nuts.L.Infof("[HubService] Created sharing code %s for %s %s", code.Code, code.ResourceType, code.ResourceID)
		return nil
	}
	return errors.NewInternalError("could not generate a unique sharing code", nil)
}

// RedeemSharingCode validates a code at redemption time and grants the
// caller access. Outcomes: not_found (no active code), expired,
// exhausted, already_member (idempotent, no duplicate grant), or a new
// grant plus a use-count increment in one transaction.
func (s *HubService) RedeemSharingCode(ctx context.Context, codeStr, profileID string) (*RedemptionResult, error) {
	code, err := s.Sharing.GetActiveByCode(ctx, codeStr)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("sharing code not found", nil)
		}
		return nil, err
	}
	now := time.Now()
	if code.IsExpired(now) {
		return nil, errors.NewExpiredError("sharing code has expired")
	}
	if code.IsExhausted() {
		return nil, errors.NewExhaustedError("sharing code has no uses left")
	}

	name, err := s.resourceName(ctx, code.ResourceType, code.ResourceID)
	if err != nil {
		return nil, err
	}
	level := code.AccessLevel

	// Direct members never need a grant on top of their membership
	if code.ResourceType == models.ResourceApiary {
		if _, err := s.Apiaries.GetMember(ctx, code.ResourceID, profileID); err == nil {
			return nil, errors.NewAlreadyMemberError("already a member of this apiary")
		} else if !errors.IsNotFound(err) {
			return nil, err
		}
	}
	if _, err := s.Sharing.GetGrant(ctx, profileID, code.ResourceType, code.ResourceID); err == nil {
		return nil, errors.NewAlreadyMemberError("access already granted")
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	grant := &models.SharedAccess{
		SharingCodeID: code.ID,
		ProfileID:     profileID,
		ResourceType:  code.ResourceType,
		ResourceID:    code.ResourceID,
		AccessLevel:   level,
	}
	if err := s.Sharing.Redeem(ctx, code, grant); err != nil {
		return nil, err
	}
	nuts.L.Infof("[HubService] Profile %s redeemed code %s for %s %s", profileID, codeStr, code.ResourceType, code.ResourceID)
	return &RedemptionResult{
		ResourceType: code.ResourceType,
		ResourceID:   code.ResourceID,
		ResourceName: name,
		AccessLevel:  level,
	}, nil
}

// JoinApiaryByInviteCode joins an apiary via its stable invite code,
// inserting a member row with role member. Separate path from one-shot
// sharing codes; invite codes never expire or exhaust.
func (s *HubService) JoinApiaryByInviteCode(ctx context.Context, inviteCode, profileID string) (*RedemptionResult, error) {
	apiary, err := s.Apiaries.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("invalid invite code", nil)
		}
		return nil, err
	}
	if _, err := s.Apiaries.GetMember(ctx, apiary.ID, profileID); err == nil {
		return nil, errors.NewAlreadyMemberError("already a member of this apiary")
	} else if !errors.IsNotFound(err) {
		return nil, err
	}
	member := &models.ApiaryMember{
		ApiaryID:  apiary.ID,
		ProfileID: profileID,
		Role:      models.RoleMember,
	}
	if err := s.Apiaries.AddMember(ctx, member); err != nil {
		return nil, err
	}
	nuts.L.Infof("[HubService] Profile %s joined apiary %s via invite code", profileID, apiary.ID)
	return &RedemptionResult{
		ResourceType: models.ResourceApiary,
		ResourceID:   apiary.ID,
		ResourceName: apiary.Name,
		AccessLevel:  models.AccessMember,
	}, nil
}

// FormatInviteMessage renders the share-sheet text for an invite code
func FormatInviteMessage(apiaryName, inviteCode string) string {
	return fmt.Sprintf(
		"Gå med i min bigård \"%s\" i B.Keeper!\n\nAnvänd inbjudningskoden: %s",
		apiaryName, inviteCode,
	)
}

func (s *HubService) resourceOwner(ctx context.Context, rt models.ResourceType, id string) (string, error) {
	switch rt {
	case models.ResourceApiary:
		apiary, err := s.Apiaries.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return apiary.OwnerID, nil
	case models.ResourceHive:
		hive, err := s.Hives.Get(ctx, id)
		if err != nil {
			return "", err
		}
		apiary, err := s.Apiaries.Get(ctx, hive.ApiaryID)
		if err != nil {
			return "", err
		}
		return apiary.OwnerID, nil
	}
	return "", errors.NewValidationError("unknown resource type", nil)
}

func (s *HubService) resourceName(ctx context.Context, rt models.ResourceType, id string) (string, error) {
	switch rt {
	case models.ResourceApiary:
		apiary, err := s.Apiaries.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return apiary.Name, nil
	case models.ResourceHive:
		hive, err := s.Hives.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return hive.Name, nil
	}
	return "", errors.NewValidationError("unknown resource type", nil)
}
