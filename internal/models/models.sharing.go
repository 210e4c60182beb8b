// FilePath: internal/models/models.sharing.go
package models

import "time"

// ResourceType identifies what a sharing code or access grant points at
type ResourceType string

const (
	ResourceApiary ResourceType = "apiary"
	ResourceHive   ResourceType = "hive"
)

// AccessLevel is the access granted through a redeemed sharing code
type AccessLevel string

const (
	AccessMember AccessLevel = "member"
	AccessAdmin  AccessLevel = "admin"
)

// SharingCode is a one-shot redeemable token tied to one resource.
// Expiry and exhaustion are not transitioned automatically; they are
// checked at redemption time.
type SharingCode struct {
	ID           string       `json:"id" db:"id"`
	Code         string       `json:"code" db:"code"`
	ResourceType ResourceType `json:"resource_type" db:"resource_type"`
	ResourceID   string       `json:"resource_id" db:"resource_id"`
	CreatedBy    string       `json:"created_by" db:"created_by"`
	AccessLevel  AccessLevel  `json:"access_level" db:"access_level"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty" db:"expires_at"`
	MaxUses      *int         `json:"max_uses,omitempty" db:"max_uses"`
	CurrentUses  int          `json:"current_uses" db:"current_uses"`
	IsActive     bool         `json:"is_active" db:"is_active"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// IsExpired reports whether the code's expiry has passed
func (c *SharingCode) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// IsExhausted reports whether the code has reached its use limit
func (c *SharingCode) IsExhausted() bool {
	return c.MaxUses != nil && c.CurrentUses >= *c.MaxUses
}

// SharedAccess is one granted membership produced by a code redemption
type SharedAccess struct {
	ID            string       `json:"id" db:"id"`
	SharingCodeID string       `json:"sharing_code_id" db:"sharing_code_id"`
	ProfileID     string       `json:"profile_id" db:"profile_id"`
	ResourceType  ResourceType `json:"resource_type" db:"resource_type"`
	ResourceID    string       `json:"resource_id" db:"resource_id"`
	AccessLevel   AccessLevel  `json:"access_level" db:"access_level"`
	JoinedAt      time.Time    `json:"joined_at" db:"joined_at"`
}
