// FilePath: internal/models/models.apiary.go
package models

import "time"

// Role is the membership role of a profile within an apiary
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// CanManageHives reports whether the role may create or delete hives
func (r Role) CanManageHives() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Profile represents an authenticated user of the collaborative store
type Profile struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	AvatarURL string    `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Apiary is a named group of hives, ownable and shareable as a unit.
// InviteCode is the stable, non-expiring join code; one-shot sharing
// codes are a separate mechanism (SharingCode).
type Apiary struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	Location    string    `json:"location,omitempty" db:"location"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	InviteCode  string    `json:"invite_code" db:"invite_code" readxs:"owner,admin"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Role is the viewing profile's effective role, filled by list queries.
	Role Role `json:"role,omitempty" db:"role"`
}

// ApiaryMember is the join row between a profile and an apiary
type ApiaryMember struct {
	ID        string    `json:"id" db:"id"`
	ApiaryID  string    `json:"apiary_id" db:"apiary_id"`
	ProfileID string    `json:"profile_id" db:"profile_id"`
	Role      Role      `json:"role" db:"role"`
	JoinedAt  time.Time `json:"joined_at" db:"joined_at"`
}
