// FilePath: internal/models/models.hive.go
package models

import "time"

// HiveStatus is the classified health label of a hive
type HiveStatus string

const (
	HiveStatusNew       HiveStatus = "new"
	HiveStatusExcellent HiveStatus = "excellent"
	HiveStatusGood      HiveStatus = "good"
	HiveStatusWarning   HiveStatus = "warning"
	HiveStatusCritical  HiveStatus = "critical"
)

// Hive is a single colony. The status, population, varroa, frames and
// last_inspection fields are a display cache recomputed from the latest
// inspection; they are never edited directly.
type Hive struct {
	ID             string     `json:"id" db:"id"`
	ApiaryID       string     `json:"apiary_id" db:"apiary_id"`
	Name           string     `json:"name" db:"name"`
	Location       string     `json:"location,omitempty" db:"location"`
	Frames         string     `json:"frames" db:"frames"`
	Status         HiveStatus `json:"status" db:"status"`
	Population     string     `json:"population" db:"population"`
	Varroa         string     `json:"varroa" db:"varroa"`
	Honey          string     `json:"honey" db:"honey"`
	HasQueen       bool       `json:"has_queen" db:"has_queen"`
	QueenMarked    bool       `json:"queen_marked" db:"queen_marked"`
	QueenColor     string     `json:"queen_color,omitempty" db:"queen_color"`
	QueenClipped   bool       `json:"queen_wing_clipped" db:"queen_wing_clipped"`
	QueenAddedDate *time.Time `json:"queen_added_date,omitempty" db:"queen_added_date"`
	IsNucleus      bool       `json:"is_nucleus" db:"is_nucleus"`
	IsWintered     bool       `json:"is_wintered" db:"is_wintered"`
	Notes          string     `json:"notes,omitempty" db:"notes" writexs:"owner,admin,member"`
	LastInspection string     `json:"last_inspection" db:"last_inspection"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`

	// IsShared marks hives reached through a hive-level access grant
	// rather than apiary membership. Never set for direct-apiary hives.
	IsShared bool `json:"is_shared,omitempty" db:"is_shared"`
}

// LocalApiaryID is the apiary sentinel for hives in the device-local store
const LocalApiaryID = "local"
