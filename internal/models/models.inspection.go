// FilePath: internal/models/models.inspection.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSON is a wrapper around map[string]interface{} for database storage
type JSON map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &j)
}

// StringList is a wrapper around []string stored as a JSON column
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Inspection is a dated observation record for one hive. Inspections
// reference their hive by stable id in both stores and are immutable
// once created; saving one updates the owning hive's cached fields as
// a second phase of the same operation.
type Inspection struct {
	ID          string  `json:"id" db:"id"`
	HiveID      string  `json:"hive_id" db:"hive_id"`
	InspectorID string  `json:"inspector_id,omitempty" db:"inspector_id"`
	Date        string  `json:"date" db:"date"`
	Time        string  `json:"time,omitempty" db:"time"`
	Weather     string  `json:"weather,omitempty" db:"weather"`
	Temperature float64 `json:"temperature,omitempty" db:"temperature"`
	Duration    string  `json:"duration,omitempty" db:"duration"`

	BroodFrames int   `json:"brood_frames" db:"brood_frames"`
	TotalFrames int   `json:"total_frames" db:"total_frames"`
	QueenSeen   *bool `json:"queen_seen" db:"queen_seen"`
	Temperament string `json:"temperament,omitempty" db:"temperament"`

	VarroaCount  *float64 `json:"varroa_count,omitempty" db:"varroa_count"`
	VarroaDays   *float64 `json:"varroa_days,omitempty" db:"varroa_days"`
	VarroaPerDay *float64 `json:"varroa_per_day,omitempty" db:"varroa_per_day"`
	VarroaLevel  string   `json:"varroa_level,omitempty" db:"varroa_level"`

	Observations StringList `json:"observations" db:"observations"`
	Notes        string     `json:"notes,omitempty" db:"notes"`

	// Special action flags with their sub-fields
	IsWintering       bool     `json:"is_wintering" db:"is_wintering"`
	WinterFeed        *float64 `json:"winter_feed,omitempty" db:"winter_feed"`
	IsVarroaTreatment bool     `json:"is_varroa_treatment" db:"is_varroa_treatment"`
	TreatmentType     string   `json:"treatment_type,omitempty" db:"treatment_type"`
	NewQueenAdded     bool     `json:"new_queen_added" db:"new_queen_added"`
	NewQueenMarked    *bool    `json:"new_queen_marked,omitempty" db:"new_queen_marked"`
	NewQueenColor     string   `json:"new_queen_color,omitempty" db:"new_queen_color"`
	NewQueenClipped   *bool    `json:"new_queen_wing_clipped,omitempty" db:"new_queen_wing_clipped"`

	Rating     int        `json:"rating" db:"rating"`
	Findings   StringList `json:"findings" db:"findings"`
	AIAnalysis JSON       `json:"ai_analysis,omitempty" db:"ai_analysis"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Temperament values as entered on the inspection form
const (
	TemperamentCalm       = "Lugn"
	TemperamentNormal     = "Normal"
	TemperamentAggressive = "Aggressiv"
)
