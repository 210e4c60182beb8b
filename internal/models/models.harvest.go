// FilePath: internal/models/models.harvest.go
package models

import "time"

// Harvest records a honey harvest ("skattning") for one hive.
// EstimatedKg is derived from the frame count at entry time.
type Harvest struct {
	ID          string    `json:"id" db:"id"`
	HiveID      string    `json:"hive_id" db:"hive_id"`
	Date        string    `json:"date" db:"date"`
	HoneyFrames float64   `json:"honey_frames" db:"honey_frames"`
	EstimatedKg float64   `json:"estimated_kg" db:"estimated_kg"`
	Notes       string    `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
