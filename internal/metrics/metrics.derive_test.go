// FilePath: internal/metrics/metrics.derive_test.go
package metrics

import (
	"testing"
	"time"

	"github.com/bkeeper/hub/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestDerive(t *testing.T) {
	insp := &models.Inspection{VarroaCount: floatPtr(10), VarroaDays: floatPtr(7)}
	Derive(insp)
	if insp.VarroaPerDay == nil {
		t.Fatal("expected a derived per-day rate")
	}
	if insp.VarroaLevel != string(VarroaLow) {
		t.Errorf("level = %q, want %q", insp.VarroaLevel, VarroaLow)
	}

	// Missing count leaves the rate unset rather than zero
	insp = &models.Inspection{VarroaDays: floatPtr(7)}
	Derive(insp)
	if insp.VarroaPerDay != nil || insp.VarroaLevel != "" {
		t.Error("expected unknown varroa for missing count")
	}

	// Zero elapsed days can never produce a rate
	insp = &models.Inspection{VarroaCount: floatPtr(10), VarroaDays: floatPtr(0)}
	Derive(insp)
	if insp.VarroaPerDay != nil {
		t.Error("expected no rate for zero days")
	}
}

func TestApplyToHive(t *testing.T) {
	now := time.Now()
	hive := &models.Hive{ID: "h1", Status: models.HiveStatusNew}
	insp := &models.Inspection{
		HiveID:      "h1",
		Date:        "2025-06-15",
		BroodFrames: 9,
		TotalFrames: 10,
		QueenSeen:   boolPtr(true),
		Temperament: models.TemperamentCalm,
		VarroaCount: floatPtr(10),
		VarroaDays:  floatPtr(7),
	}
	Derive(insp)
	ApplyToHive(hive, insp, now)

	if hive.Status != models.HiveStatusExcellent {
		t.Errorf("status = %q, want %q", hive.Status, models.HiveStatusExcellent)
	}
	if hive.Population != string(PopulationStrong) {
		t.Errorf("population = %q, want %q", hive.Population, PopulationStrong)
	}
	if hive.Frames != "9/10" {
		t.Errorf("frames = %q, want 9/10", hive.Frames)
	}
	if hive.Varroa != "1.4/dag" {
		t.Errorf("varroa = %q, want 1.4/dag", hive.Varroa)
	}
	if hive.LastInspection != "2025-06-15" {
		t.Errorf("last inspection = %q", hive.LastInspection)
	}
}

func TestApplyToHiveNewQueen(t *testing.T) {
	now := time.Now()
	hive := &models.Hive{ID: "h1"}
	insp := &models.Inspection{
		HiveID:         "h1",
		Date:           "2025-06-15",
		BroodFrames:    5,
		TotalFrames:    10,
		NewQueenAdded:  true,
		NewQueenMarked: boolPtr(true),
		NewQueenColor:  "yellow",
	}
	ApplyToHive(hive, insp, now)

	if !hive.HasQueen || !hive.QueenMarked {
		t.Error("expected queen flags to be set")
	}
	if hive.QueenColor != "yellow" {
		t.Errorf("queen color = %q, want yellow", hive.QueenColor)
	}
	if hive.QueenAddedDate == nil || !hive.QueenAddedDate.Equal(now) {
		t.Error("expected queen added date to be the inspection time")
	}
}

func TestRateInspection(t *testing.T) {
	// Queen seen, low varroa, calm, good brood pattern: top marks
	best := &models.Inspection{
		QueenSeen:    boolPtr(true),
		VarroaPerDay: floatPtr(1),
		Temperament:  models.TemperamentCalm,
		Observations: models.StringList{ObservationBroodPattern},
	}
	if got := RateInspection(best); got != 5 {
		t.Errorf("best case rating = %d, want 5", got)
	}

	// Queenless, heavy mites, disease: rock bottom
	worst := &models.Inspection{
		QueenSeen:    boolPtr(false),
		VarroaPerDay: floatPtr(9),
		Temperament:  models.TemperamentAggressive,
		Observations: models.StringList{ObservationBroodDisease, ObservationPopWeak},
	}
	if got := RateInspection(worst); got != 1 {
		t.Errorf("worst case rating = %d, want 1", got)
	}

	// Nothing recorded stays neutral
	if got := RateInspection(&models.Inspection{}); got != 3 {
		t.Errorf("neutral rating = %d, want 3", got)
	}
}
