// FilePath: internal/metrics/metrics_test.go
package metrics

import (
	"testing"
	"time"

	"github.com/bkeeper/hub/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func TestVarroaPerDay(t *testing.T) {
	tests := []struct {
		name    string
		count   float64
		days    float64
		want    float64
		wantOK  bool
	}{
		{"simple rate", 10, 7, 10.0 / 7.0, true},
		{"zero days undefined", 10, 0, 0, false},
		{"negative days undefined", 10, -1, 0, false},
		{"negative count undefined", -1, 7, 0, false},
		{"zero count fine", 0, 7, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := VarroaPerDay(tt.count, tt.days)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("VarroaPerDay(%v, %v) = %v, %v; want %v, %v", tt.count, tt.days, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClassifyVarroaBoundaries(t *testing.T) {
	tests := []struct {
		perDay float64
		want   VarroaLevel
	}{
		{0, VarroaLow},
		{2, VarroaLow},      // boundary inclusive
		{2.01, VarroaNormal},
		{5, VarroaNormal},   // boundary inclusive
		{5.01, VarroaHigh},
		{8, VarroaHigh},
	}
	for _, tt := range tests {
		if got := ClassifyVarroa(tt.perDay); got != tt.want {
			t.Errorf("ClassifyVarroa(%v) = %q, want %q", tt.perDay, got, tt.want)
		}
	}
}

func TestClassifyPopulationBoundaries(t *testing.T) {
	tests := []struct {
		brood int
		want  Population
	}{
		{0, PopulationWeak},
		{4, PopulationWeak},
		{5, PopulationMedium},
		{7, PopulationMedium},
		{8, PopulationStrong},
		{12, PopulationStrong},
	}
	for _, tt := range tests {
		if got := ClassifyPopulation(tt.brood); got != tt.want {
			t.Errorf("ClassifyPopulation(%d) = %q, want %q", tt.brood, got, tt.want)
		}
	}
}

func TestClassifyStatusPriority(t *testing.T) {
	tests := []struct {
		name        string
		queenSeen   *bool
		level       VarroaLevel
		temperament string
		want        models.HiveStatus
	}{
		{"queen missing wins over low varroa", boolPtr(false), VarroaLow, models.TemperamentCalm, models.HiveStatusCritical},
		{"high varroa is critical", boolPtr(true), VarroaHigh, models.TemperamentCalm, models.HiveStatusCritical},
		{"normal varroa is warning", boolPtr(true), VarroaNormal, models.TemperamentCalm, models.HiveStatusWarning},
		{"aggressive is warning", boolPtr(true), VarroaLow, models.TemperamentAggressive, models.HiveStatusWarning},
		{"queen seen and low is excellent", boolPtr(true), VarroaLow, models.TemperamentCalm, models.HiveStatusExcellent},
		{"unknown queen and low is good", nil, VarroaLow, models.TemperamentNormal, models.HiveStatusGood},
		{"unknown everything is good", nil, VarroaUnknown, "", models.HiveStatusGood},
		{"queen seen but unknown varroa is good", boolPtr(true), VarroaUnknown, "", models.HiveStatusGood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyStatus(tt.queenSeen, tt.level, tt.temperament); got != tt.want {
				t.Errorf("ClassifyStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStrongCalmHiveScenario(t *testing.T) {
	// 9 brood frames, 10 mites over 7 days, queen seen, calm:
	// strong population, low pressure, excellent status.
	perDay, ok := VarroaPerDay(10, 7)
	if !ok {
		t.Fatal("expected a defined rate")
	}
	if got := ClassifyVarroa(perDay); got != VarroaLow {
		t.Errorf("varroa level = %q, want %q", got, VarroaLow)
	}
	if got := ClassifyPopulation(9); got != PopulationStrong {
		t.Errorf("population = %q, want %q", got, PopulationStrong)
	}
	if got := ClassifyStatus(boolPtr(true), ClassifyVarroa(perDay), models.TemperamentCalm); got != models.HiveStatusExcellent {
		t.Errorf("status = %q, want %q", got, models.HiveStatusExcellent)
	}
}

func TestHighVarroaScenario(t *testing.T) {
	// 40 mites over 5 days is 8/day: high pressure, critical status
	// even with the queen present.
	perDay, _ := VarroaPerDay(40, 5)
	if got := ClassifyVarroa(perDay); got != VarroaHigh {
		t.Errorf("varroa level = %q, want %q", got, VarroaHigh)
	}
	if got := ClassifyStatus(boolPtr(true), VarroaHigh, models.TemperamentCalm); got != models.HiveStatusCritical {
		t.Errorf("status = %q, want %q", got, models.HiveStatusCritical)
	}
}

func TestQueenAgeDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	added := now.AddDate(0, 0, -45)
	days, ok := QueenAgeDays(&added, now)
	if !ok || days != 45 {
		t.Errorf("QueenAgeDays = %d, %v; want 45, true", days, ok)
	}
	if _, ok := QueenAgeDays(nil, now); ok {
		t.Error("expected ok=false for missing date")
	}
}

func TestFormatQueenAge(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "0 dagar"},
		{29, "29 dagar"},
		{30, "1 månad"},
		{59, "1 månad"},
		{60, "2 månader"},
		{364, "12 månader"},
		{365, "1 år"},
		{400, "1 år 1 mån"},
		{800, "2 år 2 mån"},
	}
	for _, tt := range tests {
		if got := FormatQueenAge(tt.days); got != tt.want {
			t.Errorf("FormatQueenAge(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestFormatters(t *testing.T) {
	if got := FormatVarroa(1.4285714); got != "1.4/dag" {
		t.Errorf("FormatVarroa = %q", got)
	}
	if got := FormatFrames(18, 20); got != "18/20" {
		t.Errorf("FormatFrames = %q", got)
	}
}

func TestEstimateHoneyKg(t *testing.T) {
	if got := EstimateHoneyKg(5); got != 10 {
		t.Errorf("EstimateHoneyKg(5) = %v, want 10", got)
	}
	if got := EstimateHoneyKg(-1); got != 0 {
		t.Errorf("EstimateHoneyKg(-1) = %v, want 0", got)
	}
}
