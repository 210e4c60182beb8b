// FilePath: internal/metrics/metrics.go

// Package metrics turns raw inspection readings into classified hive
// health labels. Everything in here is a pure function of its inputs;
// missing readings yield explicit unknown values, never a panic.
package metrics

import (
	"fmt"
	"time"

	"github.com/bkeeper/hub/internal/models"
)

// VarroaLevel classifies mite pressure from a timed count
type VarroaLevel string

const (
	VarroaUnknown VarroaLevel = ""
	VarroaLow     VarroaLevel = "lågt"
	VarroaNormal  VarroaLevel = "normalt"
	VarroaHigh    VarroaLevel = "högt"
)

// Population classifies colony strength from brood frame count
type Population string

const (
	PopulationStrong Population = "Stark"
	PopulationMedium Population = "Medel"
	PopulationWeak   Population = "Svag"
)

// VarroaPerDay computes mites per day from a count over elapsed days.
// ok is false when the inputs cannot produce a defined rate.
func VarroaPerDay(count, days float64) (perDay float64, ok bool) {
	if count < 0 || days <= 0 {
		return 0, false
	}
	return count / days, true
}

// ClassifyVarroa maps a mites-per-day rate to a pressure level.
// Band boundaries at 2 and 5, inclusive on the lower side.
func ClassifyVarroa(perDay float64) VarroaLevel {
	switch {
	case perDay <= 2:
		return VarroaLow
	case perDay <= 5:
		return VarroaNormal
	default:
		return VarroaHigh
	}
}

// ClassifyPopulation maps a brood frame count to colony strength
func ClassifyPopulation(broodFrames int) Population {
	switch {
	case broodFrames >= 8:
		return PopulationStrong
	case broodFrames >= 5:
		return PopulationMedium
	default:
		return PopulationWeak
	}
}

// ClassifyStatus derives the hive status from an inspection snapshot.
// Priority order, first match wins:
//  1. queen explicitly not seen      -> critical
//  2. high varroa pressure           -> critical
//  3. normal pressure or aggressive  -> warning
//  4. queen seen and low pressure    -> excellent
//  5. otherwise                     -> good
//
// A hive with no inspection at all is StatusNew; ClassifyStatus never
// returns it.
func ClassifyStatus(queenSeen *bool, level VarroaLevel, temperament string) models.HiveStatus {
	if queenSeen != nil && !*queenSeen {
		return models.HiveStatusCritical
	}
	if level == VarroaHigh {
		return models.HiveStatusCritical
	}
	if level == VarroaNormal || temperament == models.TemperamentAggressive {
		return models.HiveStatusWarning
	}
	if queenSeen != nil && *queenSeen && level == VarroaLow {
		return models.HiveStatusExcellent
	}
	return models.HiveStatusGood
}

// QueenAgeDays returns the whole days between the queen-added date and
// now. ok is false when no date is recorded.
func QueenAgeDays(added *time.Time, now time.Time) (days int, ok bool) {
	if added == nil || added.IsZero() {
		return 0, false
	}
	diff := now.Sub(*added)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24), true
}

// FormatQueenAge renders an age in days the way the hive card shows it
func FormatQueenAge(days int) string {
	if days < 30 {
		return fmt.Sprintf("%d dagar", days)
	}
	if days < 365 {
		months := days / 30
		if months > 1 {
			return fmt.Sprintf("%d månader", months)
		}
		return "1 månad"
	}
	years := days / 365
	remainingMonths := (days % 365) / 30
	if remainingMonths > 0 {
		return fmt.Sprintf("%d år %d mån", years, remainingMonths)
	}
	return fmt.Sprintf("%d år", years)
}

// FormatVarroa renders a per-day rate for the hive display cache
func FormatVarroa(perDay float64) string {
	return fmt.Sprintf("%.1f/dag", perDay)
}

// FormatFrames renders the brood/total frame pair for the display cache
func FormatFrames(brood, total int) string {
	return fmt.Sprintf("%d/%d", brood, total)
}

// EstimateHoneyKg estimates harvest yield at 2 kg per full honey frame
func EstimateHoneyKg(frames float64) float64 {
	if frames <= 0 {
		return 0
	}
	return frames * 2
}
