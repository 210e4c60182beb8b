// FilePath: internal/metrics/metrics.derive.go
package metrics

import (
	"time"

	"github.com/bkeeper/hub/internal/models"
)

// Derive fills an inspection's computed varroa fields from its raw
// count and elapsed days. Leaves them unset when no rate is defined.
func Derive(insp *models.Inspection) {
	if insp.VarroaCount == nil || insp.VarroaDays == nil {
		insp.VarroaPerDay = nil
		insp.VarroaLevel = string(VarroaUnknown)
		return
	}
	perDay, ok := VarroaPerDay(*insp.VarroaCount, *insp.VarroaDays)
	if !ok {
		insp.VarroaPerDay = nil
		insp.VarroaLevel = string(VarroaUnknown)
		return
	}
	insp.VarroaPerDay = &perDay
	insp.VarroaLevel = string(ClassifyVarroa(perDay))
}

// InspectionLevel returns the varroa level recorded on an inspection,
// VarroaUnknown when none was computed.
func InspectionLevel(insp *models.Inspection) VarroaLevel {
	if insp.VarroaPerDay == nil {
		return VarroaUnknown
	}
	return ClassifyVarroa(*insp.VarroaPerDay)
}

// ApplyToHive recomputes a hive's cached derived fields from a freshly
// saved inspection. This is the second phase of the inspection save;
// callers persist hive and inspection under one transaction.
func ApplyToHive(hive *models.Hive, insp *models.Inspection, now time.Time) {
	hive.Status = ClassifyStatus(insp.QueenSeen, InspectionLevel(insp), insp.Temperament)
	hive.Population = string(ClassifyPopulation(insp.BroodFrames))
	hive.Frames = FormatFrames(insp.BroodFrames, insp.TotalFrames)
	hive.LastInspection = insp.Date
	if insp.VarroaPerDay != nil {
		hive.Varroa = FormatVarroa(*insp.VarroaPerDay)
	}
	if insp.NewQueenAdded {
		hive.HasQueen = true
		if insp.NewQueenMarked != nil {
			hive.QueenMarked = *insp.NewQueenMarked
		}
		if insp.NewQueenClipped != nil {
			hive.QueenClipped = *insp.NewQueenClipped
		}
		if hive.QueenMarked {
			hive.QueenColor = insp.NewQueenColor
		} else {
			hive.QueenColor = ""
		}
		added := now
		hive.QueenAddedDate = &added
	}
	hive.UpdatedAt = now
}

// Observation ids that move an inspection rating, as selectable on the form
const (
	ObservationBroodPattern = "brood-pattern"
	ObservationBroodDisease = "brood-disease"
	ObservationPopStrong    = "pop-strong"
	ObservationPopWeak      = "pop-weak"
)

// RateInspection scores an inspection 1..5 from its findings.
// Starts neutral and moves with queen sighting, varroa pressure,
// temperament and selected observations.
func RateInspection(insp *models.Inspection) int {
	score := 3.0
	if insp.QueenSeen != nil {
		if *insp.QueenSeen {
			score++
		} else {
			score--
		}
	}
	if insp.VarroaPerDay != nil {
		if *insp.VarroaPerDay <= 2 {
			score++
		} else if *insp.VarroaPerDay > 5 {
			score--
		}
	}
	switch insp.Temperament {
	case models.TemperamentCalm:
		score += 0.5
	case models.TemperamentAggressive:
		score -= 0.5
	}
	for _, obs := range insp.Observations {
		switch obs {
		case ObservationBroodPattern, ObservationPopStrong:
			score += 0.5
		case ObservationBroodDisease:
			score -= 2
		case ObservationPopWeak:
			score--
		}
	}
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return int(score + 0.5)
}
