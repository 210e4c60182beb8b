// FilePath: internal/hubservice/hubservice.inspection.go
package hubservice

import (
	"context"
	"time"

	"github.com/bkeeper/hub/internal/advisor"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/metrics"
	"github.com/bkeeper/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// SetAdvisor attaches the analysis client used on inspection saves.
// Inspections save fine without one; the advisor's own fallback covers
// the analysis when the service is unreachable.
func (s *HubService) SetAdvisor(c *advisor.Client) {
	s.advisor = c
}

// CreateInspection validates and persists an inspection, then updates
// the owning hive's cached display fields in the same transaction.
// Either both records change or neither does.
func (s *HubService) CreateInspection(ctx context.Context, insp *models.Inspection, profileID string) error {
	hive, err := s.Hives.Get(ctx, insp.HiveID)
	if err != nil {
		return err
	}
	role, err := s.hiveRole(ctx, hive, profileID)
	if err != nil {
		return err
	}
	_ = role // any role may inspect

	if insp.BroodFrames < 0 || insp.TotalFrames <= 0 {
		return errors.NewValidationError("frame counts must be positive", nil)
	}
	if insp.BroodFrames > insp.TotalFrames {
		return errors.NewValidationError("brood frames cannot exceed total frames", nil)
	}

	insp.InspectorID = profileID
	now := time.Now()
	if insp.Date == "" {
		insp.Date = now.Format("2006-01-02")
	}
	if insp.Time == "" {
		insp.Time = now.Format("15:04")
	}
	insp.CreatedAt = now
	insp.UpdatedAt = now

	metrics.Derive(insp)
	if insp.Rating == 0 {
		insp.Rating = metrics.RateInspection(insp)
	}
	if insp.AIAnalysis == nil && s.advisor != nil {
		analysis := s.advisor.Analyze(ctx, hive.Name, insp)
		insp.AIAnalysis = analysisToJSON(analysis)
	}

	metrics.ApplyToHive(hive, insp, now)

	if err := s.Inspections.CreateWithHiveUpdate(ctx, insp, hive); err != nil {
		return err
	}
	nuts.L.Infof("[HubService] Saved inspection %s for hive %s (status %s)", insp.ID, hive.ID, hive.Status)
	return nil
}

// GetInspection returns one inspection if its hive is reachable
func (s *HubService) GetInspection(ctx context.Context, inspectionID, profileID string) (*models.Inspection, error) {
	insp, err := s.Inspections.Get(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetHive(ctx, insp.HiveID, profileID); err != nil {
		return nil, err
	}
	return insp, nil
}

// ListInspections returns a hive's inspections, newest first,
// optionally limited to those on or after a date.
func (s *HubService) ListInspections(ctx context.Context, filters models.InspectionFilters, profileID string, offset, limit int) ([]*models.Inspection, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if _, err := s.GetHive(ctx, filters.HiveID, profileID); err != nil {
		return nil, err
	}
	return s.Inspections.ListByHive(ctx, filters, offset, limit)
}

func analysisToJSON(a *advisor.Analysis) models.JSON {
	if a == nil {
		return nil
	}
	return models.JSON{
		"observations":         a.Observations,
		"recommendations":      a.Recommendations,
		"status":               a.Status,
		"priority_actions":     a.PriorityActions,
		"next_inspection_days": a.NextInspectionDays,
	}
}
