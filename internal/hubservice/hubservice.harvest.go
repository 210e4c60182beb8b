// FilePath: internal/hubservice/hubservice.harvest.go
package hubservice

import (
	"context"
	"time"

	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/metrics"
	"github.com/bkeeper/hub/internal/models"
)

// CreateHarvest records a honey harvest for a hive. The estimated
// weight is derived from the frame count when not supplied.
func (s *HubService) CreateHarvest(ctx context.Context, harvest *models.Harvest, profileID string) error {
	hive, err := s.Hives.Get(ctx, harvest.HiveID)
	if err != nil {
		return err
	}
	if _, err := s.hiveRole(ctx, hive, profileID); err != nil {
		return err
	}
	if harvest.HoneyFrames <= 0 {
		return errors.NewValidationError("honey frame count must be positive", nil)
	}
	if harvest.EstimatedKg == 0 {
		harvest.EstimatedKg = metrics.EstimateHoneyKg(harvest.HoneyFrames)
	}
	if harvest.Date == "" {
		harvest.Date = time.Now().Format("2006-01-02")
	}
	return s.Harvests.Create(ctx, harvest)
}

// ListHarvests returns a hive's harvest records
func (s *HubService) ListHarvests(ctx context.Context, hiveID, profileID string) ([]*models.Harvest, error) {
	if _, err := s.GetHive(ctx, hiveID, profileID); err != nil {
		return nil, err
	}
	return s.Harvests.ListByHive(ctx, hiveID)
}

// SeasonTotalKg sums a hive's estimated harvest weight since the start
// of the current year.
func (s *HubService) SeasonTotalKg(ctx context.Context, hiveID, profileID string) (float64, error) {
	if _, err := s.GetHive(ctx, hiveID, profileID); err != nil {
		return 0, err
	}
	yearStart := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return s.Harvests.TotalKgSince(ctx, hiveID, yearStart)
}
