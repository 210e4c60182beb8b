// FilePath: internal/localstore/localstore.inspections.go
package localstore

import (
	"time"

	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/metrics"
	"github.com/bkeeper/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
	bolt "go.etcd.io/bbolt"
)

// Inspections returns the full inspection collection
func (s *Store) Inspections() ([]models.Inspection, error) {
	var inspections []models.Inspection
	err := s.view(func(b *bolt.Bucket) error {
		return load(b, CollectionInspections, &inspections)
	})
	if err != nil {
		return nil, err
	}
	return inspections, nil
}

// InspectionsForHive returns inspections referencing one hive id
func (s *Store) InspectionsForHive(hiveID string) ([]models.Inspection, error) {
	all, err := s.Inspections()
	if err != nil {
		return nil, err
	}
	out := []models.Inspection{}
	for _, insp := range all {
		if insp.HiveID == hiveID {
			out = append(out, insp)
		}
	}
	return out, nil
}

// AddInspection validates and appends an inspection, then recomputes
// the owning hive's cached derived fields. Both collections are
// written inside one transaction so a crash cannot leave the hive
// cache behind the inspection log.
func (s *Store) AddInspection(insp *models.Inspection) error {
	if insp.HiveID == "" {
		return errors.NewValidationError("inspection must reference a hive", nil)
	}
	if insp.BroodFrames < 0 || insp.TotalFrames <= 0 {
		return errors.NewValidationError("brood and total frame counts are required", nil)
	}
	if insp.BroodFrames > insp.TotalFrames {
		return errors.NewValidationError("brood frames cannot exceed total frames", nil)
	}
	return s.mutate(func(b *bolt.Bucket) error {
		var hives []models.Hive
		if err := load(b, CollectionHives, &hives); err != nil {
			return err
		}
		var hive *models.Hive
		for i := range hives {
			if hives[i].ID == insp.HiveID {
				hive = &hives[i]
				break
			}
		}
		if hive == nil {
			return errors.NewNotFoundError("hive not found", nil)
		}

		now := time.Now()
		if insp.ID == "" {
			insp.ID = newLocalID()
		}
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

		var inspections []models.Inspection
		if err := load(b, CollectionInspections, &inspections); err != nil {
			return err
		}
		if err := save(b, CollectionInspections, append(inspections, *insp)); err != nil {
			return err
		}

		metrics.ApplyToHive(hive, insp, now)
		nuts.L.Infof("[LocalStore] Saved inspection %s for hive %s, status now %s", insp.ID, hive.Name, hive.Status)
		return save(b, CollectionHives, hives)
	})
}
