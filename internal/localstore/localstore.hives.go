// FilePath: internal/localstore/localstore.hives.go
package localstore

import (
	"strings"
	"time"

	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
	bolt "go.etcd.io/bbolt"
)

// Hives returns the full hive collection with schema defaults applied
func (s *Store) Hives() ([]models.Hive, error) {
	var hives []models.Hive
	err := s.view(func(b *bolt.Bucket) error {
		return load(b, CollectionHives, &hives)
	})
	if err != nil {
		return nil, err
	}
	for i := range hives {
		normalizeHive(&hives[i])
	}
	return hives, nil
}

// GetHive returns one hive by id
func (s *Store) GetHive(id string) (*models.Hive, error) {
	hives, err := s.Hives()
	if err != nil {
		return nil, err
	}
	for i := range hives {
		if hives[i].ID == id {
			return &hives[i], nil
		}
	}
	return nil, errors.NewNotFoundError("hive not found", nil)
}

// AddHive appends a new hive. Names must be unique within the local
// collection; a hive with no inspection starts in status new.
func (s *Store) AddHive(hive *models.Hive) error {
	if strings.TrimSpace(hive.Name) == "" {
		return errors.NewValidationError("hive name is required", nil)
	}
	return s.mutate(func(b *bolt.Bucket) error {
		var hives []models.Hive
		if err := load(b, CollectionHives, &hives); err != nil {
			return err
		}
		for _, h := range hives {
			if strings.EqualFold(h.Name, hive.Name) {
				return errors.NewValidationError("a hive with this name already exists", nil)
			}
		}
		if hive.ID == "" {
			hive.ID = newLocalID()
		}
		hive.ApiaryID = models.LocalApiaryID
		hive.Status = models.HiveStatusNew
		now := time.Now()
		hive.CreatedAt = now
		hive.UpdatedAt = now
		nuts.L.Infof("[LocalStore] Adding hive %s (%s)", hive.Name, hive.ID)
		return save(b, CollectionHives, append(hives, *hive))
	})
}

// UpdateHive replaces a hive's editable fields. Renames are safe:
// inspections reference the hive id, never the name.
func (s *Store) UpdateHive(hive *models.Hive) error {
	return s.mutate(func(b *bolt.Bucket) error {
		var hives []models.Hive
		if err := load(b, CollectionHives, &hives); err != nil {
			return err
		}
		for _, h := range hives {
			if h.ID != hive.ID && strings.EqualFold(h.Name, hive.Name) {
				return errors.NewValidationError("a hive with this name already exists", nil)
			}
		}
		for i := range hives {
			if hives[i].ID == hive.ID {
				cur := &hives[i]
				cur.Name = hive.Name
				cur.Location = hive.Location
				cur.Notes = hive.Notes
				cur.IsNucleus = hive.IsNucleus
				cur.IsWintered = hive.IsWintered
				cur.UpdatedAt = time.Now()
				return save(b, CollectionHives, hives)
			}
		}
		return errors.NewNotFoundError("hive not found", nil)
	})
}

// DeleteHive removes a hive and, as a compensating action, every
// inspection referencing it. Both collections change in one
// transaction.
func (s *Store) DeleteHive(id string) error {
	return s.mutate(func(b *bolt.Bucket) error {
		var hives []models.Hive
		if err := load(b, CollectionHives, &hives); err != nil {
			return err
		}
		kept := hives[:0]
		found := false
		for _, h := range hives {
			if h.ID == id {
				found = true
				continue
			}
			kept = append(kept, h)
		}
		if !found {
			return errors.NewNotFoundError("hive not found", nil)
		}
		if err := save(b, CollectionHives, kept); err != nil {
			return err
		}

		var inspections []models.Inspection
		if err := load(b, CollectionInspections, &inspections); err != nil {
			return err
		}
		keptInsp := inspections[:0]
		for _, insp := range inspections {
			if insp.HiveID == id {
				continue
			}
			keptInsp = append(keptInsp, insp)
		}
		nuts.L.Infof("[LocalStore] Deleted hive %s and %d inspections", id, len(inspections)-len(keptInsp))
		return save(b, CollectionInspections, keptInsp)
	})
}

// normalizeHive fills defaults for records saved under older schemas
func normalizeHive(h *models.Hive) {
	if h.ApiaryID == "" {
		h.ApiaryID = models.LocalApiaryID
	}
	if h.Status == "" {
		h.Status = models.HiveStatusNew
	}
}
