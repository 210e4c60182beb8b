// FilePath: internal/localstore/localstore.go

// Package localstore is the device-private store used when no
// collaborative account exists. Collections are whole JSON-encoded
// arrays under string keys, replaced atomically on every mutation.
// Every load-mutate-save cycle runs inside one bbolt update
// transaction, so in-process writers are serialized and a later write
// can never clobber a concurrent earlier one.
package localstore

import (
	"encoding/json"
	"time"

	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
	"github.com/segmentio/ksuid"
	nuts "github.com/vaudience/go-nuts"
	bolt "go.etcd.io/bbolt"
)

// Collection keys, shared with any previously saved device data
const (
	CollectionHives       = "hives"
	CollectionInspections = "inspections"
	CollectionTasks       = "tasks"
	CollectionHarvests    = "harvests"
)

var bucketCollections = []byte("collections")

// Store is the device-local persisted store
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the local store file and seeds example data
// on first run. Seeding is idempotent: a non-empty hives collection is
// never overwritten.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errors.NewStorageError("failed to open local store", err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying store file
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketCollections)
		if err != nil {
			return err
		}
		if b.Get([]byte(CollectionHives)) == nil {
			nuts.L.Infof("[LocalStore] First run, seeding example hives")
			return seed(b)
		}
		return nil
	})
	if err != nil {
		return errors.NewStorageError("failed to initialize local store", err)
	}
	return nil
}

// load unmarshals a collection into v inside the given transaction.
// A missing key yields the zero value (empty list).
func load(b *bolt.Bucket, collection string, v interface{}) error {
	raw := b.Get([]byte(collection))
	if raw == nil {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// save overwrites the entire collection inside the given transaction
func save(b *bolt.Bucket, collection string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(collection), raw)
}

// view runs fn with read access to the collections bucket
func (s *Store) view(fn func(b *bolt.Bucket) error) error {
	err := s.db.View(func(tx *bolt.Tx) error {
		return fn(tx.Bucket(bucketCollections))
	})
	if err != nil {
		if _, ok := err.(*errors.APIError); ok {
			return err
		}
		return errors.NewStorageError("local store read failed", err)
	}
	return nil
}

// mutate runs fn as one load-mutate-save cycle. The update transaction
// is the single-writer funnel; fn must not retain the bucket.
func (s *Store) mutate(fn func(b *bolt.Bucket) error) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return fn(tx.Bucket(bucketCollections))
	})
	if err != nil {
		if _, ok := err.(*errors.APIError); ok {
			return err
		}
		return errors.NewStorageError("local store write failed", err)
	}
	return nil
}

func newLocalID() string {
	return ksuid.New().String()
}

// seed writes the deterministic first-run example data
func seed(b *bolt.Bucket) error {
	now := time.Now()
	queenAlpha := now.AddDate(0, -1, 0)
	queenBeta := now.AddDate(0, -2, 0)
	hives := []models.Hive{
		{
			ID: newLocalID(), ApiaryID: models.LocalApiaryID,
			Name: "Kupa Alpha", Location: "Norra ängen",
			Status: models.HiveStatusExcellent, Population: "Stark",
			Varroa: "1.2/dag", Honey: "25 kg", Frames: "18/20",
			HasQueen: true, QueenMarked: true, QueenColor: "yellow",
			QueenAddedDate: &queenAlpha,
			LastInspection: now.AddDate(0, 0, -3).Format("2006-01-02"),
			CreatedAt:      now, UpdatedAt: now,
		},
		{
			ID: newLocalID(), ApiaryID: models.LocalApiaryID,
			Name: "Kupa Beta", Location: "Södra skogen",
			Status: models.HiveStatusGood, Population: "Medel",
			Varroa: "3.2/dag", Honey: "18 kg", Frames: "14/20",
			HasQueen: true, QueenClipped: true,
			QueenAddedDate: &queenBeta,
			LastInspection: now.AddDate(0, 0, -6).Format("2006-01-02"),
			CreatedAt:      now, UpdatedAt: now,
		},
		{
			ID: newLocalID(), ApiaryID: models.LocalApiaryID,
			Name: "Kupa Gamma", Location: "Östra fältet",
			Status: models.HiveStatusWarning, Population: "Svag",
			Varroa: "6.8/dag", Honey: "8 kg", Frames: "10/20",
			LastInspection: now.AddDate(0, 0, -8).Format("2006-01-02"),
			CreatedAt:      now, UpdatedAt: now,
		},
	}
	if err := save(b, CollectionHives, hives); err != nil {
		return err
	}
	if err := save(b, CollectionInspections, []models.Inspection{}); err != nil {
		return err
	}
	if err := save(b, CollectionTasks, []models.Task{}); err != nil {
		return err
	}
	return save(b, CollectionHarvests, []models.Harvest{})
}
