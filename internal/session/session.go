// FilePath: internal/session/session.go

// Package session decides, per request, whether the active collection
// is the device-local store or the remote collaborative store, and
// which apiary a collaborative session has selected. The two stores
// use different identifier spaces, so a single request never mixes
// reads from one with writes to the other.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/bkeeper/hub/internal/config"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// Mode is the store a session operates against
type Mode string

const (
	ModeLocal         Mode = "local"
	ModeCollaborative Mode = "collaborative"
)

const selectionTTL = 30 * 24 * time.Hour

// Manager resolves session mode and remembers each profile's selected
// apiary between sessions.
type Manager struct {
	rdb *redis.Client
}

// NewManager connects the session manager to redis
func NewManager(cfg config.RedisConfig) *Manager {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Manager{rdb: rdb}
}

// Resolve returns the mode for a request: local-only when no
// authenticated profile exists, collaborative otherwise.
func (m *Manager) Resolve(profileID string) Mode {
	if profileID == "" {
		return ModeLocal
	}
	return ModeCollaborative
}

func selectionKey(profileID string) string {
	return "bkeeper:selected_apiary:" + profileID
}

// SelectedApiary returns the profile's selected apiary id, empty when
// none has been chosen yet (callers fall back to the first listed).
func (m *Manager) SelectedApiary(ctx context.Context, profileID string) (string, error) {
	val, err := m.rdb.Get(ctx, selectionKey(profileID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.NewStorageError("failed to read apiary selection", err)
	}
	return val, nil
}

// SelectApiary records the profile's active apiary choice
func (m *Manager) SelectApiary(ctx context.Context, profileID, apiaryID string) error {
	err := m.rdb.Set(ctx, selectionKey(profileID), apiaryID, selectionTTL).Err()
	if err != nil {
		return errors.NewStorageError("failed to store apiary selection", err)
	}
	nuts.L.Infof("[Session] Profile %s selected apiary %s", profileID, apiaryID)
	return nil
}

// ClearSelection drops the stored choice, e.g. after apiary deletion
func (m *Manager) ClearSelection(ctx context.Context, profileID string) error {
	if err := m.rdb.Del(ctx, selectionKey(profileID)).Err(); err != nil {
		return errors.NewStorageError("failed to clear apiary selection", err)
	}
	return nil
}

// Ping verifies the redis connection
func (m *Manager) Ping(ctx context.Context) error {
	return m.rdb.Ping(ctx).Err()
}

// Close releases the redis connection
func (m *Manager) Close() error {
	return m.rdb.Close()
}
