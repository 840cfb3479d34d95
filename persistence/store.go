package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
	"go.uber.org/zap"
)

const (
	appName     = "customgravity"
	gravityItem = "gravity"
)

// SavedGravity is the pause menu state that survives restarts.
type SavedGravity struct {
	Preset      string `json:"preset"`
	Composition string `json:"composition"`
}

// itemStore is the subset of gdata.Manager the store needs.
type itemStore interface {
	LoadItem(name string) ([]byte, error)
	SaveItem(name string, data []byte) error
}

// Store reads and writes SavedGravity. A nil or disabled Store is a no-op, so
// callers do not need to special-case -no-persist or a broken data dir.
type Store struct {
	items  itemStore
	logger *zap.Logger
}

// Open opens the per-user data directory through gdata.
func Open(logger *zap.Logger) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("persistence: open: %w", err)
	}
	return newStore(m, logger), nil
}

func newStore(items itemStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{items: items, logger: logger}
}

// LoadGravity returns the saved settings, or nil when nothing was saved yet.
func (s *Store) LoadGravity() (*SavedGravity, error) {
	if s == nil || s.items == nil {
		return nil, nil
	}
	data, err := s.items.LoadItem(gravityItem)
	if err != nil {
		return nil, fmt.Errorf("persistence: load %s: %w", gravityItem, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var saved SavedGravity
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("persistence: parse %s: %w", gravityItem, err)
	}
	return &saved, nil
}

func (s *Store) SaveGravity(saved SavedGravity) error {
	if s == nil || s.items == nil {
		return nil
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("persistence: encode %s: %w", gravityItem, err)
	}
	if err := s.items.SaveItem(gravityItem, data); err != nil {
		return fmt.Errorf("persistence: save %s: %w", gravityItem, err)
	}
	s.logger.Debug("settings saved",
		zap.String("preset", saved.Preset),
		zap.String("composition", saved.Composition),
	)
	return nil
}

// Clear forgets the saved settings.
func (s *Store) Clear() error {
	if s == nil || s.items == nil {
		return nil
	}
	if err := s.items.SaveItem(gravityItem, nil); err != nil {
		return fmt.Errorf("persistence: clear %s: %w", gravityItem, err)
	}
	return nil
}
