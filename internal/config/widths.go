package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrStoreCorrupted indicates the width state file exists but contains invalid data.
var ErrStoreCorrupted = errors.New("column width state file corrupted")

// WidthStoreVersion is the current schema version for the width state file.
const WidthStoreVersion = 1

// widthStoreData is the serialized form of the width store.
type widthStoreData struct {
	Version int                       `json:"version"`
	Views   map[string]map[string]int `json:"views"`
	Updated time.Time                 `json:"updated"`
}

// WidthStore persists user column widths per view, keyed by column id.
type WidthStore struct {
	mu       sync.RWMutex
	filePath string
	views    map[string]map[string]int
}

// NewWidthStore creates a store backed by filePath. An empty path uses ~/.sift/widths.json.
func NewWidthStore(filePath string) (*WidthStore, error) {
	if filePath == "" {
		p, err := WidthsPath()
		if err != nil {
			return nil, err
		}
		filePath = p
	}
	return &WidthStore{
		filePath: filePath,
		views:    make(map[string]map[string]int),
	}, nil
}

// FilePath returns the backing file.
func (s *WidthStore) FilePath() string {
	return s.filePath
}

// Load reads the state file. A missing file leaves the store empty.
func (s *WidthStore) Load() error {
	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading width state %s: %w", s.filePath, err)
	}

	var stored widthStoreData
	if err = json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreCorrupted, err)
	}
	if stored.Version > WidthStoreVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrStoreCorrupted, stored.Version)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = make(map[string]map[string]int, len(stored.Views))
	for view, widths := range stored.Views {
		s.views[view] = maps.Clone(widths)
	}
	return nil
}

// Get returns a copy of the widths saved for view.
func (s *WidthStore) Get(view string) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.views[view])
}

// Set records widths for view. Non-positive widths are dropped.
func (s *WidthStore) Set(view string, widths map[string]int) {
	clean := make(map[string]int, len(widths))
	for id, w := range widths {
		if w > 0 {
			clean[id] = w
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[view] = clean
}

// Save writes the state file atomically through a temp file and rename.
func (s *WidthStore) Save() error {
	s.mu.RLock()
	stored := widthStoreData{
		Version: WidthStoreVersion,
		Views:   make(map[string]map[string]int, len(s.views)),
		Updated: time.Now().UTC(),
	}
	for view, widths := range s.views {
		stored.Views[view] = maps.Clone(widths)
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling width state: %w", err)
	}

	dir := filepath.Dir(s.filePath)
	if err = os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".widths-*.json")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp state file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp state file: %w", err)
	}
	if err = os.Rename(tmpName, s.filePath); err != nil {
		return fmt.Errorf("replacing width state %s: %w", s.filePath, err)
	}
	return nil
}
