package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/acmelogistics/inbound-api/internal/models"
)

// JSONLoadStore keeps the load registry as a single JSON document on disk.
// Every create rewrites the whole collection, so writes are serialized behind
// a single-writer lock and land via temp file + rename to avoid losing the
// document on a crash mid-write.
type JSONLoadStore struct {
	path string
	mu   sync.RWMutex
}

func NewJSONLoadStore(path string) *JSONLoadStore {
	return &JSONLoadStore{path: path}
}

// readAll loads the collection from disk. A missing file is an empty registry.
func (s *JSONLoadStore) readAll() ([]models.Load, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read loads file: %w", err)
	}
	var loads []models.Load
	if err := json.Unmarshal(data, &loads); err != nil {
		return nil, fmt.Errorf("parse loads file: %w", err)
	}
	return loads, nil
}

// writeAll rewrites the collection wholesale. Must be called with mu held.
func (s *JSONLoadStore) writeAll(loads []models.Load) error {
	data, err := json.MarshalIndent(loads, "", "    ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create loads dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "loads-*.json")
	if err != nil {
		return fmt.Errorf("write loads file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write loads file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write loads file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace loads file: %w", err)
	}
	return nil
}

func (s *JSONLoadStore) Search(ctx context.Context, f LoadFilter) ([]models.Load, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loads, err := s.readAll()
	if err != nil {
		return nil, err
	}

	filtered := loads[:0:0]
	for _, l := range loads {
		if f.Origin != "" && !strings.EqualFold(l.Origin, f.Origin) {
			continue
		}
		if f.Destination != "" && !strings.EqualFold(l.Destination, f.Destination) {
			continue
		}
		if f.EquipmentType != "" && !strings.EqualFold(l.EquipmentType, f.EquipmentType) {
			continue
		}
		filtered = append(filtered, l)
	}

	if len(filtered) == 0 {
		return nil, ErrNoMatchingLoads
	}
	return filtered, nil
}

func (s *JSONLoadStore) GetByID(ctx context.Context, loadID string) (models.Load, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loads, err := s.readAll()
	if err != nil {
		return models.Load{}, err
	}
	for _, l := range loads {
		if l.LoadID == loadID {
			return l, nil
		}
	}
	return models.Load{}, ErrLoadNotFound
}

func (s *JSONLoadStore) Create(ctx context.Context, load models.Load) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loads, err := s.readAll()
	if err != nil {
		return 0, err
	}
	for _, l := range loads {
		if l.LoadID == load.LoadID {
			return 0, ErrDuplicateLoad
		}
	}

	loads = append(loads, load)
	if err := s.writeAll(loads); err != nil {
		return 0, err
	}
	return len(loads), nil
}
