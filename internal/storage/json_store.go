package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/quangnv/habitkit/internal/models"
)

// Store is the on-disk shape of the JSON provider.
type Store struct {
	Version int                    `json:"version"`
	NextID  int64                  `json:"next_id"`
	Habits  map[int64]models.Habit `json:"habits"`
}

// JSONStore is a plain-file Provider, selected when the config path ends
// in .json. It exists for debugging and tests; SQLite is the default.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		NextID:  1,
		Habits:  make(map[int64]models.Habit),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitkit init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Habits == nil {
		s.store.Habits = make(map[int64]models.Habit)
	}
	if s.store.NextID == 0 {
		s.store.NextID = 1
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Create(h models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	h.ID = s.store.NextID
	s.store.NextID++
	if h.CreatedAt == 0 {
		h.CreatedAt = time.Now().UnixMilli()
	}

	s.store.Habits[h.ID] = h
	return s.save()
}

func (s *JSONStore) GetAllActive() ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var habits []models.Habit
	for _, h := range s.store.Habits {
		if h.Active {
			habits = append(habits, h)
		}
	}

	// Map iteration order is random; match the SQLite provider's id order.
	sort.Slice(habits, func(i, j int) bool { return habits[i].ID < habits[j].ID })

	return habits, nil
}

func (s *JSONStore) GetByID(id int64) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	h, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, ErrNotFound
	}

	return h, nil
}

func (s *JSONStore) Update(h models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	existing, ok := s.store.Habits[h.ID]
	if !ok {
		// Missing id is a silent no-op, matching the SQLite provider.
		return nil
	}

	existing.Title = h.Title
	existing.Description = h.Description
	existing.Active = h.Active
	existing.DoneToday = h.DoneToday
	s.store.Habits[h.ID] = existing

	return s.save()
}

func (s *JSONStore) ToggleDone(id int64) (bool, error) {
	if s.store == nil {
		return false, fmt.Errorf("storage not loaded")
	}

	h, ok := s.store.Habits[id]
	if !ok {
		return false, ErrNotFound
	}

	h.DoneToday = !h.DoneToday
	s.store.Habits[id] = h

	if err := s.save(); err != nil {
		return false, err
	}
	return h.DoneToday, nil
}

func (s *JSONStore) SoftDelete(id int64) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	h, ok := s.store.Habits[id]
	if !ok {
		return nil
	}

	h.Active = false
	s.store.Habits[id] = h

	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
