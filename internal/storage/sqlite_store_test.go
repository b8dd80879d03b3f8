package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/quangnv/habitkit/internal/models"
)

func setupTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestCreateAssignsDefaults(t *testing.T) {
	store := setupTestSQLiteStore(t)

	if err := store.Create(models.NewHabit("Drink Water", "2 liters a day")); err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	habits, err := store.GetAllActive()
	if err != nil {
		t.Fatalf("failed to get habits: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}

	h := habits[0]
	if h.ID == 0 {
		t.Error("expected store-assigned id, got 0")
	}
	if h.Title != "Drink Water" {
		t.Errorf("expected title %q, got %q", "Drink Water", h.Title)
	}
	if h.Description != "2 liters a day" {
		t.Errorf("expected description %q, got %q", "2 liters a day", h.Description)
	}
	if !h.Active {
		t.Error("new habit should be active")
	}
	if h.DoneToday {
		t.Error("new habit should not be done today")
	}
	if h.CreatedAt == 0 {
		t.Error("expected created_at to be assigned")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := setupTestSQLiteStore(t)

	_, err := store.GetByID(42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleDoneIsInvolution(t *testing.T) {
	store := setupTestSQLiteStore(t)

	if err := store.Create(models.NewHabit("Read Book", "")); err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	habits, err := store.GetAllActive()
	if err != nil {
		t.Fatalf("failed to get habits: %v", err)
	}
	id := habits[0].ID

	done, err := store.ToggleDone(id)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !done {
		t.Error("expected done=true after first toggle")
	}

	done, err = store.ToggleDone(id)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if done {
		t.Error("expected done=false after second toggle")
	}

	h, err := store.GetByID(id)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if h.DoneToday {
		t.Error("double toggle should return done_today to its original value")
	}
}

func TestToggleDoneMissingID(t *testing.T) {
	store := setupTestSQLiteStore(t)

	_, err := store.ToggleDone(99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	store := setupTestSQLiteStore(t)

	if err := store.Create(models.NewHabit("Meditate", "")); err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	err := store.Update(models.Habit{ID: 999, Title: "Ghost", Active: true})
	if err != nil {
		t.Fatalf("update of missing id should not error, got %v", err)
	}

	habits, err := store.GetAllActive()
	if err != nil {
		t.Fatalf("failed to get habits: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
	if habits[0].Title != "Meditate" {
		t.Errorf("existing habit should be unchanged, got title %q", habits[0].Title)
	}
}

func TestUpdateOverwritesAllMutableFields(t *testing.T) {
	store := setupTestSQLiteStore(t)

	if err := store.Create(models.NewHabit("Run", "morning")); err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	habits, _ := store.GetAllActive()
	h := habits[0]

	h.Title = "Run 5k"
	h.Description = "evening"
	h.DoneToday = true
	if err := store.Update(h); err != nil {
		t.Fatalf("failed to update habit: %v", err)
	}

	got, err := store.GetByID(h.ID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if got.Title != "Run 5k" || got.Description != "evening" || !got.DoneToday {
		t.Errorf("update not applied: %+v", got)
	}
	if got.CreatedAt != h.CreatedAt {
		t.Error("created_at must never be mutated by update")
	}
}

func TestSoftDelete(t *testing.T) {
	store := setupTestSQLiteStore(t)

	if err := store.Create(models.NewHabit("Journal", "")); err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	habits, _ := store.GetAllActive()
	id := habits[0].ID

	if err := store.SoftDelete(id); err != nil {
		t.Fatalf("failed to soft delete: %v", err)
	}

	habits, err := store.GetAllActive()
	if err != nil {
		t.Fatalf("failed to get habits: %v", err)
	}
	for _, h := range habits {
		if h.ID == id {
			t.Error("soft-deleted habit should not appear in GetAllActive")
		}
	}

	// The row remains and is still readable by id.
	h, err := store.GetByID(id)
	if err != nil {
		t.Fatalf("soft-deleted habit should still exist: %v", err)
	}
	if h.Active {
		t.Error("soft-deleted habit should have active=false")
	}
}

func TestGetAllActiveInsertionOrder(t *testing.T) {
	store := setupTestSQLiteStore(t)

	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		if err := store.Create(models.NewHabit(title, "")); err != nil {
			t.Fatalf("failed to create habit %q: %v", title, err)
		}
	}

	habits, err := store.GetAllActive()
	if err != nil {
		t.Fatalf("failed to get habits: %v", err)
	}
	if len(habits) != len(titles) {
		t.Fatalf("expected %d habits, got %d", len(titles), len(habits))
	}
	for i, title := range titles {
		if habits[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, habits[i].Title)
		}
	}
}

func TestLoadBeforeInitFails(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")
	store := NewSQLiteStore(dbPath)

	if err := store.Load(); err == nil {
		t.Error("expected error loading uninitialized storage")
	}
}
