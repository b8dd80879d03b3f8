package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/quangnv/habitkit/internal/models"
	"github.com/quangnv/habitkit/internal/storage"
)

// newTestServer serves body with the given status for every request.
func newTestServer(t *testing.T, statusCode int, body string) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	t.Cleanup(ts.Close)

	return ts
}

func setupTestStore(t *testing.T) *storage.JSONStore {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habits.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	return store
}

func TestHTTPSourceFetch(t *testing.T) {
	ts := newTestServer(t, http.StatusOK,
		`[{"id":"1","title":"Drink Water","description":"2 liters","active":1},{"title":"Read Book"}]`)

	candidates, err := NewHTTPSource(ts.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Title != "Drink Water" || candidates[0].Description != "2 liters" {
		t.Errorf("unexpected first candidate: %+v", candidates[0])
	}
	if candidates[0].Active == nil || *candidates[0].Active != 1 {
		t.Errorf("expected active=1, got %v", candidates[0].Active)
	}
	if candidates[1].Active != nil {
		t.Error("absent active field should decode as nil")
	}
}

func TestHTTPSourceNonSuccessStatus(t *testing.T) {
	ts := newTestServer(t, http.StatusInternalServerError, `{"error":"boom"}`)

	_, err := NewHTTPSource(ts.URL).Fetch(context.Background())
	if !errors.Is(err, ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
}

func TestHTTPSourceMalformedBody(t *testing.T) {
	ts := newTestServer(t, http.StatusOK, `{"not":"an array"}`)

	_, err := NewHTTPSource(ts.URL).Fetch(context.Background())
	if !errors.Is(err, ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
}

func TestHTTPSourceConnectionError(t *testing.T) {
	ts := newTestServer(t, http.StatusOK, `[]`)
	ts.Close()

	_, err := NewHTTPSource(ts.URL).Fetch(context.Background())
	if !errors.Is(err, ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
}

func TestReconcileDedupes(t *testing.T) {
	store := setupTestStore(t)

	existing := []models.Habit{{ID: 1, Title: "Drink Water", Active: true}}
	if err := store.Create(existing[0]); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	candidates := []models.RemoteHabit{
		{Title: "drink water"},
		{Title: "Read Book"},
		{Title: "Read Book"},
	}

	res, err := NewReconciler(store).Reconcile(existing, candidates)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if res.Imported != 1 || res.Skipped != 2 {
		t.Errorf("expected imported=1 skipped=2, got imported=%d skipped=%d", res.Imported, res.Skipped)
	}

	habits, err := store.GetAllActive()
	if err != nil {
		t.Fatalf("failed to read store: %v", err)
	}
	if len(habits) != 2 {
		t.Fatalf("expected 2 habits in store, got %d", len(habits))
	}
	if habits[1].Title != "Read Book" {
		t.Errorf("expected %q, got %q", "Read Book", habits[1].Title)
	}
	if habits[1].DoneToday {
		t.Error("imported habits must start not done")
	}
}

func TestReconcileEmptyBatch(t *testing.T) {
	store := setupTestStore(t)

	res, err := NewReconciler(store).Reconcile(nil, nil)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if !res.NoData {
		t.Error("empty batch should report NoData")
	}

	habits, err := store.GetAllActive()
	if err != nil {
		t.Fatalf("failed to read store: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("empty batch must make zero store writes, found %d habits", len(habits))
	}
}

func TestReconcileSkipsEmptyTitles(t *testing.T) {
	store := setupTestStore(t)

	candidates := []models.RemoteHabit{
		{Title: ""},
		{Title: "   "},
		{Title: "Meditate", Description: "10 minutes"},
	}

	res, err := NewReconciler(store).Reconcile(nil, candidates)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if res.Imported != 1 || res.Skipped != 2 {
		t.Errorf("expected imported=1 skipped=2, got imported=%d skipped=%d", res.Imported, res.Skipped)
	}
}

func TestReconcileTrimsCandidateTitles(t *testing.T) {
	store := setupTestStore(t)

	res, err := NewReconciler(store).Reconcile(nil, []models.RemoteHabit{{Title: "  Journal  "}})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if res.Imported != 1 {
		t.Fatalf("expected 1 import, got %d", res.Imported)
	}

	habits, _ := store.GetAllActive()
	if habits[0].Title != "Journal" {
		t.Errorf("expected trimmed title, got %q", habits[0].Title)
	}
}

func TestReconcileActiveDefault(t *testing.T) {
	store := setupTestStore(t)

	inactive := 0
	active := 1
	candidates := []models.RemoteHabit{
		{Title: "Defaulted"},
		{Title: "Explicitly Active", Active: &active},
		{Title: "Explicitly Inactive", Active: &inactive},
	}

	res, err := NewReconciler(store).Reconcile(nil, candidates)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if res.Imported != 3 {
		t.Fatalf("expected 3 imports, got %d", res.Imported)
	}

	habits, err := store.GetAllActive()
	if err != nil {
		t.Fatalf("failed to read store: %v", err)
	}
	// The inactive candidate is persisted but hidden from active reads.
	if len(habits) != 2 {
		t.Errorf("expected 2 active habits, got %d", len(habits))
	}

	h, err := store.GetByID(3)
	if err != nil {
		t.Fatalf("inactive habit should still have a row: %v", err)
	}
	if h.Active {
		t.Error("candidate with active=0 should be created inactive")
	}
}

func TestResultAllDuplicates(t *testing.T) {
	cases := []struct {
		name string
		res  Result
		want bool
	}{
		{"no data", Result{NoData: true}, false},
		{"all skipped", Result{Skipped: 3}, true},
		{"some imported", Result{Imported: 1, Skipped: 2}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.res.AllDuplicates(); got != tc.want {
				t.Errorf("AllDuplicates() = %v, want %v", got, tc.want)
			}
		})
	}
}
