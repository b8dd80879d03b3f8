package models

import (
	"encoding/json"
	"testing"
)

func TestNormalizedTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Drink Water", "drink water"},
		{"  Drink Water  ", "drink water"},
		{"DRINK WATER", "drink water"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		h := Habit{Title: tc.title}
		if got := h.NormalizedTitle(); got != tc.want {
			t.Errorf("NormalizedTitle(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestMatchesQuery(t *testing.T) {
	h := Habit{Title: "Drink Water"}

	cases := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"water", true},
		{"WATER", true},
		{"ink Wa", true},
		{"coffee", false},
	}

	for _, tc := range cases {
		if got := h.MatchesQuery(tc.query); got != tc.want {
			t.Errorf("MatchesQuery(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestNewHabitDefaults(t *testing.T) {
	h := NewHabit("Read Book", "20 pages")

	if h.ID != 0 {
		t.Error("draft habit must not carry an id")
	}
	if !h.Active {
		t.Error("new habit should be active")
	}
	if h.DoneToday {
		t.Error("new habit should not be done")
	}
	if h.CreatedAt != 0 {
		t.Error("created_at is assigned by the store, not the draft")
	}
}

func TestRemoteHabitDecodesPartialObjects(t *testing.T) {
	var candidates []RemoteHabit
	payload := `[{"id":7,"title":"Walk","active":0},{"description":"only a description"},{}]`
	if err := json.Unmarshal([]byte(payload), &candidates); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	if candidates[0].Active == nil || *candidates[0].Active != 0 {
		t.Errorf("expected active=0, got %v", candidates[0].Active)
	}
	if candidates[1].Title != "" || candidates[2].Title != "" {
		t.Error("missing titles should decode as empty strings")
	}
}
