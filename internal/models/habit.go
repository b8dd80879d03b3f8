package models

import "strings"

// Habit represents a user-defined practice tracked for daily completion.
//
// DoneToday is a single persistent bit, not a dated log: it holds the last
// toggled state rather than a per-day history. Active doubles as the
// soft-delete flag; inactive habits keep their row but are hidden from
// normal views.
type Habit struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
	DoneToday   bool   `json:"done_today"`
	CreatedAt   int64  `json:"created_at"` // milliseconds since epoch
}

// NewHabit returns a not-yet-persisted habit draft with creation defaults:
// active, not done, no id. The store assigns id and created_at.
func NewHabit(title, description string) Habit {
	return Habit{
		Title:       title,
		Description: description,
		Active:      true,
	}
}

// NormalizedTitle returns the title lowercased and trimmed, the form used
// for duplicate detection during import.
func (h Habit) NormalizedTitle() string {
	return strings.ToLower(strings.TrimSpace(h.Title))
}

// MatchesQuery reports whether the habit's title contains the query,
// case-insensitively. An empty query matches everything.
func (h Habit) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(h.Title), strings.ToLower(query))
}

// RemoteHabit is a candidate habit as served by the remote import source.
// Every field is optional and untrusted; the reconciler validates titles
// and assigns its own ids and timestamps.
type RemoteHabit struct {
	ID          any    `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Active      *int   `json:"active,omitempty"`
}
