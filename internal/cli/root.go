package cli

import (
	"fmt"
	"time"

	"github.com/quangnv/habitkit/internal/models"
	"github.com/quangnv/habitkit/internal/storage"
	"github.com/quangnv/habitkit/internal/tracker"
)

type Context struct {
	Store storage.Provider
}

// openTracker loads storage and returns a tracker with a warm cache. Every
// command except init goes through here.
func (c *Context) openTracker() (*tracker.Tracker, error) {
	if err := c.Store.Load(); err != nil {
		return nil, err
	}

	t := tracker.New(c.Store)
	if err := t.Load(); err != nil {
		return nil, err
	}
	return t, nil
}

func formatHabit(h models.Habit) string {
	mark := " "
	if h.DoneToday {
		mark = "x"
	}

	line := fmt.Sprintf("  [%s] #%-4d %s", mark, h.ID, h.Title)
	if h.Description != "" {
		line += fmt.Sprintf(" - %s", h.Description)
	}
	return line
}

func formatCreatedAt(ms int64) string {
	if ms == 0 {
		return "unknown"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}
