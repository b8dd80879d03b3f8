package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quangnv/habitkit/internal/storage"
)

type EditCmd struct {
	ID          int64   `arg:"" help:"Habit id."`
	Title       *string `short:"t" help:"New title."`
	Description *string `short:"d" help:"New description."`
	Done        *bool   `help:"Set today's completion bit."`
}

func (c *EditCmd) Run(ctx *Context) error {
	t, err := ctx.openTracker()
	if err != nil {
		return err
	}

	h, err := ctx.Store.GetByID(c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no habit with id %d", c.ID)
	}
	if err != nil {
		return err
	}

	changed := false
	if c.Title != nil {
		title := strings.TrimSpace(*c.Title)
		if title == "" {
			return fmt.Errorf("habit title must not be empty")
		}
		h.Title = title
		changed = true
	}
	if c.Description != nil {
		h.Description = *c.Description
		changed = true
	}
	if c.Done != nil {
		h.DoneToday = *c.Done
		changed = true
	}

	if !changed {
		fmt.Println("Nothing to change")
		return nil
	}

	if err := t.Edit(h); err != nil {
		return err
	}

	fmt.Printf("Updated habit #%d\n", h.ID)
	return nil
}
