package cli

import (
	"errors"
	"fmt"

	"github.com/quangnv/habitkit/internal/storage"
)

type ShowCmd struct {
	ID int64 `arg:"" help:"Habit id."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	h, err := ctx.Store.GetByID(c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no habit with id %d", c.ID)
	}
	if err != nil {
		return err
	}

	status := "active"
	if !h.Active {
		status = "deleted"
	}
	done := "no"
	if h.DoneToday {
		done = "yes"
	}

	fmt.Printf("Habit #%d\n", h.ID)
	fmt.Printf("  Title:       %s\n", h.Title)
	if h.Description != "" {
		fmt.Printf("  Description: %s\n", h.Description)
	}
	fmt.Printf("  Status:      %s\n", status)
	fmt.Printf("  Done today:  %s\n", done)
	fmt.Printf("  Created:     %s\n", formatCreatedAt(h.CreatedAt))
	return nil
}
