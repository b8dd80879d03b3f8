package cli

import (
	"errors"
	"fmt"

	"github.com/quangnv/habitkit/internal/tracker"
)

type AddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Description string `short:"d" help:"Optional description."`
}

func (c *AddCmd) Run(ctx *Context) error {
	t, err := ctx.openTracker()
	if err != nil {
		return err
	}

	if err := t.Add(c.Title, c.Description); err != nil {
		if errors.Is(err, tracker.ErrEmptyTitle) {
			return fmt.Errorf("habit title must not be empty")
		}
		return err
	}

	fmt.Printf("Added habit: %s\n", c.Title)
	return nil
}
