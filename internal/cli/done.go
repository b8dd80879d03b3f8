package cli

import (
	"errors"
	"fmt"

	"github.com/quangnv/habitkit/internal/storage"
)

type DoneCmd struct {
	ID int64 `arg:"" help:"Habit id."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	t, err := ctx.openTracker()
	if err != nil {
		return err
	}

	done, err := t.ToggleDone(c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no active habit with id %d", c.ID)
	}
	if err != nil {
		return err
	}

	if done {
		fmt.Printf("Habit #%d marked done for today\n", c.ID)
	} else {
		fmt.Printf("Habit #%d marked not done\n", c.ID)
	}
	return nil
}
