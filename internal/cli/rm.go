package cli

import "fmt"

type RmCmd struct {
	ID int64 `arg:"" help:"Habit id."`
}

func (c *RmCmd) Run(ctx *Context) error {
	t, err := ctx.openTracker()
	if err != nil {
		return err
	}

	if err := t.Remove(c.ID); err != nil {
		return err
	}

	fmt.Printf("Removed habit #%d\n", c.ID)
	fmt.Println("(This is a soft delete; the row is kept with active = 0)")
	return nil
}
