package cli

import "fmt"

type ListCmd struct {
	Query   string `short:"q" help:"Show only habits whose title contains this text (case-insensitive)."`
	Pending bool   `short:"p" help:"Show only habits not yet done today."`
}

func (c *ListCmd) Run(ctx *Context) error {
	t, err := ctx.openTracker()
	if err != nil {
		return err
	}

	t.SetQuery(c.Query)
	t.SetPendingOnly(c.Pending)

	habits := t.Filtered()
	if len(habits) == 0 {
		if c.Query != "" || c.Pending {
			fmt.Println("No habits match the current filter")
		} else {
			fmt.Println("No habits yet. Add one with 'habitkit add'")
		}
		return nil
	}

	fmt.Println("Habits:")
	for _, h := range habits {
		fmt.Println(formatHabit(h))
	}
	return nil
}
