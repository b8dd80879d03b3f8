package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quangnv/habitkit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	t, err := ctx.openTracker()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(t), tea.WithAltScreen())

	// Forward tracker state changes into the bubbletea loop so external
	// mutations (optimistic toggles, import reloads) re-render.
	token := t.Subscribe(func() {
		p.Send(tui.StateChangedMsg{})
	})
	defer t.Unsubscribe(token)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
