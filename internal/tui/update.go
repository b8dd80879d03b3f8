package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/quangnv/habitkit/internal/constants"
	"github.com/quangnv/habitkit/internal/importer"
	"github.com/quangnv/habitkit/internal/tui/components/habitlist"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case StateChangedMsg:
		m.syncFromTracker()
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
		} else {
			m.errText = ""
		}
		m.syncFromTracker()
		return m, nil

	case importDoneMsg:
		switch {
		case msg.err != nil:
			m.errText = fmt.Sprintf("import failed: %v", msg.err)
		case msg.res.NoData:
			m.status = "No habits available from the remote source"
		case msg.res.AllDuplicates():
			m.status = fmt.Sprintf("All %d habits already exist", msg.res.Skipped)
		default:
			m.status = fmt.Sprintf("Imported %d, skipped %d", msg.res.Imported, msg.res.Skipped)
		}
		m.syncFromTracker()
		return m, nil

	case habitlist.ToggleMsg:
		id := msg.ID
		return m, func() tea.Msg {
			_, err := m.tracker.ToggleDone(id)
			return mutationDoneMsg{err: err}
		}

	case habitlist.AddMsg:
		m.formData = &HabitFormModel{}
		m.editing = nil
		m.form = newHabitForm(m.formData)
		m.state = StateForm
		return m, m.form.Init()

	case habitlist.EditMsg:
		h := msg.Habit
		m.formData = &HabitFormModel{Title: h.Title, Description: h.Description}
		m.editing = &h
		m.form = newHabitForm(m.formData)
		m.state = StateForm
		return m, m.form.Init()

	case habitlist.DeleteMsg:
		m.deleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	default:
		return m.updateList(msg)
	}
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.habitList.Filtering() {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(keyMsg, m.keys.Pending):
			m.tracker.SetPendingOnly(!m.tracker.PendingOnly())
			m.syncFromTracker()
			return m, nil

		case key.Matches(keyMsg, m.keys.Refresh):
			m.status = "Refreshing..."
			return m, func() tea.Msg {
				return mutationDoneMsg{err: m.tracker.Refresh()}
			}

		case key.Matches(keyMsg, m.keys.Import):
			m.status = "Importing..."
			return m, func() tea.Msg {
				src := importer.NewHTTPSource(constants.DefaultImportURL)
				res, err := m.tracker.ImportFromRemote(context.Background(), src)
				return importDoneMsg{res: res, err: err}
			}
		}
	}

	var cmd tea.Cmd
	m.habitList, cmd = m.habitList.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.state = StateList
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		data := *m.formData
		editing := m.editing
		m.state = StateList
		m.form = nil

		if editing != nil {
			h := *editing
			h.Title = data.Title
			h.Description = data.Description
			return m, func() tea.Msg {
				return mutationDoneMsg{err: m.tracker.Edit(h)}
			}
		}
		return m, func() tea.Msg {
			return mutationDoneMsg{err: m.tracker.Add(data.Title, data.Description)}
		}
	}

	if m.form.State == huh.StateAborted {
		m.state = StateList
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y", "Y":
			id := m.deleteID
			m.state = StateList
			return m, func() tea.Msg {
				return mutationDoneMsg{err: m.tracker.Remove(id)}
			}
		case "n", "N", "esc", "q":
			m.state = StateList
			return m, nil
		}
	}
	return m, nil
}
