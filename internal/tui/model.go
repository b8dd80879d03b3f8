package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	"github.com/quangnv/habitkit/internal/importer"
	"github.com/quangnv/habitkit/internal/models"
	"github.com/quangnv/habitkit/internal/tracker"
	"github.com/quangnv/habitkit/internal/tui/components/habitlist"
)

type SessionState int

const (
	StateList SessionState = iota
	StateForm
	StateConfirmDelete
)

// StateChangedMsg is sent into the program whenever the tracker notifies
// its subscribers.
type StateChangedMsg struct{}

type mutationDoneMsg struct {
	err error
}

type importDoneMsg struct {
	res importer.Result
	err error
}

type HabitFormModel struct {
	Title       string
	Description string
}

type Model struct {
	tracker *tracker.Tracker
	state   SessionState
	keys    KeyMap
	help    help.Model

	habitList habitlist.Model
	form      *huh.Form
	formData  *HabitFormModel
	editing   *models.Habit
	deleteID  int64

	status   string
	errText  string
	quitting bool
	width    int
	height   int
}

func NewModel(t *tracker.Tracker) Model {
	return Model{
		tracker:   t,
		state:     StateList,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		habitList: habitlist.New(t.Filtered(), 0, 0),
	}
}

func newHabitForm(data *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&data.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title must not be empty")
					}
					return nil
				}),
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&data.Description),
		),
	)
}

// syncFromTracker refreshes the list contents from the tracker's derived
// view.
func (m *Model) syncFromTracker() {
	m.habitList.SetHabits(m.tracker.Filtered())
}
