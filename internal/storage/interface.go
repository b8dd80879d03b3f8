package storage

import (
	"errors"

	"github.com/quangnv/habitkit/internal/models"
)

// ErrNotFound is returned by GetByID when no row has the requested id.
// Absence is not a failure; callers that treat it as one should wrap it.
var ErrNotFound = errors.New("habit not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	Create(models.Habit) error
	GetAllActive() ([]models.Habit, error)
	GetByID(id int64) (models.Habit, error)
	Update(models.Habit) error
	ToggleDone(id int64) (bool, error)
	SoftDelete(id int64) error

	// Utils
	GetConfigPath() string
}
