package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quangnv/habitkit/internal/models"
	_ "modernc.org/sqlite"
)

// schema is applied idempotently on every Init/Load. The habits table is
// the system's only durable state, so there is no migration runner.
const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	title        TEXT NOT NULL,
	description  TEXT,
	active       INTEGER DEFAULT 1,
	done_today   INTEGER DEFAULT 0,
	created_at   INTEGER
);`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitkit init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Older databases created before a schema change still get the table.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Create inserts a new habit row. A zero CreatedAt is replaced with the
// current time in milliseconds. Title validation is the caller's job.
func (s *SQLiteStore) Create(h models.Habit) error {
	if h.CreatedAt == 0 {
		h.CreatedAt = time.Now().UnixMilli()
	}

	_, err := s.db.Exec(
		"INSERT INTO habits (title, description, active, done_today, created_at) VALUES (?, ?, ?, ?, ?)",
		h.Title, h.Description, boolToInt(h.Active), boolToInt(h.DoneToday), h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}
	return nil
}

// GetAllActive returns every non-deleted habit in insertion order.
func (s *SQLiteStore) GetAllActive() ([]models.Habit, error) {
	rows, err := s.db.Query(
		"SELECT id, title, description, active, done_today, created_at FROM habits WHERE active = 1 ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

// GetByID returns the habit with the given id regardless of its active
// flag, or ErrNotFound.
func (s *SQLiteStore) GetByID(id int64) (models.Habit, error) {
	row := s.db.QueryRow(
		"SELECT id, title, description, active, done_today, created_at FROM habits WHERE id = ?", id)

	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return models.Habit{}, ErrNotFound
	}
	if err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// Update overwrites title, description, active, and done_today for the row
// matching h.ID. A missing id is a silent no-op.
func (s *SQLiteStore) Update(h models.Habit) error {
	_, err := s.db.Exec(
		"UPDATE habits SET title = ?, description = ?, active = ?, done_today = ? WHERE id = ?",
		h.Title, h.Description, boolToInt(h.Active), boolToInt(h.DoneToday), h.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return nil
}

// ToggleDone atomically flips done_today for the given id and returns the
// new value. The flip happens in a single statement so concurrent toggles
// never act on a stale read.
func (s *SQLiteStore) ToggleDone(id int64) (bool, error) {
	res, err := s.db.Exec("UPDATE habits SET done_today = 1 - done_today WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to toggle habit: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, ErrNotFound
	}

	var done int
	if err := s.db.QueryRow("SELECT done_today FROM habits WHERE id = ?", id).Scan(&done); err != nil {
		return false, fmt.Errorf("failed to read toggled status: %w", err)
	}
	return done != 0, nil
}

// SoftDelete hides the habit from normal views by clearing its active
// flag. The row is never physically removed.
func (s *SQLiteStore) SoftDelete(id int64) error {
	_, err := s.db.Exec("UPDATE habits SET active = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the underlying database file.
//
// Concurrency note:
//   - SQLiteStore is opened once per process and shared; running multiple
//     habitkit processes against the same path at the same time is not
//     supported.
func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var description sql.NullString
	var active, done int

	err := row.Scan(&h.ID, &h.Title, &description, &active, &done, &h.CreatedAt)
	if err != nil {
		return models.Habit{}, err
	}

	if description.Valid {
		h.Description = description.String
	}
	h.Active = active != 0
	h.DoneToday = done != 0

	return h, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
