package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/quangnv/habitkit/internal/importer"
	"github.com/quangnv/habitkit/internal/models"
	"github.com/quangnv/habitkit/internal/storage"
)

// ErrEmptyTitle is returned by Add when the title is empty after trimming.
var ErrEmptyTitle = errors.New("habit title must not be empty")

// Tracker keeps an in-memory mirror of the active habit set, a derived
// search/filter view, and transient loading flags, on top of a storage
// Provider. Mutating operations write through the store and re-read the
// canonical set; only ToggleDone mutates the cache optimistically.
//
// All methods are safe for concurrent use. Observers registered with
// Subscribe are invoked (outside the lock) whenever the observable state
// changes.
type Tracker struct {
	mu    sync.Mutex
	store storage.Provider

	habits      []models.Habit
	query       string
	pendingOnly bool

	loading    bool
	refreshing bool
	importing  bool

	subscribers map[string]func()
	lastDigest  uint64
}

func New(store storage.Provider) *Tracker {
	return &Tracker{
		store:       store,
		subscribers: make(map[string]func()),
	}
}

// Subscribe registers fn to run after every observable state change and
// returns a token for Unsubscribe.
func (t *Tracker) Subscribe(fn func()) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	token := uuid.New().String()
	t.subscribers[token] = fn
	return token
}

func (t *Tracker) Unsubscribe(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.subscribers, token)
}

// observable is the state whose digest decides whether subscribers fire.
type observable struct {
	Habits      []models.Habit
	Query       string
	PendingOnly bool
	Loading     bool
	Refreshing  bool
	Importing   bool
}

// publish notifies subscribers if the observable state changed since the
// last publish. Callbacks run without the lock held so they may call back
// into the tracker.
func (t *Tracker) publish() {
	t.mu.Lock()
	digest, err := hashstructure.Hash(observable{
		Habits:      t.habits,
		Query:       t.query,
		PendingOnly: t.pendingOnly,
		Loading:     t.loading,
		Refreshing:  t.refreshing,
		Importing:   t.importing,
	}, hashstructure.FormatV2, nil)
	if err == nil && digest == t.lastDigest {
		t.mu.Unlock()
		return
	}
	t.lastDigest = digest

	fns := make([]func(), 0, len(t.subscribers))
	for _, fn := range t.subscribers {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Load fetches the full active set from the store, replacing the cache
// wholesale. The loading flag marks the blocking variant of the fetch.
func (t *Tracker) Load() error {
	return t.fetch(&t.loading)
}

// Refresh is Load with the non-blocking transient flag; the data path is
// identical.
func (t *Tracker) Refresh() error {
	return t.fetch(&t.refreshing)
}

// fetch runs the shared load path with the given transient flag raised.
// The flag pointer refers to a field guarded by t.mu.
func (t *Tracker) fetch(flag *bool) error {
	t.mu.Lock()
	*flag = true
	t.mu.Unlock()
	t.publish()

	err := t.resync()

	t.mu.Lock()
	*flag = false
	t.mu.Unlock()
	t.publish()

	return err
}

// resync replaces the cache from the store. On failure the last-known-good
// cache is kept.
func (t *Tracker) resync() error {
	habits, err := t.store.GetAllActive()
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}

	t.mu.Lock()
	t.habits = habits
	t.mu.Unlock()
	return nil
}

// Habits returns a copy of the cached active set.
func (t *Tracker) Habits() []models.Habit {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.Habit, len(t.habits))
	copy(out, t.habits)
	return out
}

// Filtered returns the derived view: habits whose title contains the
// search query (case-insensitive), excluding done-today habits when the
// pending-only filter is on. Pure projection over the cache, order
// preserved.
func (t *Tracker) Filtered() []models.Habit {
	t.mu.Lock()
	defer t.mu.Unlock()

	query := strings.TrimSpace(t.query)
	out := make([]models.Habit, 0, len(t.habits))
	for _, h := range t.habits {
		if !h.MatchesQuery(query) {
			continue
		}
		if t.pendingOnly && h.DoneToday {
			continue
		}
		out = append(out, h)
	}
	return out
}

func (t *Tracker) SetQuery(query string) {
	t.mu.Lock()
	t.query = query
	t.mu.Unlock()
	t.publish()
}

func (t *Tracker) ClearQuery() {
	t.SetQuery("")
}

func (t *Tracker) SetPendingOnly(on bool) {
	t.mu.Lock()
	t.pendingOnly = on
	t.mu.Unlock()
	t.publish()
}

func (t *Tracker) Query() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.query
}

func (t *Tracker) PendingOnly() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pendingOnly
}

func (t *Tracker) IsLoading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

func (t *Tracker) IsRefreshing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refreshing
}

func (t *Tracker) IsImporting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.importing
}

// Add validates the title, creates the habit, and re-reads the canonical
// set. There is no optimistic insert; the post-state always comes from the
// store.
func (t *Tracker) Add(title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}

	if err := t.store.Create(models.NewHabit(title, description)); err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}

	err := t.resync()
	t.publish()
	return err
}

// Edit writes the full habit through the store and re-reads.
func (t *Tracker) Edit(h models.Habit) error {
	if err := t.store.Update(h); err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	err := t.resync()
	t.publish()
	return err
}

// Remove soft-deletes the habit and re-reads.
func (t *Tracker) Remove(id int64) error {
	if err := t.store.SoftDelete(id); err != nil {
		return fmt.Errorf("failed to remove habit: %w", err)
	}

	err := t.resync()
	t.publish()
	return err
}

// ToggleDone flips the habit's done bit optimistically in the cache, then
// issues the atomic flip to the store. On store failure the optimistic
// mutation is discarded by a full resync, and the error is returned.
func (t *Tracker) ToggleDone(id int64) (bool, error) {
	t.mu.Lock()
	idx := -1
	for i := range t.habits {
		if t.habits[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.mu.Unlock()
		return false, storage.ErrNotFound
	}
	t.habits[idx].DoneToday = !t.habits[idx].DoneToday
	optimistic := t.habits[idx].DoneToday
	t.mu.Unlock()
	t.publish()

	done, err := t.store.ToggleDone(id)
	if err != nil {
		// The in-memory state is untrustworthy after a failed write.
		if rerr := t.resync(); rerr == nil {
			t.publish()
		}
		return false, fmt.Errorf("failed to toggle habit: %w", err)
	}

	if done != optimistic {
		// Another writer got there first; the store wins.
		_ = t.resync()
	}
	t.publish()
	return done, nil
}

// ImportFromRemote fetches candidates from src, deduplicates them against
// the cache snapshot taken at call time, creates the survivors through the
// store, and re-reads the full set.
func (t *Tracker) ImportFromRemote(ctx context.Context, src importer.Source) (importer.Result, error) {
	t.mu.Lock()
	t.importing = true
	t.mu.Unlock()
	t.publish()

	defer func() {
		t.mu.Lock()
		t.importing = false
		t.mu.Unlock()
		t.publish()
	}()

	candidates, err := src.Fetch(ctx)
	if err != nil {
		return importer.Result{}, err
	}

	rec := importer.NewReconciler(t.store)
	res, recErr := rec.Reconcile(t.Habits(), candidates)

	if !res.NoData {
		// Some rows may have been written even when the pass aborted.
		if err := t.resync(); err != nil && recErr == nil {
			recErr = err
		}
		t.publish()
	}

	return res, recErr
}
