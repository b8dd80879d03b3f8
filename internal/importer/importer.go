package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/quangnv/habitkit/internal/constants"
	"github.com/quangnv/habitkit/internal/models"
	"github.com/quangnv/habitkit/internal/storage"
)

// ErrFetch wraps any failure to retrieve the remote collection: transport
// errors, non-2xx statuses, malformed bodies. One attempt, no retry.
var ErrFetch = errors.New("import fetch failed")

// Source provides a collection of candidate habits to import.
type Source interface {
	Fetch(ctx context.Context) ([]models.RemoteHabit, error)
}

// HTTPSource fetches candidates from a JSON endpoint serving an array of
// objects with optional id/title/description/active fields.
type HTTPSource struct {
	URL    string
	client *http.Client
}

func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		URL:    url,
		client: &http.Client{Timeout: constants.ImportTimeout},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]models.RemoteHabit, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	var candidates []models.RemoteHabit
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, fmt.Errorf("%w: invalid response body: %v", ErrFetch, err)
	}

	return candidates, nil
}

// Result reports the outcome of a reconcile pass. NoData distinguishes
// "nothing available from the source" from "everything was a duplicate".
type Result struct {
	Imported int
	Skipped  int
	NoData   bool
}

// AllDuplicates reports whether the batch had candidates but none survived
// dedupe and validation.
func (r Result) AllDuplicates() bool {
	return !r.NoData && r.Imported == 0
}

// Reconciler merges a remote habit collection into the local store,
// deduplicating by normalized title against both pre-existing habits and
// habits created earlier in the same batch.
type Reconciler struct {
	store storage.Provider
}

func NewReconciler(store storage.Provider) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile walks candidates in source order and creates the ones that
// survive. Candidates with an empty trimmed title or a title already in
// the dedupe set count as skipped. Creates are sequential: the dedupe set
// must be updated between insertions so later candidates in the batch see
// earlier ones.
//
// The existing snapshot is taken by the caller at call time; it is not
// re-queried per item. A store failure aborts the pass and returns the
// counts accumulated so far alongside the error.
func (r *Reconciler) Reconcile(existing []models.Habit, candidates []models.RemoteHabit) (Result, error) {
	if len(candidates) == 0 {
		return Result{NoData: true}, nil
	}

	seen := make(map[string]struct{}, len(existing))
	for _, h := range existing {
		seen[h.NormalizedTitle()] = struct{}{}
	}

	var res Result
	for _, c := range candidates {
		title := strings.TrimSpace(c.Title)
		if title == "" {
			res.Skipped++
			continue
		}

		key := strings.ToLower(title)
		if _, dup := seen[key]; dup {
			res.Skipped++
			continue
		}

		h := models.Habit{
			Title:       title,
			Description: c.Description,
			Active:      c.Active == nil || *c.Active != 0,
		}
		if err := r.store.Create(h); err != nil {
			return res, fmt.Errorf("failed to import habit %q: %w", title, err)
		}

		seen[key] = struct{}{}
		res.Imported++
	}

	return res, nil
}
