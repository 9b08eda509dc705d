// Package listing implements the paged, searchable listing view.
//
// The view owns the query state and the most recently loaded page. Only a
// page load talks to the network; search, sort and type filter changes
// just recompute the derived list.
//
// Overlapping loads are not guarded: if a second load is started before
// the first finishes, whichever completes last overwrites the page, and
// the first to finish clears the loading flag.
package listing

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/meur/pokeforge/internal/loader"
	"github.com/meur/pokeforge/internal/models"
)

var (
	ErrInvalidOffset = errors.New("offset must be a non-negative multiple of the page size")
	ErrPageDisabled  = errors.New("pagination control is disabled")
)

// Fetch completes a page load started by Begin, Next or Prev
type Fetch func(ctx context.Context) error

// Snapshot is a consistent read of the view
type Snapshot struct {
	Query       models.QueryState     `json:"query"`
	Entries     []models.SummaryEntry `json:"-"`
	Details     []models.DetailRecord `json:"-"`
	Visible     []models.DetailRecord `json:"items"`
	Loading     bool                  `json:"loading"`
	PrevEnabled bool                  `json:"prev_enabled"`
	NextEnabled bool                  `json:"next_enabled"`
}

// View is the listing view model
type View struct {
	loader loader.PageLoader
	logger *zap.Logger

	mu      sync.Mutex
	query   models.QueryState
	entries []models.SummaryEntry
	details []models.DetailRecord
	loading bool
}

// NewView creates a view in the default state: offset 0, no query
func NewView(l loader.PageLoader, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &View{loader: l, logger: logger}
}

// LoadPage moves to offset and fetches that page
func (v *View) LoadPage(ctx context.Context, offset int) error {
	fetch, err := v.Begin(offset)
	if err != nil {
		return err
	}
	return fetch(ctx)
}

// Begin moves to offset and marks the view loading. The returned Fetch
// performs the network work; it may run on another goroutine.
func (v *View) Begin(offset int) (Fetch, error) {
	if !models.ValidOffset(offset) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.beginLocked(offset), nil
}

// Next advances one page. It is refused only while a load is running.
func (v *View) Next() (Fetch, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.loading {
		return nil, ErrPageDisabled
	}
	return v.beginLocked(v.query.PageOffset + models.PageSize), nil
}

// Prev goes back one page. It is refused at offset 0 or while loading.
func (v *View) Prev() (Fetch, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.loading || v.query.PageOffset == 0 {
		return nil, ErrPageDisabled
	}
	return v.beginLocked(v.query.PageOffset - models.PageSize), nil
}

func (v *View) beginLocked(offset int) Fetch {
	v.query = v.query.WithOffset(offset)
	v.loading = true
	return func(ctx context.Context) error {
		return v.fetch(ctx, offset)
	}
}

func (v *View) fetch(ctx context.Context, offset int) error {
	page, err := v.loader.LoadPage(ctx, models.PageSize, offset)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.logger.Error("Error fetching Pokémon data", zap.Int("offset", offset), zap.Error(err))
		return err
	}
	v.entries = page.Entries
	v.details = page.Details
	return nil
}

// SetSearch replaces the search term
func (v *View) SetSearch(term string) {
	v.mu.Lock()
	v.query = v.query.WithSearch(term)
	v.mu.Unlock()
}

// SetSort replaces the sort key
func (v *View) SetSort(key models.SortKey) {
	v.mu.Lock()
	v.query = v.query.WithSort(key)
	v.mu.Unlock()
}

// SetTypeFilter replaces the type filter ("" clears it)
func (v *View) SetTypeFilter(typeName string) {
	v.mu.Lock()
	v.query = v.query.WithTypeFilter(typeName)
	v.mu.Unlock()
}

// SetQuery replaces search, sort and filter in one step. The offset is
// not taken from q; use LoadPage to move.
func (v *View) SetQuery(q models.QueryState) {
	v.mu.Lock()
	v.query = q.WithOffset(v.query.PageOffset)
	v.mu.Unlock()
}

// Query returns the current query state
func (v *View) Query() models.QueryState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// Snapshot returns the current page, the derived visible list and the
// pagination controls' enabled state
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	q, entries, details, loading := v.query, v.entries, v.details, v.loading
	v.mu.Unlock()

	return Snapshot{
		Query:       q,
		Entries:     slices.Clone(entries),
		Details:     slices.Clone(details),
		Visible:     Derive(details, q),
		Loading:     loading,
		PrevEnabled: q.PageOffset != 0 && !loading,
		NextEnabled: !loading,
	}
}
