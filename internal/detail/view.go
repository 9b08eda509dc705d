// Package detail implements the single-record detail view.
package detail

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/meur/pokeforge/internal/models"
	"github.com/meur/pokeforge/internal/pokeapi"
)

// State is a consistent read of the view
type State struct {
	Identifier string
	Loading    bool
	Record     *models.DetailRecord
}

// NotFound reports a resolved load that produced no record
func (s State) NotFound() bool {
	return !s.Loading && s.Record == nil
}

// View shows the full record for one identifier. Each Load bumps a
// generation counter; a response whose generation is no longer current
// is dropped, so a slow fetch for an old identifier cannot overwrite a
// newer one. In-flight requests are not cancelled.
type View struct {
	client pokeapi.Client
	logger *zap.Logger

	mu     sync.Mutex
	gen    uint64
	id     string
	record *models.DetailRecord
	// true until the current non-empty identifier resolves
	loading bool
}

// NewView creates an unresolved view
func NewView(client pokeapi.Client, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &View{client: client, logger: logger, loading: true}
}

// Load fetches the record for identifier. An empty identifier issues no
// request and leaves the view unresolved. It reports whether this call's
// result was applied.
func (v *View) Load(ctx context.Context, identifier string) bool {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.id = identifier
	v.loading = true
	v.record = nil
	if identifier == "" {
		v.mu.Unlock()
		return false
	}
	v.mu.Unlock()

	rec, err := v.client.GetDetail(ctx, identifier)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		v.logger.Debug("Discarding stale detail response", zap.String("identifier", identifier))
		return false
	}
	v.loading = false
	if err != nil {
		v.logger.Error("Error fetching Pokémon", zap.String("identifier", identifier), zap.Error(err))
		return true
	}
	v.record = rec
	return true
}

// State returns the current identifier, loading flag and record
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return State{Identifier: v.id, Loading: v.loading, Record: v.record}
}
