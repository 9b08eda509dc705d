package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meur/pokeforge/internal/detail"
	"github.com/meur/pokeforge/internal/listing"
	"github.com/meur/pokeforge/internal/loader"
	"github.com/meur/pokeforge/internal/models"
)

// ListResponse is the body of GET /api/pokemon
type ListResponse struct {
	Offset      int                   `json:"offset"`
	PageSize    int                   `json:"page_size"`
	Query       models.QueryState     `json:"query"`
	Items       []models.DetailRecord `json:"items"`
	TotalLoaded int                   `json:"total_loaded"` // page entries before search/filter
	PrevEnabled bool                  `json:"prev_enabled"`
	NextEnabled bool                  `json:"next_enabled"`
	PrevOffset  *int                  `json:"prev_offset"`
	NextOffset  int                   `json:"next_offset"`
}

// handleListPokemon loads one page and applies ?q=, ?sort= and ?type=.
// An upstream failure yields an empty page, like an empty result set.
func (s *Server) handleListPokemon(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	offset := 0
	if raw := params.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "offset must be an integer")
			return
		}
		offset = n
	}

	sortKey, err := models.ParseSortKey(params.Get("sort"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := listing.NewView(loader.NewEnricher(s.client), s.logger)
	view.SetQuery(models.QueryState{
		SearchTerm: params.Get("q"),
		SortKey:    sortKey,
		TypeFilter: params.Get("type"),
	})
	if err := view.LoadPage(r.Context(), offset); errors.Is(err, listing.ErrInvalidOffset) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := view.Snapshot()
	resp := ListResponse{
		Offset:      snap.Query.PageOffset,
		PageSize:    models.PageSize,
		Query:       snap.Query,
		Items:       snap.Visible,
		TotalLoaded: len(snap.Details),
		PrevEnabled: snap.PrevEnabled,
		NextEnabled: snap.NextEnabled,
		NextOffset:  snap.Query.PageOffset + models.PageSize,
	}
	if snap.PrevEnabled {
		prev := snap.Query.PageOffset - models.PageSize
		resp.PrevOffset = &prev
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleGetPokemon returns a single Pokémon by name or id
func (s *Server) handleGetPokemon(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	view := detail.NewView(s.client, s.logger)
	view.Load(r.Context(), name)

	st := view.State()
	if st.Record == nil {
		respondError(w, http.StatusNotFound, "Pokémon not found!")
		return
	}
	respondJSON(w, http.StatusOK, st.Record)
}

// handleGetTypes returns the type filter options
func (s *Server) handleGetTypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.TypeFilters[1:])
}
