// Package pokeapitest provides an in-process fake of the upstream API.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Pokemon is the fixture data for one fake entry
type Pokemon struct {
	ID             int
	Name           string
	Types          []string
	Abilities      []string
	BaseExperience *int
}

// Exp is a helper for BaseExperience literals
func Exp(v int) *int { return &v }

// Server is a fake upstream serving /pokemon and /pokemon/{name|id}
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	pokemon  []Pokemon
	failList bool
	failName map[string]int // name -> status code to return

	listCalls   atomic.Int64
	detailCalls atomic.Int64
}

// NewServer starts a fake upstream serving the given fixtures
func NewServer(pokemon ...Pokemon) *Server {
	s := &Server{pokemon: pokemon, failName: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// BaseURL is the API root to hand to pokeapi.New
func (s *Server) BaseURL() string { return s.URL + "/api/v2" }

// FailList makes the listing endpoint return 500
func (s *Server) FailList(fail bool) {
	s.mu.Lock()
	s.failList = fail
	s.mu.Unlock()
}

// FailDetail makes the detail endpoint for name return status
func (s *Server) FailDetail(name string, status int) {
	s.mu.Lock()
	s.failName[name] = status
	s.mu.Unlock()
}

// ListCalls returns the number of listing requests served
func (s *Server) ListCalls() int64 { return s.listCalls.Load() }

// DetailCalls returns the number of detail requests served
func (s *Server) DetailCalls() int64 { return s.detailCalls.Load() }

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v2")
	switch {
	case path == "/pokemon" || path == "/pokemon/":
		s.listCalls.Add(1)
		s.serveList(w, r)
	case strings.HasPrefix(path, "/pokemon/"):
		s.detailCalls.Add(1)
		s.serveDetail(w, strings.Trim(strings.TrimPrefix(path, "/pokemon/"), "/"))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) serveList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fail := s.failList
	all := s.pokemon
	s.mu.Unlock()
	if fail {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	results := []map[string]string{}
	for i := offset; i < len(all) && i < offset+limit; i++ {
		results = append(results, map[string]string{
			"name": all[i].Name,
			"url":  fmt.Sprintf("%s/pokemon/%d/", s.BaseURL(), all[i].ID),
		})
	}
	writeJSON(w, map[string]any{"count": len(all), "next": nil, "previous": nil, "results": results})
}

func (s *Server) serveDetail(w http.ResponseWriter, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.pokemon {
		if p.Name != key && strconv.Itoa(p.ID) != key {
			continue
		}
		if status, ok := s.failName[p.Name]; ok {
			http.Error(w, http.StatusText(status), status)
			return
		}
		writeJSON(w, detailBody(s.URL, p))
		return
	}
	http.Error(w, "Not Found", http.StatusNotFound)
}

func detailBody(host string, p Pokemon) map[string]any {
	types := []map[string]any{}
	for i, t := range p.Types {
		types = append(types, map[string]any{"slot": i + 1, "type": map[string]string{"name": t}})
	}
	abilities := []map[string]any{}
	for _, a := range p.Abilities {
		abilities = append(abilities, map[string]any{"ability": map[string]string{"name": a}, "is_hidden": false})
	}
	stats := []map[string]any{}
	for i, name := range []string{"hp", "attack", "defense"} {
		stats = append(stats, map[string]any{"base_stat": 40 + i*5, "stat": map[string]string{"name": name}})
	}
	body := map[string]any{
		"id":   p.ID,
		"name": p.Name,
		"sprites": map[string]any{
			"front_default": fmt.Sprintf("%s/sprites/%d.png", host, p.ID),
			"other": map[string]any{
				"official-artwork": map[string]any{
					"front_default": fmt.Sprintf("%s/artwork/%d.png", host, p.ID),
				},
			},
		},
		"types":     types,
		"abilities": abilities,
		"stats":     stats,
	}
	if p.BaseExperience != nil {
		body["base_experience"] = *p.BaseExperience
	} else {
		body["base_experience"] = nil
	}
	return body
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// Starters returns a small fixed roster used across tests
func Starters() []Pokemon {
	return []Pokemon{
		{ID: 1, Name: "bulbasaur", Types: []string{"grass", "poison"}, Abilities: []string{"overgrow", "chlorophyll"}, BaseExperience: Exp(64)},
		{ID: 4, Name: "charmander", Types: []string{"fire"}, Abilities: []string{"blaze", "solar-power"}, BaseExperience: Exp(62)},
		{ID: 7, Name: "squirtle", Types: []string{"water"}, Abilities: []string{"torrent", "rain-dish"}, BaseExperience: Exp(63)},
		{ID: 25, Name: "pikachu", Types: []string{"electric"}, Abilities: []string{"static", "lightning-rod"}, BaseExperience: Exp(112)},
		{ID: 63, Name: "abra", Types: []string{"psychic"}, Abilities: []string{"synchronize"}},
	}
}
