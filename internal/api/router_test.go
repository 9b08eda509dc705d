package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/pokeforge/internal/models"
	"github.com/meur/pokeforge/internal/pokeapi"
	"github.com/meur/pokeforge/internal/pokeapi/pokeapitest"
	"github.com/meur/pokeforge/internal/storage"
)

func newTestServer(t *testing.T, journal *storage.Store) (*Server, *pokeapitest.Server) {
	t.Helper()
	upstream := pokeapitest.NewServer(pokeapitest.Starters()...)
	t.Cleanup(upstream.Close)

	var opts []pokeapi.Option
	if journal != nil {
		opts = append(opts, pokeapi.WithObserver(journal.Observer(nil)))
	}
	return New(pokeapi.New(upstream.BaseURL(), opts...), journal, nil), upstream
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) ListResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func itemNames(items []models.DetailRecord) []string {
	out := []string{}
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestListPokemon_Default(t *testing.T) {
	s, upstream := newTestServer(t, nil)

	resp := decodeList(t, get(t, s, "/api/pokemon"))
	assert.Equal(t, 0, resp.Offset)
	assert.Equal(t, models.PageSize, resp.PageSize)
	assert.Equal(t, []string{"bulbasaur", "charmander", "squirtle", "pikachu", "abra"}, itemNames(resp.Items))
	assert.Equal(t, 5, resp.TotalLoaded)
	assert.False(t, resp.PrevEnabled)
	assert.Nil(t, resp.PrevOffset)
	assert.True(t, resp.NextEnabled)
	assert.Equal(t, 12, resp.NextOffset)
	assert.EqualValues(t, 1, upstream.ListCalls())
	assert.EqualValues(t, 5, upstream.DetailCalls())
}

func TestListPokemon_QueryParams(t *testing.T) {
	s, _ := newTestServer(t, nil)

	resp := decodeList(t, get(t, s, "/api/pokemon?q=r&sort=name"))
	assert.Equal(t, []string{"abra", "bulbasaur", "charmander", "squirtle"}, itemNames(resp.Items))
	assert.Equal(t, 5, resp.TotalLoaded)

	resp = decodeList(t, get(t, s, "/api/pokemon?sort=base_experience"))
	assert.Equal(t, []string{"pikachu", "bulbasaur", "squirtle", "charmander", "abra"}, itemNames(resp.Items))

	resp = decodeList(t, get(t, s, "/api/pokemon?type=fire"))
	assert.Equal(t, []string{"charmander"}, itemNames(resp.Items))
}

func TestListPokemon_SecondPage(t *testing.T) {
	s, _ := newTestServer(t, nil)

	resp := decodeList(t, get(t, s, "/api/pokemon?offset=12"))
	assert.Empty(t, resp.Items)
	assert.True(t, resp.PrevEnabled)
	require.NotNil(t, resp.PrevOffset)
	assert.Equal(t, 0, *resp.PrevOffset)
	assert.Equal(t, 24, resp.NextOffset)
}

func TestListPokemon_BadParams(t *testing.T) {
	s, upstream := newTestServer(t, nil)

	for _, target := range []string{
		"/api/pokemon?offset=abc",
		"/api/pokemon?offset=-12",
		"/api/pokemon?offset=5",
		"/api/pokemon?sort=height",
	} {
		assert.Equal(t, http.StatusBadRequest, get(t, s, target).Code, target)
	}
	assert.Zero(t, upstream.ListCalls())
}

func TestListPokemon_UpstreamFailureIsEmpty(t *testing.T) {
	s, upstream := newTestServer(t, nil)
	upstream.FailDetail("squirtle", http.StatusInternalServerError)

	resp := decodeList(t, get(t, s, "/api/pokemon"))
	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.TotalLoaded)
}

func TestGetPokemon(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := get(t, s, "/api/pokemon/pikachu")
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.DetailRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "pikachu", got.Name)
	assert.Equal(t, []string{"electric"}, got.Types)

	rec = get(t, s, "/api/pokemon/missingno")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")
}

func TestGetTypes(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := get(t, s, "/api/types")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["fire","water","grass"]`, rec.Body.String())
}

func TestGetFetches(t *testing.T) {
	s, _ := newTestServer(t, nil)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/fetches").Code)

	journal, err := storage.New(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer journal.Close()

	s, _ = newTestServer(t, journal)
	get(t, s, "/api/pokemon/pikachu")
	get(t, s, "/api/pokemon/missingno")

	rec := get(t, s, "/api/fetches?limit=10")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Fetches    []storage.FetchRecord `json:"fetches"`
		TotalCount int                   `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.TotalCount)
	assert.Equal(t, http.StatusNotFound, body.Fetches[0].Status)
	assert.NotEmpty(t, body.Fetches[0].Error)
	assert.Equal(t, http.StatusOK, body.Fetches[1].Status)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestMountFrontend(t *testing.T) {
	s, _ := newTestServer(t, nil)
	MountFrontend(s.Router(), fstest.MapFS{
		"index.html": {Data: []byte("<html>app</html>")},
		"app.js":     {Data: []byte("console.log(1)")},
	})

	assert.Equal(t, "console.log(1)", get(t, s, "/app.js").Body.String())

	rec := get(t, s, "/pokemon/pikachu")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>app</html>", rec.Body.String())

	assert.Equal(t, "OK", get(t, s, "/health").Body.String())
}
