package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/pokeforge/internal/pokeapi"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordFetch(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.RecordFetch(pokeapi.FetchEvent{
		Kind:     pokeapi.KindDetail,
		URL:      "https://pokeapi.co/api/v2/pokemon/pikachu",
		Status:   200,
		Duration: 42 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Len(t, rec.ID, 36)
	assert.Equal(t, int64(42), rec.DurationMs)

	got, err := s.RecentFetches(10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.ID, got[0].ID)
	assert.Equal(t, pokeapi.KindDetail, got[0].Kind)
	assert.Equal(t, 200, got[0].Status)
	assert.Empty(t, got[0].Error)
}

func TestRecentFetches_NewestFirstWithLimit(t *testing.T) {
	s := newTestStore(t)

	for _, u := range []string{"a", "b", "c"} {
		_, err := s.RecordFetch(pokeapi.FetchEvent{Kind: pokeapi.KindList, URL: u})
		require.NoError(t, err)
	}
	_, err := s.RecordFetch(pokeapi.FetchEvent{Kind: pokeapi.KindDetail, URL: "d", Err: errors.New("boom")})
	require.NoError(t, err)

	got, err := s.RecentFetches(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d", got[0].URL)
	assert.Equal(t, "boom", got[0].Error)
	assert.Equal(t, "c", got[1].URL)
}

func TestRecentFetches_Empty(t *testing.T) {
	got, err := newTestStore(t).RecentFetches(0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
