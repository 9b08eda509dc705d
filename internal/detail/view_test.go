package detail

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/pokeforge/internal/models"
	"github.com/meur/pokeforge/internal/pokeapi"
	"github.com/meur/pokeforge/internal/pokeapi/pokeapitest"
)

func TestView_LoadFound(t *testing.T) {
	srv := pokeapitest.NewServer(pokeapitest.Starters()...)
	defer srv.Close()

	v := NewView(pokeapi.New(srv.BaseURL()), nil)
	assert.True(t, v.Load(context.Background(), "pikachu"))

	st := v.State()
	assert.False(t, st.Loading)
	require.NotNil(t, st.Record)
	assert.Equal(t, "pikachu", st.Record.Name)
	assert.False(t, st.NotFound())
}

func TestView_LoadNotFound(t *testing.T) {
	srv := pokeapitest.NewServer(pokeapitest.Starters()...)
	defer srv.Close()

	v := NewView(pokeapi.New(srv.BaseURL()), nil)
	v.Load(context.Background(), "missingno")

	st := v.State()
	assert.False(t, st.Loading)
	assert.Nil(t, st.Record)
	assert.True(t, st.NotFound())
	assert.EqualValues(t, 1, srv.DetailCalls(), "no retry")
}

func TestView_EmptyIdentifierStaysUnresolved(t *testing.T) {
	srv := pokeapitest.NewServer(pokeapitest.Starters()...)
	defer srv.Close()

	v := NewView(pokeapi.New(srv.BaseURL()), nil)
	assert.False(t, v.Load(context.Background(), ""))

	st := v.State()
	assert.True(t, st.Loading)
	assert.False(t, st.NotFound())
	assert.Zero(t, srv.DetailCalls())
}

// gatedClient blocks GetDetail for one identifier until released
type gatedClient struct {
	pokeapi.Client
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
}

func (g *gatedClient) GetDetail(ctx context.Context, id string) (*models.DetailRecord, error) {
	g.mu.Lock()
	gate := g.gates[id]
	g.mu.Unlock()
	g.started <- id
	if gate != nil {
		<-gate
	}
	if id == "missingno" {
		return nil, fmt.Errorf("%w: %s", pokeapi.ErrNotFound, id)
	}
	return &models.DetailRecord{Name: id}, nil
}

func TestView_StaleResponseIsDiscarded(t *testing.T) {
	slow := make(chan struct{})
	c := &gatedClient{gates: map[string]chan struct{}{"bulbasaur": slow}, started: make(chan string, 2)}
	v := NewView(c, nil)

	applied := make(chan bool)
	go func() { applied <- v.Load(context.Background(), "bulbasaur") }()
	<-c.started

	assert.True(t, v.Load(context.Background(), "ivysaur"))
	<-c.started

	close(slow)
	assert.False(t, <-applied, "stale response must be dropped")

	st := v.State()
	require.NotNil(t, st.Record)
	assert.Equal(t, "ivysaur", st.Record.Name)
	assert.Equal(t, "ivysaur", st.Identifier)
}

func TestView_StaleFailureDoesNotClearNewRecord(t *testing.T) {
	slow := make(chan struct{})
	c := &gatedClient{gates: map[string]chan struct{}{"missingno": slow}, started: make(chan string, 2)}
	v := NewView(c, nil)

	applied := make(chan bool)
	go func() { applied <- v.Load(context.Background(), "missingno") }()
	<-c.started

	v.Load(context.Background(), "pikachu")
	<-c.started
	close(slow)
	<-applied

	st := v.State()
	require.NotNil(t, st.Record)
	assert.Equal(t, "pikachu", st.Record.Name)
}

func TestView_IdentifierChangeRefetches(t *testing.T) {
	srv := pokeapitest.NewServer(pokeapitest.Starters()...)
	defer srv.Close()

	v := NewView(pokeapi.New(srv.BaseURL()), nil)
	v.Load(context.Background(), "pikachu")
	v.Load(context.Background(), "squirtle")

	assert.Equal(t, "squirtle", v.State().Record.Name)
	assert.EqualValues(t, 2, srv.DetailCalls())
}
