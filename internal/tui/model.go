// Package tui is the interactive terminal browser. It hosts a listing
// view and a detail view; typing in the search box, cycling the sort or
// the type filter only re-derives the grid, while paging and opening a
// detail issue requests.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/meur/pokeforge/internal/detail"
	"github.com/meur/pokeforge/internal/listing"
	"github.com/meur/pokeforge/internal/loader"
	"github.com/meur/pokeforge/internal/models"
	"github.com/meur/pokeforge/internal/pokeapi"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

type pageLoadedMsg struct{ err error }

type detailLoadedMsg struct{ applied bool }

// Model is the bubbletea model for the browser
type Model struct {
	ctx     context.Context
	listing *listing.View
	detail  *detail.View

	search  textinput.Model
	spinner spinner.Model
	screen  screen
	cursor  int
}

// New creates the browser model. Pages are loaded through pages and
// detail records through client.
func New(ctx context.Context, pages loader.PageLoader, client pokeapi.Client, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	search := textinput.New()
	search.Placeholder = "Search Pokémon..."
	search.CharLimit = 40
	search.Width = 30
	search.Focus()

	return Model{
		ctx:     ctx,
		listing: listing.NewView(pages, logger),
		detail:  detail.NewView(client, logger),
		search:  search,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
	}
}

// Init loads the first page
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.loadPage(m.listing.Begin(0)))
}

func (m Model) loadPage(fetch listing.Fetch, err error) tea.Cmd {
	if err != nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return pageLoadedMsg{err: fetch(ctx)}
	}
}

func (m Model) loadDetail(identifier string) tea.Cmd {
	ctx, view := m.ctx, m.detail
	return func() tea.Msg {
		return detailLoadedMsg{applied: view.Load(ctx, identifier)}
	}
}

// Update handles input and fetch completions
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		m.cursor = 0
		return m, nil

	case detailLoadedMsg:
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == screenDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "b":
		m.screen = screenList
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "ctrl+s":
		m.listing.SetSort(models.Next(models.SortKeys, m.listing.Query().SortKey))
		m.cursor = 0
		return m, nil
	case "ctrl+t":
		m.listing.SetTypeFilter(models.Next(models.TypeFilters, m.listing.Query().TypeFilter))
		m.cursor = 0
		return m, nil
	case "pgdown":
		return m, m.loadPage(m.listing.Next())
	case "pgup":
		return m, m.loadPage(m.listing.Prev())
	case "right", "left":
		// Arrow keys page only while the search box is empty; otherwise
		// they move the search cursor.
		if m.search.Value() == "" {
			if msg.String() == "right" {
				return m, m.loadPage(m.listing.Next())
			}
			return m, m.loadPage(m.listing.Prev())
		}
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(m.listing.Snapshot().Visible)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		visible := m.listing.Snapshot().Visible
		if m.cursor >= len(visible) {
			return m, nil
		}
		m.screen = screenDetail
		return m, m.loadDetail(visible[m.cursor].Name)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.listing.Query().SearchTerm {
		m.listing.SetSearch(m.search.Value())
		m.cursor = 0
	}
	return m, cmd
}
