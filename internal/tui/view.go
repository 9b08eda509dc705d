package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/meur/pokeforge/internal/models"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F8F8F2")).Background(lipgloss.Color("#3B4CCA")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFDE00"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	buttonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7B3FE4")).Padding(0, 1)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("238")).Padding(0, 1)
	typeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3B82F6")).Padding(0, 1)
	abilityStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#22C55E")).Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// View renders the current screen
func (m Model) View() string {
	if m.screen == screenDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	snap := m.listing.Snapshot()
	title := cases.Title(language.English)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pokémon Explorer") + "\n\n")
	b.WriteString(m.search.View() + "\n")

	typeLabel := "Filter by Type"
	if snap.Query.TypeFilter != "" {
		typeLabel = title.String(snap.Query.TypeFilter)
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("sort: %s · type: %s · offset %d", snap.Query.SortKey.Label(), typeLabel, snap.Query.PageOffset)) + "\n\n")

	if snap.Loading {
		b.WriteString(m.spinner.View() + " loading\n")
	} else {
		for i, d := range snap.Visible {
			line := fmt.Sprintf("%-14s #%-4d %s", title.String(d.Name), d.ID, strings.Join(d.Types, "/"))
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("› "+line) + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	}

	prev := disabledStyle.Render("‹ Previous")
	if snap.PrevEnabled {
		prev = buttonStyle.Render("‹ Previous")
	}
	next := disabledStyle.Render("Next ›")
	if snap.NextEnabled {
		next = buttonStyle.Render("Next ›")
	}
	b.WriteString("\n" + prev + "  " + next + "\n")
	b.WriteString(dimStyle.Render("↑/↓ select · enter open · pgup/pgdn page (←/→ when search is empty) · ctrl+s sort · ctrl+t type · esc quit") + "\n")
	return b.String()
}

func (m Model) viewDetail() string {
	st := m.detail.State()
	if st.Loading {
		return m.spinner.View() + " loading " + st.Identifier + "\n"
	}
	if st.NotFound() {
		return errorStyle.Render("Pokémon not found!") + "\n\n" + dimStyle.Render("esc: Back to Home") + "\n"
	}
	return renderRecord(st.Record) + "\n" + dimStyle.Render("esc: Back to Home · q quit") + "\n"
}

func renderRecord(d *models.DetailRecord) string {
	title := cases.Title(language.English)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title.String(d.Name)) + "\n")
	if d.Sprites.Artwork != "" {
		b.WriteString(dimStyle.Render(d.Sprites.Artwork) + "\n")
	}

	var body strings.Builder
	body.WriteString("Type(s)\n")
	types := make([]string, 0, len(d.Types))
	for _, t := range d.Types {
		types = append(types, typeStyle.Render(t))
	}
	body.WriteString(strings.Join(types, " ") + "\n\n")

	body.WriteString("Abilities\n")
	abilities := make([]string, 0, len(d.Abilities))
	for _, a := range d.Abilities {
		abilities = append(abilities, abilityStyle.Render(a))
	}
	body.WriteString(strings.Join(abilities, " ") + "\n\n")

	body.WriteString("Stats\n")
	for _, s := range d.Stats {
		body.WriteString(fmt.Sprintf("%-18s %4d\n", title.String(s.Name), s.BaseValue))
	}
	if d.BaseExperience != nil {
		body.WriteString(fmt.Sprintf("%-18s %4d\n", "Base Experience", *d.BaseExperience))
	}

	b.WriteString(boxStyle.Render(strings.TrimRight(body.String(), "\n")))
	return b.String()
}

// RenderRecord formats one record for non-interactive output
func RenderRecord(d *models.DetailRecord) string {
	return renderRecord(d)
}
