package listing

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/meur/pokeforge/internal/models"
)

// Derive computes the visible list for a query. It always filters by
// name, then sorts, then filters by type, and returns a new slice;
// details is never modified.
func Derive(details []models.DetailRecord, q models.QueryState) []models.DetailRecord {
	term := strings.ToLower(q.SearchTerm)
	out := make([]models.DetailRecord, 0, len(details))
	for _, d := range details {
		if strings.Contains(strings.ToLower(d.Name), term) {
			out = append(out, d)
		}
	}

	switch q.SortKey {
	case models.SortName:
		// collate.Collator keeps scratch buffers, so one per call.
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b models.DetailRecord) int {
			return col.CompareString(a.Name, b.Name)
		})
	case models.SortExperience:
		slices.SortStableFunc(out, func(a, b models.DetailRecord) int {
			return cmp.Compare(b.Experience(), a.Experience())
		})
	}

	if q.TypeFilter == "" {
		return out
	}
	return slices.DeleteFunc(out, func(d models.DetailRecord) bool {
		return !d.HasType(q.TypeFilter)
	})
}
