package models

import "fmt"

// SortKey selects the ordering of the derived listing
type SortKey string

const (
	SortNone       SortKey = ""
	SortName       SortKey = "name"
	SortExperience SortKey = "experience"
)

// SortKeys lists the sort options in the order the UI cycles through them
var SortKeys = []SortKey{SortNone, SortName, SortExperience}

// TypeFilters lists the type filter options offered by the UI ("" = no filter)
var TypeFilters = []string{"", "fire", "water", "grass"}

// ParseSortKey accepts the sort values used by the UI and API.
// "base_experience" is kept as an alias for experience.
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "", "none":
		return SortNone, nil
	case "name":
		return SortName, nil
	case "experience", "base_experience":
		return SortExperience, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q", s)
}

// Label returns a human readable name for the sort option
func (k SortKey) Label() string {
	switch k {
	case SortName:
		return "Name (A-Z)"
	case SortExperience:
		return "Base Experience"
	}
	return "Sort By"
}

// QueryState drives the derived listing. It is a value type: every
// With* method returns a modified copy and leaves the receiver untouched.
type QueryState struct {
	SearchTerm string  `json:"search_term"`
	SortKey    SortKey `json:"sort_key"`
	TypeFilter string  `json:"type_filter"`
	PageOffset int     `json:"page_offset"`
}

// WithSearch returns a copy with the search term replaced
func (q QueryState) WithSearch(term string) QueryState {
	q.SearchTerm = term
	return q
}

// WithSort returns a copy with the sort key replaced
func (q QueryState) WithSort(key SortKey) QueryState {
	q.SortKey = key
	return q
}

// WithTypeFilter returns a copy with the type filter replaced
func (q QueryState) WithTypeFilter(typeName string) QueryState {
	q.TypeFilter = typeName
	return q
}

// WithOffset returns a copy with the page offset replaced
func (q QueryState) WithOffset(offset int) QueryState {
	q.PageOffset = offset
	return q
}

// ValidOffset reports whether offset is a non-negative multiple of PageSize
func ValidOffset(offset int) bool {
	return offset >= 0 && offset%PageSize == 0
}

// Next returns the element after cur in opts, wrapping around
func Next[T comparable](opts []T, cur T) T {
	for i, o := range opts {
		if o == cur {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}
