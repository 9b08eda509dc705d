package models

// PageSize is the number of entries fetched per listing page
const PageSize = 12

// SummaryEntry is one row of the paged listing endpoint
type SummaryEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"` // Detail resource for this entry
}

// DetailRecord is the full record for a single Pokémon
type DetailRecord struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Sprites        Sprites  `json:"sprites"`
	Types          []string `json:"types"`     // Type names, in slot order
	Abilities      []string `json:"abilities"` // Ability names, in slot order
	Stats          []Stat   `json:"stats"`
	BaseExperience *int     `json:"base_experience,omitempty"` // nil = absent upstream
}

// Sprites holds the image URLs used by the grid and the detail page
type Sprites struct {
	FrontDefault string `json:"front_default"`
	Artwork      string `json:"artwork"` // other["official-artwork"].front_default
}

// Stat is a named base stat
type Stat struct {
	Name      string `json:"name"`
	BaseValue int    `json:"base_value"`
}

// Experience returns the base experience, treating an absent value as 0
func (d DetailRecord) Experience() int {
	if d.BaseExperience == nil {
		return 0
	}
	return *d.BaseExperience
}

// HasType reports whether the record carries the exact type name
func (d DetailRecord) HasType(name string) bool {
	for _, t := range d.Types {
		if t == name {
			return true
		}
	}
	return false
}
