package pokeapi

import (
	"errors"

	"github.com/meur/pokeforge/internal/models"
)

// Upstream JSON shapes. Nested objects are pointers so that a missing key
// can be told apart from a null image URL.

type listResponse struct {
	Count   int            `json:"count"`
	Next    *string        `json:"next"`
	Results []namedAPIItem `json:"results"`
}

type namedAPIItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type pokemonResponse struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	BaseExperience *int         `json:"base_experience"`
	Sprites        *spritesWire `json:"sprites"`
	Types          []struct {
		Slot int          `json:"slot"`
		Type namedAPIItem `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability  namedAPIItem `json:"ability"`
		IsHidden bool         `json:"is_hidden"`
	} `json:"abilities"`
	Stats []struct {
		BaseStat int          `json:"base_stat"`
		Stat     namedAPIItem `json:"stat"`
	} `json:"stats"`
}

type spritesWire struct {
	FrontDefault *string `json:"front_default"`
	Other        *struct {
		OfficialArtwork *struct {
			FrontDefault *string `json:"front_default"`
		} `json:"official-artwork"`
	} `json:"other"`
}

func (p *pokemonResponse) toRecord() (*models.DetailRecord, error) {
	if p.Name == "" {
		return nil, errors.New("missing name")
	}
	if p.Sprites == nil {
		return nil, errors.New("missing sprites")
	}
	if p.Sprites.Other == nil || p.Sprites.Other.OfficialArtwork == nil {
		return nil, errors.New("missing official artwork")
	}

	rec := &models.DetailRecord{
		ID:             p.ID,
		Name:           p.Name,
		BaseExperience: p.BaseExperience,
		Sprites: models.Sprites{
			FrontDefault: deref(p.Sprites.FrontDefault),
			Artwork:      deref(p.Sprites.Other.OfficialArtwork.FrontDefault),
		},
		Types:     make([]string, 0, len(p.Types)),
		Abilities: make([]string, 0, len(p.Abilities)),
		Stats:     make([]models.Stat, 0, len(p.Stats)),
	}
	for _, t := range p.Types {
		rec.Types = append(rec.Types, t.Type.Name)
	}
	for _, a := range p.Abilities {
		rec.Abilities = append(rec.Abilities, a.Ability.Name)
	}
	for _, s := range p.Stats {
		rec.Stats = append(rec.Stats, models.Stat{Name: s.Stat.Name, BaseValue: s.BaseStat})
	}
	return rec, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
