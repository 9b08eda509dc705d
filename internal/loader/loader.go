package loader

import (
	"context"
	"fmt"

	"github.com/meur/pokeforge/internal/models"
	"github.com/meur/pokeforge/internal/pokeapi"
)

// Page is one fetched listing page. Details[i] is the record for Entries[i].
type Page struct {
	Offset  int
	Entries []models.SummaryEntry
	Details []models.DetailRecord
}

// PageLoader fetches and enriches a listing page
type PageLoader interface {
	LoadPage(ctx context.Context, limit, offset int) (Page, error)
}

// Enricher implements PageLoader: one list request, then one detail
// request per entry, issued together through Batch.
type Enricher struct {
	client pokeapi.Client
}

// NewEnricher creates an Enricher backed by client
func NewEnricher(client pokeapi.Client) *Enricher {
	return &Enricher{client: client}
}

// LoadPage fetches the summary page at offset and the detail for each entry
func (e *Enricher) LoadPage(ctx context.Context, limit, offset int) (Page, error) {
	entries, err := e.client.ListPage(ctx, limit, offset)
	if err != nil {
		return Page{}, fmt.Errorf("list page at %d: %w", offset, err)
	}

	details, err := Batch(ctx, entries, func(ctx context.Context, s models.SummaryEntry) (models.DetailRecord, error) {
		rec, err := e.client.GetDetailByURL(ctx, s.URL)
		if err != nil {
			return models.DetailRecord{}, fmt.Errorf("enrich %s: %w", s.Name, err)
		}
		return *rec, nil
	})
	if err != nil {
		return Page{}, err
	}

	return Page{Offset: offset, Entries: entries, Details: details}, nil
}
