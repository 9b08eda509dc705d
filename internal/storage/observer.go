package storage

import (
	"go.uber.org/zap"

	"github.com/meur/pokeforge/internal/pokeapi"
)

// Observer returns a pokeapi.Observer that journals every upstream request.
// Journal write failures are logged and otherwise ignored.
func (s *Store) Observer(logger *zap.Logger) pokeapi.Observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ev pokeapi.FetchEvent) {
		if _, err := s.RecordFetch(ev); err != nil {
			logger.Warn("Failed to journal fetch", zap.String("url", ev.URL), zap.Error(err))
		}
	}
}
