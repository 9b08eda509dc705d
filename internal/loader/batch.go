// Package loader fetches a listing page and enriches it with full detail.
package loader

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch runs fn for every input concurrently and joins them as one unit.
// Results are aligned to input order, not completion order. The first
// failure cancels the context handed to the remaining calls and is
// returned with a nil slice; there are no partial results.
func Batch[T, R any](ctx context.Context, inputs []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(inputs))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		eg.Go(func() error {
			r, err := fn(egCtx, in)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
