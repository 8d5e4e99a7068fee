// Package workerpool runs a function over a slice with bounded concurrency.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Process calls process for every item using at most workerCount goroutines.
// The first error cancels the context passed to the remaining calls, invokes
// onCancel once and is returned. If ctx is canceled before every item ran,
// ctx.Err() is returned.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workerCount, 1))

	for _, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return process(gctx, item)
		})
	}

	if err := g.Wait(); err != nil {
		if onCancel != nil && ctx.Err() == nil {
			onCancel()
		}
		return err
	}
	return ctx.Err()
}
