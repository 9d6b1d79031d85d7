package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/starfall/pkg/sequence"
)

// Each runs action for every element of the iterator with at most limit
// goroutines in flight. The first error cancels ctx for the remaining actions
// and is returned. A limit below one means no limit.
func Each[T any](ctx context.Context, i *sequence.Iterator[T], limit int, action func(context.Context, T) error) error {
	group, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}

	for value := range i.Seq() {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			return action(ctx, value)
		})
	}

	return group.Wait()
}

// Map applies mapFn to each element in parallel, preserving order.
func Map[T any, R any](ctx context.Context, i *sequence.Iterator[T], limit int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	in := i.Collect()
	out := make([]R, len(in))

	group, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}
	for idx, val := range in {
		group.Go(func() error {
			r, err := mapFn(ctx, val)
			if err != nil {
				return err
			}
			out[idx] = r
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
