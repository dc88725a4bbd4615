package concurrency

import (
	"context"
	"sync"
)

// ParallelOptions bounds the worker pool.
type ParallelOptions struct {
	MaxWorkers int
}

func DefaultOptions() ParallelOptions {
	return ParallelOptions{
		MaxWorkers: 4,
	}
}

func (o ParallelOptions) workers(n int) int {
	w := o.MaxWorkers
	if w <= 0 {
		w = DefaultOptions().MaxWorkers
	}
	if w > n {
		w = n
	}
	return w
}

type indexed[R any] struct {
	index  int
	result R
	err    error
}

// ProcessParallel calls itemFunc for every item on at most MaxWorkers goroutines.
// Results keep the input order. Items not started before ctx is done are left
// at their zero value and produce no error.
func ProcessParallel[T any, R any](
	ctx context.Context,
	items []T,
	opts ParallelOptions,
	itemFunc func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	jobs := make(chan int, len(items))
	results := make(chan indexed[R], len(items))

	var wg sync.WaitGroup
	for w := 0; w < opts.workers(len(items)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				r, err := itemFunc(ctx, i, items[i])
				results <- indexed[R]{i, r, err}
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]R, len(items))
	var errs []error
	for res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
		}
		out[res.index] = res.result
	}

	return out, errs
}

// ForEach is ProcessParallel for side effects only.
func ForEach[T any](
	ctx context.Context,
	items []T,
	opts ParallelOptions,
	itemFunc func(ctx context.Context, index int, item T) error,
) []error {
	if len(items) == 0 {
		return nil
	}
	_, errs := ProcessParallel(ctx, items, opts, func(ctx context.Context, i int, item T) (struct{}, error) {
		return struct{}{}, itemFunc(ctx, i, item)
	})
	return errs
}

// All runs every task at once and waits for all of them.
func All(ctx context.Context, tasks ...func(ctx context.Context) error) []error {
	return ForEach(ctx, tasks, ParallelOptions{MaxWorkers: len(tasks)}, func(ctx context.Context, _ int, task func(context.Context) error) error {
		return task(ctx)
	})
}
