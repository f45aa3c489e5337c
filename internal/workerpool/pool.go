// Package workerpool offloads blocking upstream calls onto a bounded set of
// goroutines so request handlers never wait on more than the pool admits.
package workerpool

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

const defaultSize = 16

// Config contains worker pool settings.
type Config struct {
	Size int `env:"WORKER_POOL_SIZE" envDefault:"16"`
}

// Pool bounds the number of concurrently running tasks.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// New creates a pool admitting at most size concurrent tasks.
func New(cfg *Config) *Pool {
	size := defaultSize
	if cfg != nil && cfg.Size > 0 {
		size = cfg.Size
	}

	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: size,
	}
}

// Size returns the pool capacity.
func (p *Pool) Size() int {
	return p.size
}

type result[T any] struct {
	value T
	err   error
}

// Do runs task on a pool worker and waits for its result. If ctx ends first
// Do returns ctx.Err(); the task keeps its slot until it observes the same
// context and returns.
func Do[T any](ctx context.Context, p *Pool, task func(context.Context) (T, error)) (T, error) {
	var zero T

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, fmt.Errorf("worker pool: %w", err)
	}

	done := make(chan result[T], 1)
	go func() {
		defer p.sem.Release(1)
		value, err := task(ctx)
		done <- result[T]{value: value, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
