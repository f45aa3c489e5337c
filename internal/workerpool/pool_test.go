package workerpool_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/ember/internal/workerpool"
)

func TestDo(t *testing.T) {
	t.Run("should return task result", func(t *testing.T) {
		pool := workerpool.New(&workerpool.Config{Size: 2})

		value, err := workerpool.Do(context.Background(), pool, func(context.Context) (string, error) {
			return "ok", nil
		})

		require.NoError(t, err)
		require.Equal(t, "ok", value)
	})

	t.Run("should return task error", func(t *testing.T) {
		pool := workerpool.New(nil)
		taskErr := errors.New("failed")

		_, err := workerpool.Do(context.Background(), pool, func(context.Context) (int, error) {
			return 0, taskErr
		})

		require.ErrorIs(t, err, taskErr)
		require.Equal(t, 16, pool.Size())
	})

	t.Run("should bound concurrency", func(t *testing.T) {
		pool := workerpool.New(&workerpool.Config{Size: 2})

		var running, peak int32
		var wg sync.WaitGroup

		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = workerpool.Do(context.Background(), pool, func(context.Context) (struct{}, error) {
					n := atomic.AddInt32(&running, 1)
					for {
						p := atomic.LoadInt32(&peak)
						if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
							break
						}
					}
					time.Sleep(10 * time.Millisecond)
					atomic.AddInt32(&running, -1)
					return struct{}{}, nil
				})
			}()
		}

		wg.Wait()
		require.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	})

	t.Run("should stop waiting when context ends", func(t *testing.T) {
		pool := workerpool.New(&workerpool.Config{Size: 1})
		ctx, cancel := context.WithCancel(context.Background())

		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		_, err := workerpool.Do(ctx, pool, func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})

		require.ErrorIs(t, err, context.Canceled)
	})
}
