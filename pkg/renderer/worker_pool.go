package renderer

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// WorkerPool renders tiles in parallel on a fixed number of workers
type WorkerPool struct {
	numWorkers int
	onTileDone func(done, total int) // Optional progress callback
}

// NewWorkerPool creates a worker pool. A non-positive count uses one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// OnTileDone registers a callback invoked after each finished tile. It may be
// called from several goroutines at once.
func (wp *WorkerPool) OnTileDone(fn func(done, total int)) {
	wp.onTileDone = fn
}

// Run feeds the tiles to the workers and waits until all are rendered. The
// first failing tile cancels the tiles not yet started and its error is returned.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, render func(*Tile) error) error {
	g, ctx := errgroup.WithContext(ctx)
	taskQueue := make(chan *Tile)

	g.Go(func() error {
		defer close(taskQueue) // No more tasks
		for _, tile := range tiles {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case taskQueue <- tile:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var done int64
	total := len(tiles)
	for i := 0; i < wp.numWorkers; i++ {
		g.Go(func() error {
			for tile := range taskQueue {
				if err := render(tile); err != nil {
					return err
				}
				n := atomic.AddInt64(&done, 1)
				if wp.onTileDone != nil {
					wp.onTileDone(int(n), total)
				}
			}
			return nil
		})
	}

	return g.Wait()
}
