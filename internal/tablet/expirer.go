package tablet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// ExpiryResult holds the outcome of one sweep.
type ExpiryResult struct {
	Tables  int
	Deleted int
	Errors  []string
}

// Expirer periodically deletes versions past their table's TTL.
type Expirer struct {
	tablet      *Tablet
	interval    time.Duration
	concurrency int64

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewExpirer creates an expirer sweeping every interval with at most
// concurrency tables in flight.
func NewExpirer(t *Tablet, interval time.Duration, concurrency int) *Expirer {
	if interval <= 0 {
		interval = time.Minute
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Expirer{tablet: t, interval: interval, concurrency: int64(concurrency)}
}

// Start begins the sweep loop. It runs until the context is cancelled or Stop is called.
func (e *Expirer) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return fmt.Errorf("expirer: already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.running = true
	e.done = make(chan struct{})
	e.mu.Unlock()

	go e.run(ctx)
	return nil
}

// Stop stops the sweep loop and waits for it to exit.
func (e *Expirer) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return nil
	}

	e.cancel()
	<-e.done
	e.running = false
	return nil
}

func (e *Expirer) run(ctx context.Context) {
	defer close(e.done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res := e.RunOnce(ctx)
			if res.Deleted > 0 {
				log.Printf("expirer: deleted %d expired versions from %d tables", res.Deleted, res.Tables)
			}
			if len(res.Errors) > 0 {
				log.Printf("expirer: encountered %d errors during sweep", len(res.Errors))
			}
		}
	}
}

// RunOnce sweeps every table with a TTL once.
func (e *Expirer) RunOnce(ctx context.Context) ExpiryResult {
	keys := e.tablet.expiringTables()
	res := ExpiryResult{Tables: len(keys)}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = semaphore.NewWeighted(e.concurrency)
	)
	for _, key := range keys {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			n, err := e.tablet.ExpireTable(ctx, key)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// A table dropped mid-sweep is not an error.
				if !errors.Is(err, ErrTableNotFound) {
					res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", key, err))
				}
				return
			}
			res.Deleted += n
		}()
	}
	wg.Wait()
	return res
}
