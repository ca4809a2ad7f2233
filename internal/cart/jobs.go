package cart

import (
	"context"
	"sync"
	"time"

	"tvojakarta/pkg/logger"
)

// Janitor periodically evicts idle sessions from a Registry.
type Janitor struct {
	registry *Registry
	interval time.Duration
	log      *logger.Logger
	done     chan struct{}
	stopOnce sync.Once
}

func NewJanitor(registry *Registry, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Janitor{
		registry: registry,
		interval: interval,
		log:      logger.GetDefault(),
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until ctx is cancelled or Stop is called.
func (j *Janitor) Start(ctx context.Context) {
	j.log.InfoContext(ctx, "Starting cart session janitor", "interval", j.interval)
	go j.run(ctx)
}

func (j *Janitor) Stop() {
	j.stopOnce.Do(func() {
		close(j.done)
		j.log.Info("Cart session janitor stopped")
	})
}

func (j *Janitor) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep(ctx)
		case <-j.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	if evicted := j.registry.EvictIdle(); evicted > 0 {
		j.log.LogSessionsEvicted(ctx, evicted)
	}
}
