package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs the task once right away, then on every tick until the context
// is canceled. A failing run logs and waits for the next tick; batch runs
// never overlap.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	run := func() {
		if err := task(ctx); err != nil {
			log.Printf("[%s] run failed: %v", name, err)
		}
	}

	run()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] stopping", name)
			return
		case <-t.C:
			run()
		}
	}
}
