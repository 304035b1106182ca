package job

import (
	"context"
	"sync"
)

// Pool fans a batch of requests out over a fixed number of workers, one job
// per file, and merges every job's events into a single stream.
type Pool struct {
	Runner  *Runner
	Workers int
}

func NewPool(r *Runner, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{Runner: r, Workers: workers}
}

// Run processes the requests concurrently and returns the merged event
// stream. Every request produces exactly one DoneEvent; the channel closes
// after the last one. The caller must drain the channel. Cancelling ctx
// stops each job at its next page boundary and skips requests not yet
// started.
func (p *Pool) Run(ctx context.Context, reqs []Request) <-chan Event {
	events := make(chan Event, len(reqs))
	queue := make(chan Request)

	workers := p.Workers
	if workers > len(reqs) {
		workers = len(reqs)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range queue {
				emit := func(ev Event) { events <- ev }
				res, err := p.Runner.Process(ctx, req, emit)
				events <- DoneEvent{Input: req.Input, Result: res, Err: err}
			}
		}()
	}

	go func() {
		defer close(queue)
		for _, req := range reqs {
			select {
			case queue <- req:
			case <-ctx.Done():
				// Unstarted requests still owe a DoneEvent.
				events <- DoneEvent{Input: req.Input, Err: ctx.Err()}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(events)
	}()
	return events
}
