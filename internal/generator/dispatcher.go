package generator

import (
	"context"
	"sync"

	"github.com/opengi/papergen/internal/store"
	"github.com/opengi/papergen/internal/store/model"
	"github.com/opengi/papergen/pkg/metrics"
	"go.uber.org/zap"
)

const queueDepth = 64

// Dispatcher fans generation requests out to a bounded worker pool and
// funnels every outcome through a single consumer goroutine. The consumer
// is the only writer of status transitions, so two near-simultaneous
// completions for the same row can never both apply: the first one wins
// the pending guard and the second is dropped.
type Dispatcher struct {
	store    store.Store
	gen      Generator
	workers  int
	requests chan Request
	outcomes chan Outcome

	startOnce sync.Once
}

func NewDispatcher(s store.Store, gen Generator, workers int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{
		store:    s,
		gen:      gen,
		workers:  workers,
		requests: make(chan Request, queueDepth),
		outcomes: make(chan Outcome, queueDepth),
	}
}

// Start launches the worker pool and the outcome consumer. Both stop when
// ctx is cancelled; requests in flight at that point stay pending.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		var wg sync.WaitGroup
		for i := 0; i < d.workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d.work(ctx)
			}()
		}

		go d.consume(ctx)

		go func() {
			wg.Wait()
			close(d.outcomes)
		}()

		zap.S().Named("dispatcher").Infof("generation dispatcher started with %d workers", d.workers)
	})
}

// Enqueue hands requests to the worker pool. It blocks when the queue is
// full and gives up on context cancellation.
func (d *Dispatcher) Enqueue(ctx context.Context, reqs []Request) error {
	for _, req := range reqs {
		select {
		case d.requests <- req:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (d *Dispatcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-d.requests:
			filename, err := d.gen.Generate(ctx, req)
			outcome := Outcome{
				SessionID: req.SessionID,
				RowIdx:    req.RowIdx,
				Filename:  filename,
				Err:       err,
			}

			select {
			case d.outcomes <- outcome:
			case <-ctx.Done():
				return
			}
		}
	}
}

// consume applies outcomes one at a time. The pending-state guard lives in
// the store update itself, so a completion for a row that already reached a
// terminal state is a no-op.
func (d *Dispatcher) consume(ctx context.Context) {
	for outcome := range d.outcomes {
		d.apply(ctx, outcome)
	}
}

func (d *Dispatcher) apply(ctx context.Context, outcome Outcome) {
	logger := zap.S().Named("dispatcher")

	status := model.PaperStatusSucceeded
	var reason *string
	var filename *string

	if outcome.Err != nil {
		status = model.PaperStatusFailed
		msg := outcome.Err.Error()
		reason = &msg
	} else {
		filename = &outcome.Filename
	}

	applied, err := d.store.Paper().CompleteFromPending(ctx, outcome.SessionID, outcome.RowIdx, status, reason, filename)
	if err != nil {
		logger.Errorf("failed to record outcome for row %d of session %s: %v", outcome.RowIdx, outcome.SessionID, err)
		return
	}
	if !applied {
		logger.Warnf("dropped late completion for row %d of session %s", outcome.RowIdx, outcome.SessionID)
		return
	}

	metrics.IncreasePapersTotalMetric(string(status))
	logger.Infof("row %d of session %s: %s", outcome.RowIdx, outcome.SessionID, status)
}
