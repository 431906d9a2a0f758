// Package worker defines worker contracts for asynchronous scoring and
// verdict updates.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/festa/internal/adapters/mq/queue"
	"github.com/okian/festa/internal/domain/feature"
	"github.com/okian/festa/internal/domain/fuzzy"
	"github.com/okian/festa/internal/domain/model"
	"github.com/okian/festa/pkg/logger"
	"github.com/okian/festa/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Scorer turns a candidate event into its six match scores.
type Scorer interface {
	Compute(e model.Event) feature.Features
}

// Engine turns match scores into a recommendation verdict.
type Engine interface {
	Recommend(f feature.Features) fuzzy.Verdict
}

// Updater persists the verdict for a candidate event.
type Updater interface {
	Upsert(ctx context.Context, name string, label string, percent, aggregate float64) error
}

// Queue defines how workers receive submissions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Submission
}

// Worker processes submissions and writes verdicts using the provided
// interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker. It processes any remaining
	// submissions before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing submissions.
type InMemoryWorker struct {
	queue   Queue
	scorer  Scorer
	engine  Engine
	updater Updater
	name    string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, scorer Scorer, engine Engine, updater Updater, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		scorer:   scorer,
		engine:   engine,
		updater:  updater,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	submissions := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case s, ok := <-submissions:
			if !ok {
				return
			}
			if err := w.process(ctx, s); err != nil {
				w.logger.Error(ctx, "error processing submission", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process scores one submission end to end: feature extraction, fuzzy
// inference, then the verdict upsert.
func (w *InMemoryWorker) process(ctx context.Context, s queue.Submission) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	featureStart := time.Now()
	f := w.scorer.Compute(s.Event)
	metrics.RecordFeatureLatency(float64(time.Since(featureStart).Milliseconds()))

	inferStart := time.Now()
	v := w.engine.Recommend(f)
	metrics.RecordInferenceLatency(float64(time.Since(inferStart).Milliseconds()))

	if v.RuleGap {
		metrics.RecordRuleGapFallback()
		w.logger.Warn(ctx, "no rule fired, using neutral verdict",
			logger.String("submissionID", s.ID),
			logger.String("event", s.Event.Name),
		)
	}

	if err := w.updater.Upsert(ctx, s.Event.Name, string(v.Label), v.Percent, f.WeightedAggregate()); err != nil {
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "verdict upsert failed",
			logger.String("submissionID", s.ID),
			logger.String("event", s.Event.Name),
			logger.Error(err),
		)
		return fmt.Errorf("verdict upsert failed for %s: %w", s.Event.Name, err)
	}

	metrics.RecordVerdict(string(v.Label), v.Percent)
	metrics.RecordEventScored()

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, scorer Scorer, engine Engine, updater Updater) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    q,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			q,
			scorer,
			engine,
			updater,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop signals all workers and waits briefly for each to finish.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Close the queue first so workers drain the backlog and stop.
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
