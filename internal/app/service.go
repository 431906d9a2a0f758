// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"

	eventqueue "github.com/okian/festa/internal/adapters/mq/queue"
	workerpool "github.com/okian/festa/internal/adapters/mq/worker"
	repository "github.com/okian/festa/internal/adapters/repository"
	"github.com/okian/festa/internal/adapters/vectorizer"
	"github.com/okian/festa/internal/domain/dedupe"
	"github.com/okian/festa/internal/domain/feature"
	"github.com/okian/festa/internal/domain/fuzzy"
	"github.com/okian/festa/internal/domain/model"
	"github.com/okian/festa/internal/domain/types"
	"github.com/okian/festa/pkg/logger"
	"github.com/okian/festa/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize          = 100_000
	defaultDedupeSize         = 500_000
	defaultMaxRecommendations = 100
	defaultCentroidSamples    = 201
	defaultWorkerMultiplier   = 2
)

// Service implements the API dependencies for the recommendation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	deduper    dedupe.Deduper
	eventQueue eventqueue.Queue
	profile    *model.Profile
	scorer     *feature.Scorer
	engine     *fuzzy.Engine
	workerPool *workerpool.Pool

	// Configuration
	workerCount        int
	queueSize          int
	dedupeSize         int
	maxRecommendations int
	centroidSamples    int
	similarityWeight   float64
	categoryWeight     float64
	historyWeight      float64
	preferences        model.Preferences
	attended           []model.Event

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxRecommendations caps listing queries.
func WithMaxRecommendations(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxRecommendations = limit
		}
	}
}

// WithCentroidSamples sets the defuzzifier sampling resolution.
func WithCentroidSamples(n int) Option {
	return func(s *Service) {
		if n >= 3 {
			s.centroidSamples = n
		}
	}
}

// WithBlendWeights sets the interest blend weights.
func WithBlendWeights(similarity, category, history float64) Option {
	return func(s *Service) {
		s.similarityWeight = similarity
		s.categoryWeight = category
		s.historyWeight = history
	}
}

// WithPreferences sets the user's stated preferences.
func WithPreferences(prefs model.Preferences) Option {
	return func(s *Service) {
		s.preferences = prefs
	}
}

// WithAttendedEvents seeds the taste profile with already attended events.
func WithAttendedEvents(events ...model.Event) Option {
	return func(s *Service) {
		s.attended = append(s.attended, events...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:        runtime.NumCPU() * defaultWorkerMultiplier,
		queueSize:          defaultQueueSize,
		dedupeSize:         defaultDedupeSize,
		maxRecommendations: defaultMaxRecommendations,
		centroidSamples:    defaultCentroidSamples,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommendation service...")

	s.store = repository.NewMapStore()
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.eventQueue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)

	// Text similarity needs a vocabulary; learn it from the attended
	// events that carry descriptions.
	var vectorize model.Vectorizer
	if corpus := descriptions(s.attended); len(corpus) > 0 {
		vectorize = vectorizer.NewTFIDF(corpus...).Vectorizer()
	}

	s.profile = model.NewProfile(vectorize, s.attended...)
	metrics.UpdateProfileEvents(s.profile.Len())

	scorerOpts := make([]feature.Option, 0, 2)
	if s.similarityWeight+s.categoryWeight+s.historyWeight > 0 {
		scorerOpts = append(scorerOpts, feature.WithBlendWeights(s.similarityWeight, s.categoryWeight, s.historyWeight))
	}
	if vectorize != nil {
		scorerOpts = append(scorerOpts, feature.WithVectorizer(vectorize))
	}
	s.scorer = feature.New(s.profile, s.preferences, scorerOpts...)

	s.engine = fuzzy.New(
		fuzzy.WithCentroidSamples(s.centroidSamples),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, s.scorer, s.engine, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("profileEvents", s.profile.Len()),
		logger.Bool("textSimilarity", vectorize != nil),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping recommendation service...")

	if q, ok := s.eventQueue.(*eventqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	s.started = false
	s.logger.Info(context.Background(), "recommendation service stopped")
}

// SeenAndRecord atomically checks if an event was seen and records it if
// not. Returns true if the event was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	return s.deduper.SeenAndRecord(ctx, id)
}

// Unrecord removes an event ID from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Enqueue submits a candidate event for asynchronous scoring.
func (s *Service) Enqueue(ctx context.Context, submissionID string, e model.Event) bool {
	s.logger.Debug(ctx, "enqueueing submission",
		logger.String("submissionID", submissionID),
		logger.String("event", e.Name),
		logger.String("category", e.Category),
	)

	return s.eventQueue.Enqueue(ctx, eventqueue.Submission{ID: submissionID, Event: e})
}

// AppendAttended folds an attended event into the taste profile. All
// subsequent scoring sees the refreshed aggregates.
func (s *Service) AppendAttended(ctx context.Context, e model.Event) {
	s.profile.Append(e)
	metrics.UpdateProfileEvents(s.profile.Len())

	s.logger.Info(ctx, "attended event recorded",
		logger.String("event", e.Name),
		logger.String("category", e.Category),
		logger.Int("profileEvents", s.profile.Len()),
	)
}

// TopN returns the top N recommendation entries.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	entries, err := s.store.TopN(ctx, n)
	if err != nil {
		return nil, err
	}

	apiEntries := make([]types.Entry, len(entries))
	for i, entry := range entries {
		apiEntries[i] = types.Entry{
			Rank:      entry.Rank,
			Name:      entry.Name,
			Label:     entry.Label,
			Percent:   entry.Percent,
			Aggregate: entry.Aggregate,
		}
	}

	return apiEntries, nil
}

// Rank returns the rank and verdict for a given event name.
func (s *Service) Rank(ctx context.Context, name string) (types.Entry, error) {
	entry, err := s.store.Rank(ctx, name)
	if err != nil {
		return types.Entry{}, err
	}

	return types.Entry{
		Rank:      entry.Rank,
		Name:      entry.Name,
		Label:     entry.Label,
		Percent:   entry.Percent,
		Aggregate: entry.Aggregate,
	}, nil
}

// MaxRecommendations exposes the listing cap for the HTTP layer.
func (s *Service) MaxRecommendations() int {
	return s.maxRecommendations
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.eventQueue.Len(ctx)
		candidates := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalCandidates"] = candidates
		stats["profileEvents"] = s.profile.Len()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoreCandidates(candidates)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// descriptions collects the non-empty description texts of events.
func descriptions(events []model.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		if e.Description != "" {
			out = append(out, e.Description)
		}
	}
	return out
}
