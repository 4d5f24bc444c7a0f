// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/okian/mentorank/internal/adapters/mq/queue"
	workerpool "github.com/okian/mentorank/internal/adapters/mq/worker"
	repository "github.com/okian/mentorank/internal/adapters/repository"
	source "github.com/okian/mentorank/internal/adapters/source"
	"github.com/okian/mentorank/internal/domain/dedupe"
	"github.com/okian/mentorank/internal/domain/model"
	"github.com/okian/mentorank/internal/domain/reputation"
	"github.com/okian/mentorank/pkg/logger"
	"github.com/okian/mentorank/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize   = 100000
	defaultDedupeSize  = 50000
	defaultMaxTopLimit = 100
)

// Service implements the API dependencies for the reputation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	reviews    *source.MemoryReviews
	signals    *source.MemorySignals
	deduper    dedupe.Deduper
	eventQueue eventqueue.Queue
	engine     *reputation.Engine
	workerPool *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	maxTopLimit int
	params      reputation.Params

	// State
	started bool
	stopCh  chan struct{}

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

// WithQueueSize sets the maximum size of the recompute event queue.
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

// WithMaxTopLimit caps how many entries a single top-mentors query may ask for.
func WithMaxTopLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxTopLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParams sets the scoring parameters the engine runs with.
func WithParams(p reputation.Params) Option {
	return func(s *Service) {
		s.params = p
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2, // Default to 2x CPU cores
		queueSize:   defaultQueueSize,
		dedupeSize:  defaultDedupeSize,
		maxTopLimit: defaultMaxTopLimit,
		params:      reputation.DefaultParams(),
		stopCh:      make(chan struct{}),
		logger:      nil, // Will be replaced when service starts
	}

	// Apply all options
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

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting reputation service...")

	if err := s.params.Validate(); err != nil {
		return fmt.Errorf("invalid scoring parameters: %w", err)
	}

	// Initialize components
	s.store = repository.NewMemStore(ctx)
	s.reviews = source.NewMemoryReviews()
	s.signals = source.NewMemorySignals()
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.eventQueue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)
	s.engine = reputation.New(
		reputation.WithParams(s.params),
	)

	// Create and start the worker pool; workers call back into the service
	// for the actual recomputation.
	s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, s)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "reputation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
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

	s.logger.Info(context.Background(), "stopping reputation service...")

	// Close queue first so workers drain and exit
	if q, ok := s.eventQueue.(*eventqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	// Stop worker pool
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	// Signal cleanup loop to stop
	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "reputation service stopped")
}

// SubmitReview records a review against its mentor and returns the stored
// copy. It registers the mentor with the signal source so a later recompute
// can fetch signals without an unknown-mentor failure.
func (s *Service) SubmitReview(ctx context.Context, review model.Review) (model.Review, error) {
	s.signals.EnsureMentor(ctx, review.MentorID)

	stored, err := s.reviews.Upsert(ctx, review)
	if err != nil {
		return model.Review{}, fmt.Errorf("failed to store review: %w", err)
	}

	metrics.RecordReviewSubmitted()
	return stored, nil
}

// Recompute rebuilds the derived reputation profile for a mentor from the
// current review snapshot and auxiliary signals, then publishes it to the
// store. The whole read-compute-write runs inside Store.Apply so concurrent
// recomputes for one mentor serialize and the last writer scored the freshest
// snapshot. Any signal fetch failure aborts the whole run; the previously
// published profile stays visible.
func (s *Service) Recompute(ctx context.Context, mentorID string) (model.Reputation, error) {
	start := time.Now()

	var result reputation.Result
	rep, err := s.store.Apply(ctx, mentorID, func(prev model.Reputation) (model.Reputation, error) {
		reviews, err := s.reviews.ReviewsForMentor(ctx, mentorID)
		if err != nil {
			return model.Reputation{}, fmt.Errorf("failed to load reviews: %w", err)
		}

		sessions, err := s.signals.SessionCount(ctx, mentorID)
		if err != nil {
			return model.Reputation{}, fmt.Errorf("failed to load session count: %w", err)
		}
		messages, err := s.signals.MessageCount(ctx, mentorID)
		if err != nil {
			return model.Reputation{}, fmt.Errorf("failed to load message count: %w", err)
		}
		complete, err := s.signals.ProfileComplete(ctx, mentorID)
		if err != nil {
			return model.Reputation{}, fmt.Errorf("failed to load profile completeness: %w", err)
		}
		profile, err := s.signals.ProfileSnapshot(ctx, mentorID)
		if err != nil {
			return model.Reputation{}, fmt.Errorf("failed to load profile snapshot: %w", err)
		}

		result, err = s.engine.Score(ctx, reputation.Input{
			Reviews: reviews,
			Signals: model.SignalBundle{
				SessionCount:    sessions,
				MessageCount:    messages,
				ProfileComplete: complete,
			},
			Profile: profile,
			Now:     time.Now().UTC(),
		})
		if err != nil {
			return model.Reputation{}, fmt.Errorf("scoring failed: %w", err)
		}

		next := prev
		next.MentorID = mentorID
		next.Rating = result.Rating
		next.TotalReviews = result.TotalReviews
		next.Level = result.Level
		next.LevelTitle = result.LevelTitle
		next.Badges = result.Badges
		next.ComputedAt = time.Now().UTC()
		return next, nil
	})
	if err != nil {
		return model.Reputation{}, fmt.Errorf("recompute for %s: %w", mentorID, err)
	}

	metrics.RecordRecompute()
	metrics.RecordRecomputeLatency(float64(time.Since(start).Milliseconds()))
	for _, b := range result.Badges {
		metrics.RecordBadgeAwarded(string(b))
	}

	s.logger.Debug(ctx, "reputation recomputed",
		logger.String("mentorID", mentorID),
		logger.Float64("rating", rep.Rating),
		logger.Int("level", rep.Level),
		logger.Int("totalReviews", rep.TotalReviews),
		logger.Int64("version", rep.Version),
	)

	return rep, nil
}

// Reputation returns the currently published profile for a mentor.
func (s *Service) Reputation(ctx context.Context, mentorID string) (model.Reputation, error) {
	return s.store.Reputation(ctx, mentorID)
}

// SuspiciousReviews runs the advisory suspicion detector over the mentor's
// current review set and returns the flagged reviews with their reasons.
func (s *Service) SuspiciousReviews(ctx context.Context, mentorID string) ([]model.SuspiciousReview, error) {
	reviews, err := s.reviews.ReviewsForMentor(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews for %s: %w", mentorID, err)
	}

	now := time.Now().UTC()
	flagged := make([]model.SuspiciousReview, 0)
	for _, r := range reviews {
		reasons := reputation.SuspicionReasons(r, reviews, now)
		if len(reasons) == 0 {
			continue
		}
		metrics.RecordSuspicionFlag()
		names := make([]string, len(reasons))
		for i, reason := range reasons {
			names[i] = string(reason)
		}
		flagged = append(flagged, model.SuspiciousReview{
			ReviewID:   r.ReviewID,
			ReviewerID: r.ReviewerID,
			CreatedAt:  r.CreatedAt,
			Reasons:    names,
		})
	}

	return flagged, nil
}

// Top returns the highest-rated mentors, at most n entries. Values of n
// above the configured cap are clamped rather than rejected.
func (s *Service) Top(ctx context.Context, n int) ([]repository.Entry, error) {
	if n > s.maxTopLimit {
		n = s.maxTopLimit
	}
	return s.store.Top(ctx, n)
}

// MaxTopLimit returns the configured cap for top-mentor queries.
func (s *Service) MaxTopLimit() int {
	return s.maxTopLimit
}

// Seed exposes the in-memory signal source for signal seeding.
func (s *Service) Seed() *source.MemorySignals {
	return s.signals
}

// SeenAndRecord atomically checks if a submission id was seen and records it
// if not. Returns true if the id was already seen, false if newly recorded.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordReviewDuplicate()
	}
	return seen
}

// Unrecord removes a submission ID from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits a recompute event for asynchronous processing.
// Returns false when the queue is saturated.
func (s *Service) Enqueue(ctx context.Context, mentorID string) bool {
	event := model.RecomputeEvent{
		EventID:  uuid.New().String(),
		MentorID: mentorID,
		TS:       time.Now().UTC(),
	}

	success := s.eventQueue.Enqueue(ctx, event)
	if success {
		metrics.UpdateQueueSize(s.eventQueue.Len(ctx))
	} else {
		s.logger.Warn(ctx, "recompute queue saturated",
			logger.String("mentorID", mentorID),
		)
	}
	return success
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
		totalMentors := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalMentors"] = totalMentors

		// Update metrics
		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalMentors(totalMentors)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
