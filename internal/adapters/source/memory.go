package source

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/mentorank/internal/domain/model"
)

// MemoryReviews is an in-memory ReviewSource. Reviews are held per mentor
// in submission order; reads sort by creation timestamp so backdated
// submissions still yield a chronological history.
type MemoryReviews struct {
	mu       sync.RWMutex
	byMentor map[string][]model.Review
}

// NewMemoryReviews creates an empty in-memory review source.
func NewMemoryReviews() *MemoryReviews {
	return &MemoryReviews{
		byMentor: make(map[string][]model.Review),
	}
}

// ReviewsForMentor returns a copy of the mentor's reviews, oldest first.
func (s *MemoryReviews) ReviewsForMentor(_ context.Context, mentorID string) ([]model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := s.byMentor[mentorID]
	out := make([]model.Review, len(reviews))
	copy(out, reviews)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Upsert creates or updates the reviewer's review for the mentor. Updates
// replace scores and comment but keep the original creation timestamp and
// review id; creation order is preserved.
func (s *MemoryReviews) Upsert(_ context.Context, review model.Review) (model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews := s.byMentor[review.MentorID]
	for i, existing := range reviews {
		if existing.ReviewerID != review.ReviewerID {
			continue
		}
		existing.Friendliness = review.Friendliness
		existing.Knowledge = review.Knowledge
		existing.Communication = review.Communication
		existing.Comment = review.Comment
		reviews[i] = existing
		return existing, nil
	}

	if review.ReviewID == "" {
		review.ReviewID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	s.byMentor[review.MentorID] = append(reviews, review)
	return review, nil
}

// MemorySignals is an in-memory SignalSource. Mentors must be registered
// before their signals can be fetched; fetching for an unknown mentor
// fails, which exercises the whole-recompute abort path.
type MemorySignals struct {
	mu       sync.RWMutex
	profiles map[string]model.ProfileSnapshot
	sessions map[string]int
	messages map[string]int
	complete map[string]bool
}

// NewMemorySignals creates an empty in-memory signal source.
func NewMemorySignals() *MemorySignals {
	return &MemorySignals{
		profiles: make(map[string]model.ProfileSnapshot),
		sessions: make(map[string]int),
		messages: make(map[string]int),
		complete: make(map[string]bool),
	}
}

// EnsureMentor registers a zero-signal mentor if absent. The account
// creation instant defaults to the first time the mentor is seen.
func (s *MemorySignals) EnsureMentor(_ context.Context, mentorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[mentorID]; !ok {
		s.profiles[mentorID] = model.ProfileSnapshot{
			MentorID:  mentorID,
			CreatedAt: time.Now().UTC(),
		}
	}
}

// SetProfile replaces the mentor's profile snapshot.
func (s *MemorySignals) SetProfile(_ context.Context, snapshot model.ProfileSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[snapshot.MentorID] = snapshot
}

// SetSessions seeds the mentor's session count.
func (s *MemorySignals) SetSessions(_ context.Context, mentorID string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[mentorID] = count
}

// SetMessages seeds the mentor's outbound message count.
func (s *MemorySignals) SetMessages(_ context.Context, mentorID string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[mentorID] = count
}

// SetProfileComplete seeds the mentor's profile-completeness flag.
func (s *MemorySignals) SetProfileComplete(_ context.Context, mentorID string, complete bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.complete[mentorID] = complete
}

// SessionCount returns the mentor's session/relationship count.
func (s *MemorySignals) SessionCount(_ context.Context, mentorID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.profiles[mentorID]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownMentor, mentorID)
	}
	return s.sessions[mentorID], nil
}

// MessageCount returns the mentor's outbound message count.
func (s *MemorySignals) MessageCount(_ context.Context, mentorID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.profiles[mentorID]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownMentor, mentorID)
	}
	return s.messages[mentorID], nil
}

// ProfileComplete returns whether the mentor's profile is fully filled in.
func (s *MemorySignals) ProfileComplete(_ context.Context, mentorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.profiles[mentorID]; !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownMentor, mentorID)
	}
	return s.complete[mentorID], nil
}

// ProfileSnapshot returns the mentor's externally owned attributes.
func (s *MemorySignals) ProfileSnapshot(_ context.Context, mentorID string) (model.ProfileSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.profiles[mentorID]
	if !ok {
		return model.ProfileSnapshot{}, fmt.Errorf("%w: %s", ErrUnknownMentor, mentorID)
	}
	return snapshot, nil
}
