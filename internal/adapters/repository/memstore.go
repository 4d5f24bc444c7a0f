package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/mentorank/internal/domain/model"
	"github.com/okian/mentorank/pkg/metrics"
)

// record is one mentor's derived state plus its exclusivity lock. The lock
// outlives individual Apply calls so two concurrent recomputations for the
// same mentor serialize on it.
type record struct {
	mu  sync.Mutex
	rep model.Reputation
}

// MemStore implements Store with an in-memory map of versioned records.
type MemStore struct {
	mu      sync.RWMutex
	records map[string]*record
}

// NewMemStore creates an empty in-memory derived profile store.
func NewMemStore(_ context.Context) *MemStore {
	return &MemStore{
		records: make(map[string]*record),
	}
}

// getOrCreate returns the mentor's record, creating it if absent.
func (s *MemStore) getOrCreate(mentorID string) *record {
	s.mu.RLock()
	rec, ok := s.records[mentorID]
	s.mu.RUnlock()
	if ok {
		return rec
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok = s.records[mentorID]; ok {
		return rec
	}
	rec = &record{rep: model.Reputation{MentorID: mentorID}}
	s.records[mentorID] = rec
	return rec
}

// Apply runs fn under the mentor's lock and persists the result with a
// bumped version. If fn fails, the previous record stays untouched.
func (s *MemStore) Apply(ctx context.Context, mentorID string, fn ApplyFunc) (model.Reputation, error) {
	if err := ctx.Err(); err != nil {
		return model.Reputation{}, fmt.Errorf("apply cancelled: %w", err)
	}
	start := time.Now()
	rec := s.getOrCreate(mentorID)

	// Read the map size before taking the record lock; taking s.mu while
	// holding rec.mu inverts the order Top and Count use.
	s.mu.RLock()
	recordsTotal := len(s.records)
	s.mu.RUnlock()

	rec.mu.Lock()
	defer rec.mu.Unlock()

	next, err := fn(rec.rep)
	if err != nil {
		metrics.RecordStoreError()
		return model.Reputation{}, fmt.Errorf("apply for mentor %s: %w", mentorID, err)
	}

	next.MentorID = mentorID
	next.Version = rec.rep.Version + 1
	rec.rep = next

	metrics.RecordStoreVersionBump()
	metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	metrics.UpdateStoreRecordsTotal(recordsTotal)

	return next, nil
}

// Reputation returns the mentor's current derived record.
func (s *MemStore) Reputation(_ context.Context, mentorID string) (model.Reputation, error) {
	s.mu.RLock()
	rec, ok := s.records[mentorID]
	s.mu.RUnlock()
	if !ok {
		return model.Reputation{}, fmt.Errorf("%w: %s", ErrNotFound, mentorID)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.rep.Version == 0 {
		// Created but never recomputed; treat as unknown.
		return model.Reputation{}, fmt.Errorf("%w: %s", ErrNotFound, mentorID)
	}
	return rec.rep, nil
}

// Top returns the top-n mentors ordered by rating desc. Ties break on
// review count, then mentor id for a stable listing.
func (s *MemStore) Top(_ context.Context, n int) ([]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	// Snapshot record pointers first so no rec.mu is taken while s.mu is
	// held; a pending map writer would otherwise wedge in-flight Applies.
	s.mu.RLock()
	recs := make([]*record, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	reps := make([]model.Reputation, 0, len(recs))
	for _, rec := range recs {
		rec.mu.Lock()
		if rec.rep.Version > 0 {
			reps = append(reps, rec.rep)
		}
		rec.mu.Unlock()
	}

	sort.Slice(reps, func(i, j int) bool {
		if reps[i].Rating != reps[j].Rating {
			return reps[i].Rating > reps[j].Rating
		}
		if reps[i].TotalReviews != reps[j].TotalReviews {
			return reps[i].TotalReviews > reps[j].TotalReviews
		}
		return reps[i].MentorID < reps[j].MentorID
	})

	if n > len(reps) {
		n = len(reps)
	}
	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		entries[i] = Entry{
			Rank:         i + 1,
			MentorID:     reps[i].MentorID,
			Rating:       reps[i].Rating,
			TotalReviews: reps[i].TotalReviews,
			Level:        reps[i].Level,
			LevelTitle:   reps[i].LevelTitle,
		}
	}
	return entries, nil
}

// Count returns the number of mentors with a derived record.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	recs := make([]*record, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	count := 0
	for _, rec := range recs {
		rec.mu.Lock()
		if rec.rep.Version > 0 {
			count++
		}
		rec.mu.Unlock()
	}
	return count
}
