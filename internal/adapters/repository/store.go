// Package repository defines the derived reputation store interface and errors.
package repository

import (
	"context"

	"github.com/okian/mentorank/internal/domain/model"
)

// Entry represents one row of the rating-ordered mentor listing.
type Entry struct {
	Rank         int     `json:"rank"`
	MentorID     string  `json:"mentor_id"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`
	Level        int     `json:"level"`
	LevelTitle   string  `json:"level_title"`
}

// ApplyFunc computes a new derived record from the previous one. It runs
// under the mentor's exclusivity guarantee; the store bumps Version after
// it returns.
type ApplyFunc func(prev model.Reputation) (model.Reputation, error)

// Store provides read/write access to derived reputation state.
type Store interface {
	// Apply runs fn under a per-mentor lock so that concurrent
	// read-compute-write cycles for one mentor serialize instead of
	// overwriting each other's work. Mentors are fully independent; no
	// cross-mentor coordination happens.
	Apply(ctx context.Context, mentorID string, fn ApplyFunc) (model.Reputation, error)

	// Reputation returns the mentor's current derived record.
	// Returns ErrNotFound if the mentor has never been recomputed.
	Reputation(ctx context.Context, mentorID string) (model.Reputation, error)

	// Top returns the top-n mentors ordered by rating desc.
	Top(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of mentors with a derived record.
	Count(ctx context.Context) int
}
