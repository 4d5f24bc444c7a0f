// Package source declares the collaborator boundaries the scoring engine
// reads from: the mentor's review history and the auxiliary behavioral
// signals. The engine never persists through these interfaces.
package source

import (
	"context"

	"github.com/okian/mentorank/internal/domain/model"
)

// ReviewSource supplies and accepts mentor reviews. A reviewer holds at
// most one active review per mentor; resubmission updates the existing
// review in place and keeps its original creation timestamp.
type ReviewSource interface {
	// ReviewsForMentor returns the mentor's full review list in creation
	// order, oldest first.
	ReviewsForMentor(ctx context.Context, mentorID string) ([]model.Review, error)

	// Upsert creates or updates the reviewer's review for the mentor and
	// returns the stored review.
	Upsert(ctx context.Context, review model.Review) (model.Review, error)
}

// SignalSource supplies the auxiliary counts and profile attributes for one
// scoring run. Any fetch failure must abort the whole recomputation; the
// engine never runs on silently defaulted signals.
type SignalSource interface {
	SessionCount(ctx context.Context, mentorID string) (int, error)
	MessageCount(ctx context.Context, mentorID string) (int, error)
	ProfileComplete(ctx context.Context, mentorID string) (bool, error)

	// ProfileSnapshot returns the externally owned mentor attributes:
	// account creation instant, bio and avatar.
	ProfileSnapshot(ctx context.Context, mentorID string) (model.ProfileSnapshot, error)
}
