// Package model contains domain models passed between layers.
package model

import "time"

// Review is a single peer review left by a user for a mentor.
// Sub-scores are on the closed 1..6 scale; CreatedAt is immutable once set.
type Review struct {
	ReviewID      string    `json:"review_id"`
	MentorID      string    `json:"mentor_id"`
	ReviewerID    string    `json:"reviewer_id"`
	Friendliness  int       `json:"friendliness"`
	Knowledge     int       `json:"knowledge"`
	Communication int       `json:"communication"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProfileSnapshot carries the externally owned mentor attributes the
// engine reads: account age for tenure, bio and avatar for badges.
type ProfileSnapshot struct {
	MentorID  string    `json:"mentor_id"`
	CreatedAt time.Time `json:"created_at"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

// SignalBundle holds the auxiliary behavioral counts for one scoring run.
// It is fetched fresh on every recomputation and never persisted.
type SignalBundle struct {
	SessionCount    int  `json:"session_count"`
	MessageCount    int  `json:"message_count"`
	ProfileComplete bool `json:"profile_complete"`
}

// Badge names a non-exclusive achievement derived from rating, level and
// profile attributes.
type Badge string

// Reputation is the derived state recomputed from scratch on every review
// write. Version counts writes; readers can detect stale snapshots with it.
type Reputation struct {
	MentorID     string    `json:"mentor_id"`
	Rating       float64   `json:"rating"`
	TotalReviews int       `json:"total_reviews"`
	Level        int       `json:"level"`
	LevelTitle   string    `json:"level_title"`
	Badges       []Badge   `json:"badges"`
	Version      int64     `json:"version"`
	ComputedAt   time.Time `json:"computed_at"`
}

// HasBadge reports whether the badge set contains b. Badges form a set;
// order carries no meaning.
func (r Reputation) HasBadge(b Badge) bool {
	for _, have := range r.Badges {
		if have == b {
			return true
		}
	}
	return false
}

// SuspiciousReview pairs a flagged review with the advisory reasons the
// fraud heuristics produced for it. Flags never feed the rating.
type SuspiciousReview struct {
	ReviewID   string    `json:"review_id"`
	ReviewerID string    `json:"reviewer_id"`
	CreatedAt  time.Time `json:"created_at"`
	Reasons    []string  `json:"reasons"`
}

// RecomputeEvent is the unit queued for asynchronous recomputation after a
// review has been persisted.
type RecomputeEvent struct {
	EventID  string    // unique id for idempotency
	MentorID string    // mentor whose profile must be recomputed
	TS       time.Time // submission timestamp
}
