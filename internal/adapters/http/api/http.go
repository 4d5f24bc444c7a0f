// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	repository "github.com/okian/mentorank/internal/adapters/repository"
	"github.com/okian/mentorank/internal/domain/dedupe"
	"github.com/okian/mentorank/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// SubmitReview persists a review and returns the stored copy.
	SubmitReview(ctx context.Context, review model.Review) (model.Review, error)

	// Enqueue pushes a recompute event for async processing.
	// Returns false on backpressure.
	Enqueue(ctx context.Context, mentorID string) bool

	// Read operations expose derived reputation data.
	Top(ctx context.Context, n int) ([]Entry, error)
	Reputation(ctx context.Context, mentorID string) (model.Reputation, error)
	SuspiciousReviews(ctx context.Context, mentorID string) ([]model.SuspiciousReview, error)

	// MaxTopLimit reports the configured cap for top-mentor queries.
	MaxTopLimit() int
}

// Entry mirrors the read shape returned by top-mentor queries.
type Entry = repository.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	reviewsHandler *ReviewsHandler
	mentorsHandler *MentorsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		reviewsHandler: NewReviewsHandler(deps),
		mentorsHandler: NewMentorsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/reviews", MetricsMiddleware(s.reviewsHandler.HandlePostReview, "reviews"))
	mux.HandleFunc("/mentors", MetricsMiddleware(s.mentorsHandler.HandleGetTop, "mentors"))
	mux.HandleFunc("/mentors/", MetricsMiddleware(s.mentorsHandler.HandleMentorSubresource, "mentor"))
}

// reviewRequest mirrors the wire schema for POST /reviews.
type reviewRequest struct {
	ReviewID      string `json:"review_id,omitempty"`
	MentorID      string `json:"mentor_id"`
	ReviewerID    string `json:"reviewer_id"`
	Friendliness  int    `json:"friendliness"`
	Knowledge     int    `json:"knowledge"`
	Communication int    `json:"communication"`
	Comment       string `json:"comment,omitempty"`
	TS            string `json:"ts,omitempty"`
}

func (r reviewRequest) validate() error {
	switch {
	case strings.TrimSpace(r.MentorID) == "":
		return errors.New("missing mentor_id")
	case strings.TrimSpace(r.ReviewerID) == "":
		return errors.New("missing reviewer_id")
	}
	for _, score := range []struct {
		name  string
		value int
	}{
		{"friendliness", r.Friendliness},
		{"knowledge", r.Knowledge},
		{"communication", r.Communication},
	} {
		if score.value < 1 || score.value > 6 {
			return fmt.Errorf("%s must be between 1 and 6", score.name)
		}
	}
	if r.TS != "" {
		if _, err := time.Parse(time.RFC3339, r.TS); err != nil {
			return errors.New("invalid ts; must be RFC3339")
		}
	}
	return nil
}

// submissionKey derives the idempotency key for a review submission.
func (r reviewRequest) submissionKey() string {
	if r.ReviewID != "" {
		return r.ReviewID
	}
	return fmt.Sprintf("%s_%s_%d_%d_%d_%s",
		r.MentorID, r.ReviewerID, r.Friendliness, r.Knowledge, r.Communication, r.TS)
}

func (r reviewRequest) toModel() model.Review {
	review := model.Review{
		ReviewID:      r.ReviewID,
		MentorID:      r.MentorID,
		ReviewerID:    r.ReviewerID,
		Friendliness:  r.Friendliness,
		Knowledge:     r.Knowledge,
		Communication: r.Communication,
		Comment:       r.Comment,
	}
	if r.TS != "" {
		// Already validated as RFC3339.
		review.CreatedAt, _ = time.Parse(time.RFC3339, r.TS)
	}
	return review
}

type ackResponse struct {
	Status    string `json:"status"`
	ReviewID  string `json:"review_id,omitempty"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
