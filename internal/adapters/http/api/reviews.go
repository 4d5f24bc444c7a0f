// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/mentorank/internal/domain/dedupe"
	"github.com/okian/mentorank/internal/domain/model"
)

// ReviewDependencies defines the interface for review submission dependencies.
type ReviewDependencies interface {
	dedupe.Deduper
	SubmitReview(ctx context.Context, review model.Review) (model.Review, error)
	Enqueue(ctx context.Context, mentorID string) bool
}

// ReviewsHandler handles review submission requests.
type ReviewsHandler struct {
	deps ReviewDependencies
}

// NewReviewsHandler creates a new reviews handler.
func NewReviewsHandler(deps ReviewDependencies) *ReviewsHandler {
	return &ReviewsHandler{deps: deps}
}

// HandlePostReview handles POST /reviews requests.
func (h *ReviewsHandler) HandlePostReview(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_review"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check - mark as seen first
	key := req.submissionKey()
	if h.deps.SeenAndRecord(r.Context(), key) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	stored, err := h.deps.SubmitReview(r.Context(), req.toModel())
	if err != nil {
		// Rollback the "seen" status so the client can retry
		h.deps.Unrecord(r.Context(), key)
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	// Try to enqueue the recompute for async processing
	if ok := h.deps.Enqueue(r.Context(), stored.MentorID); !ok {
		// Rollback the "seen" status since enqueue failed; the upsert is
		// idempotent so a retry converges to the same stored review.
		h.deps.Unrecord(r.Context(), key)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{
		Status:   "accepted",
		ReviewID: stored.ReviewID,
	})
}
