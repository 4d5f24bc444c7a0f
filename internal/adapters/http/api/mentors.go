// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/mentorank/internal/domain/model"
)

// MentorDependencies defines the interface for reputation read operations.
type MentorDependencies interface {
	Top(ctx context.Context, n int) ([]Entry, error)
	Reputation(ctx context.Context, mentorID string) (model.Reputation, error)
	SuspiciousReviews(ctx context.Context, mentorID string) ([]model.SuspiciousReview, error)
	MaxTopLimit() int
}

// MentorsHandler handles reputation read requests.
type MentorsHandler struct {
	deps MentorDependencies
}

// NewMentorsHandler creates a new mentors handler.
func NewMentorsHandler(deps MentorDependencies) *MentorsHandler {
	return &MentorsHandler{deps: deps}
}

// HandleGetTop handles GET /mentors?limit=N requests.
func (h *MentorsHandler) HandleGetTop(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_top_mentors"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if max := h.deps.MaxTopLimit(); n > max {
		n = max
	}
	entries, err := h.deps.Top(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleMentorSubresource routes GET /mentors/{mentor_id}/reputation and
// GET /mentors/{mentor_id}/suspicion requests.
func (h *MentorsHandler) HandleMentorSubresource(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_mentor"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameters after /mentors/
	path := strings.TrimPrefix(r.URL.Path, "/mentors/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	mentorID := parts[0]

	switch parts[1] {
	case "reputation":
		h.handleReputation(w, r, mentorID)
	case "suspicion":
		h.handleSuspicion(w, r, mentorID)
	default:
		http.NotFound(w, r)
	}
}

func (h *MentorsHandler) handleReputation(w http.ResponseWriter, r *http.Request, mentorID string) {
	const op = "api.get_reputation"
	rep, err := h.deps.Reputation(r.Context(), mentorID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h *MentorsHandler) handleSuspicion(w http.ResponseWriter, r *http.Request, mentorID string) {
	const op = "api.get_suspicion"
	flagged, err := h.deps.SuspiciousReviews(r.Context(), mentorID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, flagged)
}
