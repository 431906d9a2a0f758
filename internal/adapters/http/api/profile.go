package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/festa/internal/domain/model"
)

// ProfileDependencies defines the interface for taste-profile updates.
type ProfileDependencies interface {
	AppendAttended(ctx context.Context, e model.Event)
}

// ProfileHandler handles attended-event submissions.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandlePostAttended handles POST /profile/events requests. Attended
// events feed the taste profile used for all future scoring.
func (h *ProfileHandler) HandlePostAttended(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_attended"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	e, err := req.event()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	h.deps.AppendAttended(r.Context(), e)
	writeJSON(w, http.StatusCreated, ackResponse{Status: "recorded"})
}
