package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/festa/internal/adapters/repository"
)

// VerdictDependencies defines the interface for verdict lookups.
type VerdictDependencies interface {
	Rank(ctx context.Context, name string) (Entry, error)
}

// VerdictHandler handles per-event verdict requests.
type VerdictHandler struct {
	deps VerdictDependencies
}

// NewVerdictHandler creates a new verdict handler.
func NewVerdictHandler(deps VerdictDependencies) *VerdictHandler {
	return &VerdictHandler{deps: deps}
}

// HandleGetVerdict handles GET /verdict/{name} requests.
func (h *VerdictHandler) HandleGetVerdict(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_verdict"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/verdict/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entry, err := h.deps.Rank(r.Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
