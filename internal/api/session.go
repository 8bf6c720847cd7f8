package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/storyforge/storyforge/internal/log"
	"github.com/storyforge/storyforge/internal/session"
)

type sessionHandler struct {
	store  *session.Store
	logger log.Logger
}

type sessionView struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func viewOf(s *session.Session) sessionView {
	return sessionView{ID: s.ID, CreatedAt: s.CreatedAt}
}

// parseID extracts and validates the {id} path value.
func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

func (h *sessionHandler) create(w http.ResponseWriter, r *http.Request) {
	sess := h.store.Create()
	writeJSON(w, http.StatusCreated, viewOf(sess), h.logger)
}

func (h *sessionHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions := h.store.List()
	views := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, viewOf(s))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": views}, h.logger)
}

func (h *sessionHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "session id must be a UUID", h.logger)
		return
	}
	sess, err := h.store.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "session not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess), h.logger)
}

func (h *sessionHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "session id must be a UUID", h.logger)
		return
	}
	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "session not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "delete failed", h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
