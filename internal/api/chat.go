package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/storyforge/storyforge/internal/agent"
	"github.com/storyforge/storyforge/internal/canvas"
	"github.com/storyforge/storyforge/internal/log"
	"github.com/storyforge/storyforge/internal/session"
)

const maxRequestBody = 1 << 20

type chatHandler struct {
	agent  *agent.Agent
	store  *session.Store
	logger log.Logger
}

type chatRequest struct {
	Message string `json:"message"`
}

type resumeRequest struct {
	Approved bool   `json:"approved"`
	Angle    string `json:"angle,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// pendingView is the wire form of a pending frontend tool call.
type pendingView struct {
	Tool  string         `json:"tool"`
	Input map[string]any `json:"input"`
}

type turnResponse struct {
	Text    string           `json:"text,omitempty"`
	Pending *pendingView     `json:"pending,omitempty"`
	Canvas  *canvas.Document `json:"canvas"`
}

func turnView(resp *agent.Response) turnResponse {
	out := turnResponse{Text: resp.Text, Canvas: resp.Snapshot}
	if resp.Pending != nil {
		out.Pending = &pendingView{Tool: resp.Pending.Tool, Input: resp.Pending.Input}
	}
	return out
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any, logger log.Logger) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "malformed JSON request body", logger)
		return false
	}
	return true
}

// send runs one chat turn.
func (h *chatHandler) send(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "session id must be a UUID", h.logger)
		return
	}

	var req chatRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "empty_message", "message is required", h.logger)
		return
	}

	resp, err := h.agent.Execute(r.Context(), id, req.Message)
	if err != nil {
		h.writeAgentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turnView(resp), h.logger)
}

// resume resolves a pending frontend tool call.
func (h *chatHandler) resume(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "session id must be a UUID", h.logger)
		return
	}

	var req resumeRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	resp, err := h.agent.Resume(r.Context(), id, agent.Decision{
		Approved: req.Approved,
		Angle:    req.Angle,
		Reason:   req.Reason,
	})
	if err != nil {
		h.writeAgentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turnView(resp), h.logger)
}

// canvas serves a snapshot of the session's document.
func (h *chatHandler) canvas(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "session id must be a UUID", h.logger)
		return
	}
	sess, release, err := h.store.Acquire(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "session not found", h.logger)
		return
	}
	snapshot := sess.Canvas.Snapshot()
	release()
	writeJSON(w, http.StatusOK, snapshot, h.logger)
}

func (h *chatHandler) writeAgentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "session not found", h.logger)
	case errors.Is(err, agent.ErrDecisionPending):
		writeError(w, http.StatusConflict, "decision_pending",
			"a frontend tool call is awaiting a decision", h.logger)
	case errors.Is(err, agent.ErrNoPendingCall):
		writeError(w, http.StatusConflict, "no_pending_call",
			"no frontend tool call to resolve", h.logger)
	default:
		h.logger.Error("agent turn failed", "error", err)
		writeError(w, http.StatusBadGateway, "agent_error", "agent turn failed", h.logger)
	}
}
