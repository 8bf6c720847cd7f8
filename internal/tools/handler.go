// Package tools registers the canvas mutation operations as Genkit tools.
//
// # Architecture
//
//   - Handler methods hold the business logic and are directly testable.
//   - Genkit closures are thin adapters for parameter conversion.
//   - toolNames in register.go is the single source of truth for names.
//
// # Error policy
//
// A failed operation never fails the model turn. Handler errors are turned
// into a textual "error: ..." tool result so the model can read the reason
// and self-correct. Only a missing session (a dispatcher bug) surfaces as
// a Go error.
//
// # Frontend tools
//
// selectAngle and generateStoryAndConfirm (frontend.go) publish a schema
// to the model but never execute here: their handlers interrupt generation
// and the dispatcher forwards the call to the external UI.
package tools

import (
	"context"
	"errors"

	"github.com/storyforge/storyforge/internal/canvas"
	"github.com/storyforge/storyforge/internal/log"
	"github.com/storyforge/storyforge/internal/session"
)

// ErrNoSession indicates a tool ran outside a conversation turn. This is a
// dispatcher bug, not a model mistake, so it is not echoed to the model.
var ErrNoSession = errors.New("no session in context")

// Handler implements the canvas operations behind the registered tools.
type Handler struct {
	logger log.Logger
}

// NewHandler creates a tool handler.
func NewHandler(logger log.Logger) *Handler {
	return &Handler{logger: logger}
}

// document resolves the current conversation's canvas from the context.
func (h *Handler) document(ctx context.Context) (*canvas.Document, error) {
	sess := session.FromContext(ctx)
	if sess == nil {
		return nil, ErrNoSession
	}
	return sess.Canvas, nil
}

// result converts an operation outcome into the tool result string fed
// back to the model. Operation failures become readable error text; the
// turn goes on either way.
func (h *Handler) result(name, msg string, err error) (string, error) {
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return "", err
		}
		h.logger.Warn("canvas operation rejected", "tool", name, "error", err)
		return "error: " + err.Error(), nil
	}
	return msg, nil
}
