// Package session holds per-conversation state: the canvas document, the
// message history, and the bookkeeping for the story flow. Sessions are
// fully isolated from each other; a session's canvas dies with it.
package session

import (
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/google/uuid"

	"github.com/storyforge/storyforge/internal/canvas"
)

// Session is the state of one conversation.
//
// All fields except ID and CreatedAt must only be touched while holding
// the turn lock (see Store.Acquire). The dispatcher acquires the lock for
// a whole turn, so one turn's mutations fully commit before the next turn
// observes the document.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	// Canvas is the shared document for this conversation.
	Canvas *canvas.Document

	// History is the conversation so far, in genkit message form.
	History []*ai.Message

	// AnglesProposed records that the agent has offered story angles via
	// selectAngle. A story confirmation without it is logged as an
	// ordering violation but still applied.
	AnglesProposed bool

	// Pending is the frontend tool call waiting for a user decision, if
	// any. While set, chat turns are rejected until Resume resolves it.
	Pending *PendingCall
}

// PendingCall is a UI-mediated tool invocation that the core forwards
// instead of executing. The external UI (or the CLI acting as one)
// resolves it and the agent resumes with the outcome.
type PendingCall struct {
	// Tool is the frontend tool name ("selectAngle" or
	// "generateStoryAndConfirm").
	Tool string

	// Input is the model-supplied argument object.
	Input map[string]any

	// Ref correlates the eventual tool response with the request.
	Ref string

	// Message is the interrupted model message; it is replayed together
	// with the tool response when generation resumes.
	Message *ai.Message
}

// StoryArgs extracts the tri-field payload of a generateStoryAndConfirm
// call. Missing fields come back empty.
func (p *PendingCall) StoryArgs() (story, title, description string) {
	story, _ = p.Input["story"].(string)
	title, _ = p.Input["title"].(string)
	description, _ = p.Input["description"].(string)
	return story, title, description
}

// Angles extracts the proposed angle list of a selectAngle call.
func (p *PendingCall) Angles() []string {
	raw, ok := p.Input["angles"].([]any)
	if !ok {
		return nil
	}
	angles := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			angles = append(angles, s)
		}
	}
	return angles
}
