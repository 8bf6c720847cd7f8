// Package agent runs conversation turns against the language model and
// mediates between backend canvas tools and UI-executed frontend tools.
//
// A turn either completes with final text or pauses on a frontend tool
// call (selectAngle, generateStoryAndConfirm). Paused turns park the call
// on the session as a PendingCall; Resume feeds the user's decision back
// and continues the same generation.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/storyforge/storyforge/internal/canvas"
	"github.com/storyforge/storyforge/internal/log"
	"github.com/storyforge/storyforge/internal/session"
	"github.com/storyforge/storyforge/internal/tools"
)

var (
	// ErrDecisionPending is returned when a chat turn arrives while a
	// frontend tool call is still waiting for the user's decision.
	ErrDecisionPending = errors.New("a frontend tool call is awaiting a decision")

	// ErrNoPendingCall is returned by Resume when there is nothing to
	// resolve.
	ErrNoPendingCall = errors.New("no pending frontend tool call")
)

// Config configures the agent. Genkit, Sessions and Logger are required.
type Config struct {
	Genkit   *genkit.Genkit
	Sessions *session.Store
	Logger   log.Logger

	// Tools are the registered tool references sent with every request
	// (canvas tools plus any external registry tools).
	Tools []ai.Tool

	// ModelName is the provider-qualified model, e.g. "openai/gpt-4.1".
	ModelName string

	// MaxTurns bounds the tool-calling loop within one generation.
	MaxTurns int

	Retry             RetryConfig
	CircuitBreaker    CircuitBreakerConfig
	RequestsPerSecond float64 // 0 disables rate limiting
}

// Agent is the conversational story agent.
type Agent struct {
	g        *genkit.Genkit
	sessions *session.Store
	logger   log.Logger

	toolRefs  []ai.ToolRef
	toolNames string
	modelName string
	maxTurns  int

	retryConfig    RetryConfig
	circuitBreaker *CircuitBreaker
	rateLimiter    *rate.Limiter
}

// Response is the outcome of one Execute or Resume call.
type Response struct {
	// Text is the model's final text, empty while a call is pending.
	Text string

	// Pending is set when the turn paused on a frontend tool call.
	Pending *session.PendingCall

	// Snapshot is a deep copy of the canvas after the turn, for the UI.
	Snapshot *canvas.Document
}

// Decision is the user's resolution of a pending frontend tool call.
type Decision struct {
	// Approved applies the pending call; false rejects it.
	Approved bool

	// Angle is the chosen angle for a selectAngle call.
	Angle string

	// Reason optionally explains a rejection to the model.
	Reason string
}

// New creates an agent.
func New(cfg Config) (*Agent, error) {
	if cfg.Genkit == nil {
		return nil, fmt.Errorf("genkit instance is required")
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 8
	}
	if cfg.Retry == (RetryConfig{}) {
		cfg.Retry = DefaultRetryConfig()
	}

	toolRefs := make([]ai.ToolRef, len(cfg.Tools))
	names := make([]string, len(cfg.Tools))
	for i, t := range cfg.Tools {
		toolRefs[i] = t
		names[i] = t.Name()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	a := &Agent{
		g:              cfg.Genkit,
		sessions:       cfg.Sessions,
		logger:         cfg.Logger,
		toolRefs:       toolRefs,
		toolNames:      strings.Join(names, ", "),
		modelName:      cfg.ModelName,
		maxTurns:       cfg.MaxTurns,
		retryConfig:    cfg.Retry,
		circuitBreaker: NewCircuitBreaker(cfg.CircuitBreaker),
		rateLimiter:    limiter,
	}

	a.logger.Info("agent initialized",
		"totalTools", len(cfg.Tools),
		"model", a.modelName,
		"maxTurns", a.maxTurns,
	)
	return a, nil
}

// Execute runs one chat turn for the session. The session's turn lock is
// held for the whole call, so concurrent requests for the same session
// queue up.
func (a *Agent) Execute(ctx context.Context, sessionID uuid.UUID, input string) (*Response, error) {
	sess, release, err := a.sessions.Acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	if sess.Pending != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecisionPending, sess.Pending.Tool)
	}

	ctx = session.NewContext(ctx, sess)

	userMsg := ai.NewUserMessage(ai.NewTextPart(input))
	messages := append(deepCopyMessages(sess.History), userMsg)

	resp, err := a.generate(ctx, messages)
	if err != nil {
		return nil, err
	}

	sess.History = append(sess.History, userMsg)
	return a.finishTurn(sess, resp)
}

// Resume resolves the session's pending frontend tool call and continues
// the interrupted generation with the user's decision.
func (a *Agent) Resume(ctx context.Context, sessionID uuid.UUID, decision Decision) (*Response, error) {
	sess, release, err := a.sessions.Acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	pending := sess.Pending
	if pending == nil {
		return nil, ErrNoPendingCall
	}

	ctx = session.NewContext(ctx, sess)
	output := a.applyDecision(sess, pending, decision)

	toolMsg := toolResponseMessage(pending, output)
	messages := append(deepCopyMessages(sess.History),
		deepCopyMessage(pending.Message), toolMsg)

	resp, err := a.generate(ctx, messages)
	if err != nil {
		return nil, err
	}

	sess.Pending = nil
	sess.History = append(sess.History, pending.Message, toolMsg)
	return a.finishTurn(sess, resp)
}

// applyDecision turns the user's decision into the tool output fed back to
// the model, applying canvas writes where the decision calls for them.
func (a *Agent) applyDecision(sess *session.Session, pending *session.PendingCall, decision Decision) any {
	if !decision.Approved {
		reason := decision.Reason
		if reason == "" {
			reason = "no reason given"
		}
		a.logger.Info("frontend tool call rejected",
			"session_id", sess.ID, "tool", pending.Tool, "reason", reason)
		return map[string]any{
			"status":  "rejected",
			"message": "User rejected: " + reason,
		}
	}

	switch pending.Tool {
	case "selectAngle":
		a.logger.Info("angle selected", "session_id", sess.ID, "angle", decision.Angle)
		return map[string]any{
			"status": "selected",
			"angle":  decision.Angle,
		}

	case "generateStoryAndConfirm":
		if !sess.AnglesProposed {
			a.logger.Warn("story confirmed without prior angle selection",
				"session_id", sess.ID)
		}
		story, title, description := pending.StoryArgs()
		sess.Canvas.ConfirmStory(story, title, description)
		a.logger.Info("story confirmed", "session_id", sess.ID, "title", title)
		return map[string]any{
			"status":  "confirmed",
			"message": "User confirmed; story, title and description written to the canvas.",
		}
	}

	return map[string]any{
		"status":  "approved",
		"message": "User approved this operation",
	}
}

// finishTurn records the model response on the session and builds the
// caller-facing result, detecting a fresh frontend interrupt.
func (a *Agent) finishTurn(sess *session.Session, resp *ai.ModelResponse) (*Response, error) {
	if resp.FinishReason == ai.FinishReasonInterrupted {
		part := findInterrupt(resp.Message)
		pending := pendingFromInterrupt(resp.Message, part)
		if pending == nil {
			return nil, fmt.Errorf("interrupted generation without tool request")
		}
		if !tools.IsFrontendTool(pending.Tool) {
			a.logger.Warn("interrupt from non-frontend tool", "tool", pending.Tool)
		}
		if pending.Tool == "selectAngle" {
			sess.AnglesProposed = true
		}
		sess.Pending = pending
		a.logger.Debug("turn paused on frontend tool",
			"session_id", sess.ID, "tool", pending.Tool)
		return &Response{
			Pending:  pending,
			Snapshot: sess.Canvas.Snapshot(),
		}, nil
	}

	sess.History = append(sess.History, resp.Message)
	return &Response{
		Text:     resp.Text(),
		Snapshot: sess.Canvas.Snapshot(),
	}, nil
}

// generate performs one guarded model call.
func (a *Agent) generate(ctx context.Context, messages []*ai.Message) (*ai.ModelResponse, error) {
	opts := []ai.GenerateOption{
		ai.WithSystem(systemPrompt),
		ai.WithMessages(messages...),
		ai.WithTools(a.toolRefs...),
		ai.WithMaxTurns(a.maxTurns),
	}
	if a.modelName != "" {
		opts = append(opts, ai.WithModelName(a.modelName))
	}

	a.logger.Debug("generating",
		"toolCount", len(a.toolRefs),
		"tools", a.toolNames,
		"messages", len(messages),
	)

	if err := a.circuitBreaker.Allow(); err != nil {
		a.logger.Warn("circuit breaker is open, rejecting request",
			"state", a.circuitBreaker.State().String())
		return nil, fmt.Errorf("service unavailable: %w", err)
	}

	resp, err := a.generateWithRetry(ctx, opts)
	if err != nil {
		a.circuitBreaker.Failure()
		return nil, err
	}
	a.circuitBreaker.Success()
	return resp, nil
}
