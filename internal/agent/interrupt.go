package agent

import (
	"github.com/firebase/genkit/go/ai"

	"github.com/storyforge/storyforge/internal/session"
)

// findInterrupt returns the tool request part that interrupted generation.
// Genkit marks the interrupting part with "interrupt" metadata; if the
// marker is missing the first unexecuted tool request is taken.
func findInterrupt(msg *ai.Message) *ai.Part {
	if msg == nil {
		return nil
	}
	var first *ai.Part
	for _, p := range msg.Content {
		if p.ToolRequest == nil {
			continue
		}
		if first == nil {
			first = p
		}
		if _, ok := p.Metadata["interrupt"]; ok {
			return p
		}
	}
	return first
}

// pendingFromInterrupt converts an interrupted tool request into the
// pending call surfaced to the UI.
func pendingFromInterrupt(msg *ai.Message, part *ai.Part) *session.PendingCall {
	if part == nil || part.ToolRequest == nil {
		return nil
	}
	input, _ := part.ToolRequest.Input.(map[string]any)
	return &session.PendingCall{
		Tool:    part.ToolRequest.Name,
		Input:   input,
		Ref:     part.ToolRequest.Ref,
		Message: msg,
	}
}

// toolResponseMessage builds the tool message that answers a pending call
// so generation can resume. The Ref is copied for request/response
// correlation and the part carries the interruptResponse marker Genkit
// expects, matching tool.Respond().
func toolResponseMessage(pending *session.PendingCall, output any) *ai.Message {
	part := ai.NewToolResponsePart(&ai.ToolResponse{
		Name:   pending.Tool,
		Ref:    pending.Ref,
		Output: output,
	})
	part.Metadata = map[string]any{
		"interruptResponse": true,
	}
	return &ai.Message{Role: ai.RoleTool, Content: []*ai.Part{part}}
}
