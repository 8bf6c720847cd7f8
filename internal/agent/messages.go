package agent

import "github.com/firebase/genkit/go/ai"

// deepCopyMessages creates independent copies of Message and Part structs.
//
// Genkit's renderMessages() modifies msg.Content in-place, so concurrent
// generations sharing message objects would race. Copying each message (not
// just the slice) keeps session history safe to hand to Generate.
func deepCopyMessages(msgs []*ai.Message) []*ai.Message {
	if msgs == nil {
		return nil
	}
	copied := make([]*ai.Message, len(msgs))
	for i, msg := range msgs {
		copied[i] = deepCopyMessage(msg)
	}
	return copied
}

func deepCopyMessage(msg *ai.Message) *ai.Message {
	if msg == nil {
		return nil
	}
	parts := make([]*ai.Part, len(msg.Content))
	for j, part := range msg.Content {
		parts[j] = deepCopyPart(part)
	}
	return &ai.Message{
		Role:     msg.Role,
		Content:  parts,
		Metadata: shallowCopyMap(msg.Metadata),
	}
}

// deepCopyPart copies one part. ToolRequest.Input and ToolResponse.Output
// are copied by reference: Genkit only mutates the Content slice, not the
// tool payloads.
func deepCopyPart(p *ai.Part) *ai.Part {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Metadata = shallowCopyMap(p.Metadata)
	if p.ToolRequest != nil {
		tr := *p.ToolRequest
		cp.ToolRequest = &tr
	}
	if p.ToolResponse != nil {
		tr := *p.ToolResponse
		cp.ToolResponse = &tr
	}
	return &cp
}

func shallowCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
