package agent

import (
	"testing"

	"github.com/firebase/genkit/go/ai"
)

func interruptedMessage() *ai.Message {
	part := &ai.Part{
		Kind: ai.PartToolRequest,
		ToolRequest: &ai.ToolRequest{
			Name: "selectAngle",
			Ref:  "call-1",
			Input: map[string]any{
				"angles": []any{"Hope", "Revenge"},
			},
		},
	}
	part.Metadata = map[string]any{"interrupt": true}
	return &ai.Message{
		Role:    ai.RoleModel,
		Content: []*ai.Part{ai.NewTextPart("choosing an angle"), part},
	}
}

func TestFindInterrupt(t *testing.T) {
	msg := interruptedMessage()
	part := findInterrupt(msg)
	if part == nil || part.ToolRequest == nil {
		t.Fatal("interrupt part not found")
	}
	if part.ToolRequest.Name != "selectAngle" {
		t.Errorf("name = %q", part.ToolRequest.Name)
	}

	t.Run("falls back to first tool request", func(t *testing.T) {
		plain := &ai.Message{
			Role: ai.RoleModel,
			Content: []*ai.Part{{
				Kind:        ai.PartToolRequest,
				ToolRequest: &ai.ToolRequest{Name: "generateStoryAndConfirm"},
			}},
		}
		got := findInterrupt(plain)
		if got == nil || got.ToolRequest.Name != "generateStoryAndConfirm" {
			t.Errorf("fallback part = %+v", got)
		}
	})

	t.Run("nil for text-only message", func(t *testing.T) {
		textOnly := ai.NewModelMessage(ai.NewTextPart("done"))
		if findInterrupt(textOnly) != nil {
			t.Error("found interrupt in text-only message")
		}
	})
}

func TestPendingFromInterrupt(t *testing.T) {
	msg := interruptedMessage()
	pending := pendingFromInterrupt(msg, findInterrupt(msg))
	if pending == nil {
		t.Fatal("nil pending")
	}
	if pending.Tool != "selectAngle" || pending.Ref != "call-1" {
		t.Errorf("pending = %+v", pending)
	}
	if angles := pending.Angles(); len(angles) != 2 || angles[0] != "Hope" {
		t.Errorf("angles = %v", angles)
	}
	if pending.Message != msg {
		t.Error("interrupted message not carried")
	}
}

func TestToolResponseMessage(t *testing.T) {
	msg := interruptedMessage()
	pending := pendingFromInterrupt(msg, findInterrupt(msg))

	out := map[string]any{"status": "selected", "angle": "Hope"}
	respMsg := toolResponseMessage(pending, out)

	if respMsg.Role != ai.RoleTool {
		t.Errorf("role = %s", respMsg.Role)
	}
	if len(respMsg.Content) != 1 || respMsg.Content[0].ToolResponse == nil {
		t.Fatalf("content = %+v", respMsg.Content)
	}
	tr := respMsg.Content[0].ToolResponse
	if tr.Ref != "call-1" {
		t.Errorf("ref = %q, want request ref copied", tr.Ref)
	}
	if tr.Name != "selectAngle" {
		t.Errorf("name = %q", tr.Name)
	}
	if v, ok := respMsg.Content[0].Metadata["interruptResponse"].(bool); !ok || !v {
		t.Error("interruptResponse metadata missing")
	}
}

func TestDeepCopyMessages(t *testing.T) {
	orig := []*ai.Message{interruptedMessage()}
	copied := deepCopyMessages(orig)

	copied[0].Content[0] = ai.NewTextPart("mutated")
	if orig[0].Content[0].Text == "mutated" {
		t.Error("copy shares the content slice")
	}

	copied2 := deepCopyMessages(nil)
	if copied2 != nil {
		t.Error("nil input should stay nil")
	}
}
