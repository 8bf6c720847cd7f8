package tools

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// SetNoteField1Input is the input for the setNoteField1 tool.
type SetNoteField1Input struct {
	Value  string `json:"value" jsonschema:"description=New content for note.data.field1."`
	ItemID string `json:"itemId" jsonschema:"description=Target note id."`
}

// AppendNoteField1Input is the input for the appendNoteField1 tool.
type AppendNoteField1Input struct {
	Value       string `json:"value" jsonschema:"description=Text to append to note.data.field1."`
	ItemID      string `json:"itemId" jsonschema:"description=Target note id."`
	WithNewline *bool  `json:"withNewline,omitempty" jsonschema:"description=Prefix with newline if true; defaults to false."`
}

// ClearNoteField1Input is the input for the clearNoteField1 tool.
type ClearNoteField1Input struct {
	ItemID string `json:"itemId" jsonschema:"description=Target note id."`
}

// SetNoteField1 overwrites a note's content.
func (h *Handler) SetNoteField1(ctx context.Context, in SetNoteField1Input) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.SetNoteField1(in.ItemID, in.Value); err != nil {
		return "", err
	}
	return fmt.Sprintf("updated note %s", in.ItemID), nil
}

// AppendNoteField1 appends text to a note.
func (h *Handler) AppendNoteField1(ctx context.Context, in AppendNoteField1Input) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	withNewline := in.WithNewline != nil && *in.WithNewline
	if err := doc.AppendNoteField1(in.ItemID, in.Value, withNewline); err != nil {
		return "", err
	}
	return fmt.Sprintf("appended to note %s", in.ItemID), nil
}

// ClearNoteField1 clears a note's content.
func (h *Handler) ClearNoteField1(ctx context.Context, in ClearNoteField1Input) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.ClearNoteField1(in.ItemID); err != nil {
		return "", err
	}
	return fmt.Sprintf("cleared note %s", in.ItemID), nil
}

// registerNoteTools registers note content tools.
func registerNoteTools(g *genkit.Genkit, h *Handler) {
	genkit.DefineTool(g, "setNoteField1",
		"Overwrite a note's content (note.data.field1).",
		func(tc *ai.ToolContext, in SetNoteField1Input) (string, error) {
			out, err := h.SetNoteField1(tc.Context, in)
			return h.result("setNoteField1", out, err)
		})

	genkit.DefineTool(g, "appendNoteField1",
		"Append text to a note's content, optionally prefixed with a newline.",
		func(tc *ai.ToolContext, in AppendNoteField1Input) (string, error) {
			out, err := h.AppendNoteField1(tc.Context, in)
			return h.result("appendNoteField1", out, err)
		})

	genkit.DefineTool(g, "clearNoteField1",
		"Clear a note's content.",
		func(tc *ai.ToolContext, in ClearNoteField1Input) (string, error) {
			out, err := h.ClearNoteField1(tc.Context, in)
			return h.result("clearNoteField1", out, err)
		})
}
