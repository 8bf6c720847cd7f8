package tools

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// SetEntityField1Input is the input for the setEntityField1 tool.
type SetEntityField1Input struct {
	Value  string `json:"value" jsonschema:"description=New value for entity.data.field1."`
	ItemID string `json:"itemId" jsonschema:"description=Entity id."`
}

// SetEntityField2Input is the input for the setEntityField2 tool.
type SetEntityField2Input struct {
	Value  string `json:"value" jsonschema:"description=New value for entity.data.field2."`
	ItemID string `json:"itemId" jsonschema:"description=Entity id."`
}

// AddEntityField3Input is the input for the addEntityField3 tool.
type AddEntityField3Input struct {
	Value  string `json:"value" jsonschema:"description=Tag to add to entity.data.field3."`
	ItemID string `json:"itemId" jsonschema:"description=Entity id."`
}

// RemoveEntityField3Input is the input for the removeEntityField3 tool.
type RemoveEntityField3Input struct {
	Value  string `json:"value" jsonschema:"description=Tag to remove from entity.data.field3."`
	ItemID string `json:"itemId" jsonschema:"description=Entity id."`
}

// SetEntityField1 overwrites an entity's first text field.
func (h *Handler) SetEntityField1(ctx context.Context, in SetEntityField1Input) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.SetEntityField1(in.ItemID, in.Value); err != nil {
		return "", err
	}
	return fmt.Sprintf("updated field1 of entity %s", in.ItemID), nil
}

// SetEntityField2 overwrites an entity's second text field.
func (h *Handler) SetEntityField2(ctx context.Context, in SetEntityField2Input) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.SetEntityField2(in.ItemID, in.Value); err != nil {
		return "", err
	}
	return fmt.Sprintf("updated field2 of entity %s", in.ItemID), nil
}

// AddEntityField3 adds a tag to an entity. Unknown tags become part of
// the entity's option list as well as its selection.
func (h *Handler) AddEntityField3(ctx context.Context, in AddEntityField3Input) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.AddEntityField3(in.ItemID, in.Value); err != nil {
		return "", err
	}
	return fmt.Sprintf("added tag %q to entity %s", in.Value, in.ItemID), nil
}

// RemoveEntityField3 removes a tag from an entity's selection. Removing
// a tag that is not selected is a no-op.
func (h *Handler) RemoveEntityField3(ctx context.Context, in RemoveEntityField3Input) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.RemoveEntityField3(in.ItemID, in.Value); err != nil {
		return "", err
	}
	return fmt.Sprintf("removed tag %q from entity %s", in.Value, in.ItemID), nil
}

// registerEntityTools registers entity field tools.
func registerEntityTools(g *genkit.Genkit, h *Handler) {
	genkit.DefineTool(g, "setEntityField1",
		"Set an entity's first text field (entity.data.field1).",
		func(tc *ai.ToolContext, in SetEntityField1Input) (string, error) {
			out, err := h.SetEntityField1(tc.Context, in)
			return h.result("setEntityField1", out, err)
		})

	genkit.DefineTool(g, "setEntityField2",
		"Set an entity's second text field (entity.data.field2).",
		func(tc *ai.ToolContext, in SetEntityField2Input) (string, error) {
			out, err := h.SetEntityField2(tc.Context, in)
			return h.result("setEntityField2", out, err)
		})

	genkit.DefineTool(g, "addEntityField3",
		"Add a tag to an entity's tag list (entity.data.field3). New tags extend the option list.",
		func(tc *ai.ToolContext, in AddEntityField3Input) (string, error) {
			out, err := h.AddEntityField3(tc.Context, in)
			return h.result("addEntityField3", out, err)
		})

	genkit.DefineTool(g, "removeEntityField3",
		"Remove a tag from an entity's tag list. Removing an absent tag is a no-op.",
		func(tc *ai.ToolContext, in RemoveEntityField3Input) (string, error) {
			out, err := h.RemoveEntityField3(tc.Context, in)
			return h.result("removeEntityField3", out, err)
		})
}
