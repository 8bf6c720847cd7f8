package tools

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// SetProjectField1Input is the input for the setProjectField1 tool.
type SetProjectField1Input struct {
	Value  string `json:"value" jsonschema:"description=New value for project.data.field1."`
	ItemID string `json:"itemId" jsonschema:"description=Project id."`
}

// SetProjectField2Input is the input for the setProjectField2 tool.
type SetProjectField2Input struct {
	Value  string `json:"value" jsonschema:"description=New value for project.data.field2. One of: Option A, Option B, Option C."`
	ItemID string `json:"itemId" jsonschema:"description=Project id."`
}

// SetProjectField3Input is the input for the setProjectField3 tool.
type SetProjectField3Input struct {
	Date   string `json:"date" jsonschema:"description=Date YYYY-MM-DD for project.data.field3."`
	ItemID string `json:"itemId" jsonschema:"description=Project id."`
}

// ClearProjectField3Input is the input for the clearProjectField3 tool.
type ClearProjectField3Input struct {
	ItemID string `json:"itemId" jsonschema:"description=Project id."`
}

// AddProjectChecklistItemInput is the input for the addProjectChecklistItem tool.
type AddProjectChecklistItemInput struct {
	ItemID string  `json:"itemId" jsonschema:"description=Project id."`
	Text   *string `json:"text,omitempty" jsonschema:"description=Checklist text; empty when omitted."`
}

// SetProjectChecklistItemInput is the input for the setProjectChecklistItem tool.
type SetProjectChecklistItemInput struct {
	ItemID          string  `json:"itemId" jsonschema:"description=Project id."`
	ChecklistItemID string  `json:"checklistItemId" jsonschema:"description=Checklist item id or 0-based index."`
	Text            *string `json:"text,omitempty" jsonschema:"description=New text; unchanged when omitted."`
	Done            *bool   `json:"done,omitempty" jsonschema:"description=New done status; unchanged when omitted."`
}

// RemoveProjectChecklistItemInput is the input for the removeProjectChecklistItem tool.
type RemoveProjectChecklistItemInput struct {
	ItemID          string `json:"itemId" jsonschema:"description=Project id."`
	ChecklistItemID string `json:"checklistItemId" jsonschema:"description=Checklist item id."`
}

// SetProjectField1 overwrites a project's text field.
func (h *Handler) SetProjectField1(ctx context.Context, in SetProjectField1Input) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.SetProjectField1(in.ItemID, in.Value); err != nil {
		return "", err
	}
	return fmt.Sprintf("updated field1 of project %s", in.ItemID), nil
}

// SetProjectField2 overwrites a project's select field.
func (h *Handler) SetProjectField2(ctx context.Context, in SetProjectField2Input) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.SetProjectField2(in.ItemID, in.Value); err != nil {
		return "", err
	}
	return fmt.Sprintf("updated field2 of project %s", in.ItemID), nil
}

// SetProjectField3 sets a project's date field.
func (h *Handler) SetProjectField3(ctx context.Context, in SetProjectField3Input) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.SetProjectField3(in.ItemID, in.Date); err != nil {
		return "", err
	}
	return fmt.Sprintf("set date of project %s to %s", in.ItemID, in.Date), nil
}

// ClearProjectField3 unsets a project's date field.
func (h *Handler) ClearProjectField3(ctx context.Context, in ClearProjectField3Input) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.ClearProjectField3(in.ItemID); err != nil {
		return "", err
	}
	return fmt.Sprintf("cleared date of project %s", in.ItemID), nil
}

// AddProjectChecklistItem appends a checklist entry. Entries created by
// the agent are marked proposed until the user accepts them.
func (h *Handler) AddProjectChecklistItem(ctx context.Context, in AddProjectChecklistItemInput) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	text := ""
	if in.Text != nil {
		text = *in.Text
	}
	item, err := doc.AddProjectChecklistItem(in.ItemID, text, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("added checklist item %s to project %s", item.ID, in.ItemID), nil
}

// SetProjectChecklistItem partially updates a checklist entry.
func (h *Handler) SetProjectChecklistItem(ctx context.Context, in SetProjectChecklistItemInput) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.SetProjectChecklistItem(in.ItemID, in.ChecklistItemID, in.Text, in.Done); err != nil {
		return "", err
	}
	return fmt.Sprintf("updated checklist item %s of project %s", in.ChecklistItemID, in.ItemID), nil
}

// RemoveProjectChecklistItem removes a checklist entry.
func (h *Handler) RemoveProjectChecklistItem(ctx context.Context, in RemoveProjectChecklistItemInput) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.RemoveProjectChecklistItem(in.ItemID, in.ChecklistItemID); err != nil {
		return "", err
	}
	return fmt.Sprintf("removed checklist item %s from project %s", in.ChecklistItemID, in.ItemID), nil
}

// registerProjectTools registers project field and checklist tools.
func registerProjectTools(g *genkit.Genkit, h *Handler) {
	genkit.DefineTool(g, "setProjectField1",
		"Set a project's text field (project.data.field1).",
		func(tc *ai.ToolContext, in SetProjectField1Input) (string, error) {
			out, err := h.SetProjectField1(tc.Context, in)
			return h.result("setProjectField1", out, err)
		})

	genkit.DefineTool(g, "setProjectField2",
		"Set a project's select field (project.data.field2): Option A, Option B, or Option C.",
		func(tc *ai.ToolContext, in SetProjectField2Input) (string, error) {
			out, err := h.SetProjectField2(tc.Context, in)
			return h.result("setProjectField2", out, err)
		})

	genkit.DefineTool(g, "setProjectField3",
		"Set a project's date field (project.data.field3, YYYY-MM-DD).",
		func(tc *ai.ToolContext, in SetProjectField3Input) (string, error) {
			out, err := h.SetProjectField3(tc.Context, in)
			return h.result("setProjectField3", out, err)
		})

	genkit.DefineTool(g, "clearProjectField3",
		"Clear a project's date field.",
		func(tc *ai.ToolContext, in ClearProjectField3Input) (string, error) {
			out, err := h.ClearProjectField3(tc.Context, in)
			return h.result("clearProjectField3", out, err)
		})

	genkit.DefineTool(g, "addProjectChecklistItem",
		"Add a checklist item to a project.",
		func(tc *ai.ToolContext, in AddProjectChecklistItemInput) (string, error) {
			out, err := h.AddProjectChecklistItem(tc.Context, in)
			return h.result("addProjectChecklistItem", out, err)
		})

	genkit.DefineTool(g, "setProjectChecklistItem",
		"Update a checklist item's text and/or done status.",
		func(tc *ai.ToolContext, in SetProjectChecklistItemInput) (string, error) {
			out, err := h.SetProjectChecklistItem(tc.Context, in)
			return h.result("setProjectChecklistItem", out, err)
		})

	genkit.DefineTool(g, "removeProjectChecklistItem",
		"Remove a checklist item from a project.",
		func(tc *ai.ToolContext, in RemoveProjectChecklistItemInput) (string, error) {
			out, err := h.RemoveProjectChecklistItem(tc.Context, in)
			return h.result("removeProjectChecklistItem", out, err)
		})
}
