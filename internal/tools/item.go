package tools

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/storyforge/storyforge/internal/canvas"
)

// CreateItemInput is the input for the createItem tool.
type CreateItemInput struct {
	Type string  `json:"type" jsonschema:"description=One of: project, entity, note, chart."`
	Name *string `json:"name,omitempty" jsonschema:"description=Optional item name; a per-type default is used when omitted."`
}

// DeleteItemInput is the input for the deleteItem tool.
type DeleteItemInput struct {
	ItemID string `json:"itemId" jsonschema:"description=Target item id."`
}

// SetItemNameInput is the input for the setItemName tool.
type SetItemNameInput struct {
	Name   string `json:"name" jsonschema:"description=New item name/title."`
	ItemID string `json:"itemId" jsonschema:"description=Target item id."`
}

// SetItemSubtitleInput is the input for the setItemSubtitleOrDescription tool.
type SetItemSubtitleInput struct {
	Subtitle string `json:"subtitle" jsonschema:"description=Item subtitle/short description."`
	ItemID   string `json:"itemId" jsonschema:"description=Target item id."`
}

// SetGlobalTitleInput is the input for the setGlobalTitle tool.
type SetGlobalTitleInput struct {
	Title string `json:"title" jsonschema:"description=New global title."`
}

// SetGlobalDescriptionInput is the input for the setGlobalDescription tool.
type SetGlobalDescriptionInput struct {
	Description string `json:"description" jsonschema:"description=New global description."`
}

// CreateItem creates a new canvas item and reports its id.
func (h *Handler) CreateItem(ctx context.Context, in CreateItemInput) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	name := ""
	if in.Name != nil {
		name = *in.Name
	}
	item, err := doc.CreateItem(canvas.ItemType(in.Type), name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("created %s item %q with id %s", item.Type, item.Name, item.ID), nil
}

// DeleteItem deletes an item by id.
func (h *Handler) DeleteItem(ctx context.Context, in DeleteItemInput) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.DeleteItem(in.ItemID); err != nil {
		return "", err
	}
	return fmt.Sprintf("deleted item %s", in.ItemID), nil
}

// SetItemName sets an item's name.
func (h *Handler) SetItemName(ctx context.Context, in SetItemNameInput) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.SetItemName(in.ItemID, in.Name); err != nil {
		return "", err
	}
	return fmt.Sprintf("renamed item %s to %q", in.ItemID, in.Name), nil
}

// SetItemSubtitle sets an item's subtitle/description (not data fields).
func (h *Handler) SetItemSubtitle(ctx context.Context, in SetItemSubtitleInput) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.SetItemSubtitle(in.ItemID, in.Subtitle); err != nil {
		return "", err
	}
	return fmt.Sprintf("updated subtitle of item %s", in.ItemID), nil
}

// SetGlobalTitle sets the global canvas title.
func (h *Handler) SetGlobalTitle(ctx context.Context, in SetGlobalTitleInput) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	doc.SetTitle(in.Title)
	return "updated global title", nil
}

// SetGlobalDescription sets the global canvas description.
func (h *Handler) SetGlobalDescription(ctx context.Context, in SetGlobalDescriptionInput) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	doc.SetDescription(in.Description)
	return "updated global description", nil
}

// registerItemTools registers item lifecycle and global field tools.
func registerItemTools(g *genkit.Genkit, h *Handler) {
	genkit.DefineTool(g, "createItem",
		"Create a new canvas item and return its id.",
		func(tc *ai.ToolContext, in CreateItemInput) (string, error) {
			out, err := h.CreateItem(tc.Context, in)
			return h.result("createItem", out, err)
		})

	genkit.DefineTool(g, "deleteItem",
		"Delete an item by id.",
		func(tc *ai.ToolContext, in DeleteItemInput) (string, error) {
			out, err := h.DeleteItem(tc.Context, in)
			return h.result("deleteItem", out, err)
		})

	genkit.DefineTool(g, "setItemName",
		"Set an item's name.",
		func(tc *ai.ToolContext, in SetItemNameInput) (string, error) {
			out, err := h.SetItemName(tc.Context, in)
			return h.result("setItemName", out, err)
		})

	genkit.DefineTool(g, "setItemSubtitleOrDescription",
		"Set an item's subtitle/description (not data fields).",
		func(tc *ai.ToolContext, in SetItemSubtitleInput) (string, error) {
			out, err := h.SetItemSubtitle(tc.Context, in)
			return h.result("setItemSubtitleOrDescription", out, err)
		})

	genkit.DefineTool(g, "setGlobalTitle",
		"Set the global canvas title.",
		func(tc *ai.ToolContext, in SetGlobalTitleInput) (string, error) {
			out, err := h.SetGlobalTitle(tc.Context, in)
			return h.result("setGlobalTitle", out, err)
		})

	genkit.DefineTool(g, "setGlobalDescription",
		"Set the global canvas description.",
		func(tc *ai.ToolContext, in SetGlobalDescriptionInput) (string, error) {
			out, err := h.SetGlobalDescription(tc.Context, in)
			return h.result("setGlobalDescription", out, err)
		})
}
