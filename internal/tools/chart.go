package tools

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// AddChartField1Input is the input for the addChartField1 tool.
type AddChartField1Input struct {
	Label  string   `json:"label" jsonschema:"description=Metric label."`
	ItemID string   `json:"itemId" jsonschema:"description=Chart id."`
	Value  *float64 `json:"value,omitempty" jsonschema:"description=Optional numeric value in [0\\,100]; absent when omitted."`
}

// SetChartField1LabelInput is the input for the setChartField1Label tool.
type SetChartField1LabelInput struct {
	Label  string `json:"label" jsonschema:"description=New metric label."`
	ItemID string `json:"itemId" jsonschema:"description=Chart id."`
	Index  int    `json:"index" jsonschema:"description=0-based metric index."`
}

// SetChartField1ValueInput is the input for the setChartField1Value tool.
type SetChartField1ValueInput struct {
	ItemID string  `json:"itemId" jsonschema:"description=Chart id."`
	Index  int     `json:"index" jsonschema:"description=0-based metric index."`
	Value  float64 `json:"value" jsonschema:"description=Numeric value in [0\\,100]."`
}

// ClearChartField1ValueInput is the input for the clearChartField1Value tool.
type ClearChartField1ValueInput struct {
	ItemID string `json:"itemId" jsonschema:"description=Chart id."`
	Index  int    `json:"index" jsonschema:"description=0-based metric index."`
}

// RemoveChartField1Input is the input for the removeChartField1 tool.
type RemoveChartField1Input struct {
	ItemID string `json:"itemId" jsonschema:"description=Chart id."`
	Index  int    `json:"index" jsonschema:"description=0-based metric index."`
}

// AddChartField1 appends a metric to a chart.
func (h *Handler) AddChartField1(ctx context.Context, in AddChartField1Input) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	metric, err := doc.AddChartField1(in.ItemID, in.Label, in.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("added metric %q (%s) to chart %s", in.Label, metric.ID, in.ItemID), nil
}

// SetChartField1Label renames a metric.
func (h *Handler) SetChartField1Label(ctx context.Context, in SetChartField1LabelInput) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.SetChartField1Label(in.ItemID, in.Index, in.Label); err != nil {
		return "", err
	}
	return fmt.Sprintf("renamed metric %d of chart %s to %q", in.Index, in.ItemID, in.Label), nil
}

// SetChartField1Value sets a metric's value.
func (h *Handler) SetChartField1Value(ctx context.Context, in SetChartField1ValueInput) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.SetChartField1Value(in.ItemID, in.Index, in.Value); err != nil {
		return "", err
	}
	return fmt.Sprintf("set metric %d of chart %s to %g", in.Index, in.ItemID, in.Value), nil
}

// ClearChartField1Value unsets a metric's value.
func (h *Handler) ClearChartField1Value(ctx context.Context, in ClearChartField1ValueInput) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.ClearChartField1Value(in.ItemID, in.Index); err != nil {
		return "", err
	}
	return fmt.Sprintf("cleared value of metric %d of chart %s", in.Index, in.ItemID), nil
}

// RemoveChartField1 removes a metric from a chart.
func (h *Handler) RemoveChartField1(ctx context.Context, in RemoveChartField1Input) (string, error) {
	doc, err := h.document(ctx)
	if err != nil {
		return "", err
	}
	if err := doc.RemoveChartField1(in.ItemID, in.Index); err != nil {
		return "", err
	}
	return fmt.Sprintf("removed metric %d from chart %s", in.Index, in.ItemID), nil
}

// registerChartTools registers chart metric tools.
func registerChartTools(g *genkit.Genkit, h *Handler) {
	genkit.DefineTool(g, "addChartField1",
		"Add a metric to a chart (chart.data.field1). Value is optional and must be 0-100.",
		func(tc *ai.ToolContext, in AddChartField1Input) (string, error) {
			out, err := h.AddChartField1(tc.Context, in)
			return h.result("addChartField1", out, err)
		})

	genkit.DefineTool(g, "setChartField1Label",
		"Rename a chart metric by index.",
		func(tc *ai.ToolContext, in SetChartField1LabelInput) (string, error) {
			out, err := h.SetChartField1Label(tc.Context, in)
			return h.result("setChartField1Label", out, err)
		})

	genkit.DefineTool(g, "setChartField1Value",
		"Set a chart metric's value by index. Value must be 0-100.",
		func(tc *ai.ToolContext, in SetChartField1ValueInput) (string, error) {
			out, err := h.SetChartField1Value(tc.Context, in)
			return h.result("setChartField1Value", out, err)
		})

	genkit.DefineTool(g, "clearChartField1Value",
		"Clear a chart metric's value by index, leaving the label.",
		func(tc *ai.ToolContext, in ClearChartField1ValueInput) (string, error) {
			out, err := h.ClearChartField1Value(tc.Context, in)
			return h.result("clearChartField1Value", out, err)
		})

	genkit.DefineTool(g, "removeChartField1",
		"Remove a chart metric by index.",
		func(tc *ai.ToolContext, in RemoveChartField1Input) (string, error) {
			out, err := h.RemoveChartField1(tc.Context, in)
			return h.result("removeChartField1", out, err)
		})
}
