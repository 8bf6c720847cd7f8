package tools

import (
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/storyforge/storyforge/internal/log"
)

// backendToolNames lists the canvas operations executed server-side.
// This is the single source of truth for tool names to avoid duplication.
var backendToolNames = []string{
	"createItem",
	"deleteItem",
	"setItemName",
	"setItemSubtitleOrDescription",
	"setGlobalTitle",
	"setGlobalDescription",
	"setNoteField1",
	"appendNoteField1",
	"clearNoteField1",
	"setProjectField1",
	"setProjectField2",
	"setProjectField3",
	"clearProjectField3",
	"addProjectChecklistItem",
	"setProjectChecklistItem",
	"removeProjectChecklistItem",
	"setEntityField1",
	"setEntityField2",
	"addEntityField3",
	"removeEntityField3",
	"addChartField1",
	"setChartField1Label",
	"setChartField1Value",
	"clearChartField1Value",
	"removeChartField1",
}

// frontendToolNames lists tools whose execution belongs to the UI; they
// interrupt generation instead of running here.
var frontendToolNames = []string{
	"selectAngle",
	"generateStoryAndConfirm",
}

// ToolNames returns every registered tool name, backend then frontend.
func ToolNames() []string {
	names := make([]string, 0, len(backendToolNames)+len(frontendToolNames))
	names = append(names, backendToolNames...)
	names = append(names, frontendToolNames...)
	return names
}

// FrontendToolNames returns the names of tools forwarded to the UI.
func FrontendToolNames() []string {
	return append([]string(nil), frontendToolNames...)
}

// IsFrontendTool reports whether name belongs to the UI-executed set.
func IsFrontendTool(name string) bool {
	for _, n := range frontendToolNames {
		if n == name {
			return true
		}
	}
	return false
}

// RegisterTools registers the full tool set with Genkit and returns the
// tool references for generation requests.
func RegisterTools(g *genkit.Genkit, logger log.Logger) []ai.Tool {
	handler := NewHandler(logger)

	registerItemTools(g, handler)
	registerNoteTools(g, handler)
	registerProjectTools(g, handler)
	registerEntityTools(g, handler)
	registerChartTools(g, handler)
	registerFrontendTools(g, handler)

	names := ToolNames()
	refs := make([]ai.Tool, 0, len(names))
	for _, name := range names {
		if t := genkit.LookupTool(g, name); t != nil {
			refs = append(refs, t)
		}
	}
	return refs
}
