package tools

import (
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// SelectAngleInput is the input for the selectAngle frontend tool.
type SelectAngleInput struct {
	Angles []string `json:"angles" jsonschema:"description=Three to five distinct story angles for the user to choose from."`
}

// GenerateStoryAndConfirmInput is the input for the generateStoryAndConfirm
// frontend tool.
type GenerateStoryAndConfirmInput struct {
	Story       string `json:"story" jsonschema:"description=Full draft story text."`
	Title       string `json:"title" jsonschema:"description=Proposed global title."`
	Description string `json:"description" jsonschema:"description=Proposed global description."`
}

// registerFrontendTools registers tools whose execution belongs to the UI.
//
// The handlers validate arguments and then interrupt generation. Genkit sets
// FinishReasonInterrupted and the dispatcher surfaces the pending call to the
// caller instead of executing it; the turn resumes once the user responds.
func registerFrontendTools(g *genkit.Genkit, h *Handler) {
	genkit.DefineTool(g, "selectAngle",
		"Present story angle options to the user and wait for their choice. "+
			"Call this with 3-5 distinct angles before drafting a story.",
		func(tc *ai.ToolContext, in SelectAngleInput) (string, error) {
			if len(in.Angles) == 0 {
				return h.result("selectAngle", "", fmt.Errorf("angles must not be empty"))
			}
			return "", tc.Interrupt(&ai.InterruptOptions{
				Metadata: map[string]any{
					"frontendTool": "selectAngle",
				},
			})
		})

	genkit.DefineTool(g, "generateStoryAndConfirm",
		"Present a complete draft story with title and description for user confirmation. "+
			"All three fields are required; nothing is written until the user confirms.",
		func(tc *ai.ToolContext, in GenerateStoryAndConfirmInput) (string, error) {
			if in.Story == "" || in.Title == "" || in.Description == "" {
				return h.result("generateStoryAndConfirm", "",
					fmt.Errorf("story, title and description are all required"))
			}
			return "", tc.Interrupt(&ai.InterruptOptions{
				Metadata: map[string]any{
					"frontendTool": "generateStoryAndConfirm",
				},
			})
		})
}
