// Package cmd implements the storyforge command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storyforge",
	Short: "Storyforge - conversational story canvas agent",
	Long: `Storyforge is a conversational agent that writes stories onto a shared
canvas document. It pulls posts from subreddits through Composio, proposes
story angles, and writes the confirmed story to the canvas.

Running storyforge without a subcommand starts an interactive chat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
