package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/storyforge/storyforge/internal/config"
)

// Version information (injected at build time via ldflags).
var (
	AppVersion = "development"
	BuildTime  = "unknown"
	GitCommit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion() error {
	fmt.Printf("Storyforge %s\n", AppVersion)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Println("Configuration:")
	fmt.Printf("  Provider: %s\n", cfg.Provider)
	fmt.Printf("  Model: %s\n", cfg.FullModelName())
	fmt.Printf("  Max turns: %d\n", cfg.MaxTurns)

	if os.Getenv("COMPOSIO_API_KEY") != "" {
		fmt.Println("  COMPOSIO_API_KEY: configured")
	} else {
		fmt.Println("  COMPOSIO_API_KEY: not set (external tools disabled)")
	}
	return nil
}
