package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/storyforge/storyforge/internal/agent"
	"github.com/storyforge/storyforge/internal/app"
	"github.com/storyforge/storyforge/internal/config"
	"github.com/storyforge/storyforge/internal/log"
	"github.com/storyforge/storyforge/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// runChat drives a console conversation, playing the frontend's role for
// pending tool calls: it shows proposed angles and draft stories and sends
// the user's decision back to the agent.
func runChat(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := log.New(log.Config{})

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(context.Background()); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	sess := a.Sessions.Create()
	fmt.Printf("Storyforge ready (model %s). Type your message, or /quit to exit.\n\n",
		cfg.FullModelName())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/quit" || input == "/exit" {
			break
		}

		resp, err := a.Agent.Execute(ctx, sess.ID, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		resp, err = resolvePending(ctx, a.Agent, sess, resp, scanner)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		if resp.Text != "" {
			fmt.Println(resp.Text)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// resolvePending loops until the turn has no pending frontend call left; a
// resumed turn may pause again (angle selection followed by confirmation).
func resolvePending(ctx context.Context, ag *agent.Agent, sess *session.Session, resp *agent.Response, scanner *bufio.Scanner) (*agent.Response, error) {
	for resp.Pending != nil {
		var decision agent.Decision

		switch resp.Pending.Tool {
		case "selectAngle":
			angles := resp.Pending.Angles()
			fmt.Println("\nPick a story angle:")
			for i, a := range angles {
				fmt.Printf("  %d. %s\n", i+1, a)
			}
			fmt.Print("angle number (or 0 to cancel): ")
			if !scanner.Scan() {
				return nil, fmt.Errorf("input closed")
			}
			n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err != nil || n < 0 || n > len(angles) {
				fmt.Println("invalid choice, cancelling")
				n = 0
			}
			if n == 0 {
				decision = agent.Decision{Approved: false, Reason: "user cancelled angle selection"}
			} else {
				decision = agent.Decision{Approved: true, Angle: angles[n-1]}
			}

		case "generateStoryAndConfirm":
			story, title, description := resp.Pending.StoryArgs()
			fmt.Printf("\n--- Draft story ---\nTitle: %s\nDescription: %s\n\n%s\n-------------------\n", title, description, story)
			fmt.Print("write this to the canvas? [y/N]: ")
			if !scanner.Scan() {
				return nil, fmt.Errorf("input closed")
			}
			answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if answer == "y" || answer == "yes" {
				decision = agent.Decision{Approved: true}
			} else {
				decision = agent.Decision{Approved: false, Reason: "user rejected the draft"}
			}

		default:
			decision = agent.Decision{Approved: false, Reason: "unsupported frontend tool"}
		}

		next, err := ag.Resume(ctx, sess.ID, decision)
		if err != nil {
			return nil, err
		}
		resp = next
	}
	return resp, nil
}
