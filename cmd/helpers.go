package cmd

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"

	"github.com/raj-tembe/learn-with-ai/internal/app"
	"github.com/raj-tembe/learn-with-ai/internal/config"
	"github.com/raj-tembe/learn-with-ai/internal/conversation"
	"github.com/raj-tembe/learn-with-ai/internal/notify"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `learnai init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newApp builds the component graph with terminal-facing output.
func newApp(cfg *config.Config) (*app.App, error) {
	notifier := notify.NewTerminal()
	view := conversation.NewTranscript(os.Stdout)

	a, err := app.New(cfg, notifier, view)
	if err != nil {
		return nil, err
	}
	a.Staging.SetProgressOutput(os.Stderr)
	return a, nil
}

// confirm asks the user to confirm a destructive action. Declining is not
// an error, just a false result.
func confirm(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}
