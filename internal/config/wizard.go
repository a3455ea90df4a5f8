package config

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to learnai! Let's configure your assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Server URL.
	serverPrompt := promptui.Prompt{
		Label:   "Learn with AI server URL",
		Default: cfg.ServerURL,
	}
	serverURL, err := serverPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	cfg.ServerURL = serverURL

	// 2. Tone selection.
	toneItems := make([]string, len(Tones))
	for i, t := range Tones {
		toneItems[i] = string(t)
	}
	tonePrompt := promptui.Select{
		Label: "Select assistant tone",
		Items: toneItems,
	}
	toneIdx, _, err := tonePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("tone selection: %w", err)
	}
	cfg.Tone = Tones[toneIdx]

	// 3. Learner level.
	levelItems := make([]string, len(Levels))
	for i, l := range Levels {
		levelItems[i] = string(l)
	}
	levelPrompt := promptui.Select{
		Label: "Select learner level",
		Items: levelItems,
	}
	levelIdx, _, err := levelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("level selection: %w", err)
	}
	cfg.Level = Levels[levelIdx]

	// 4. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Directory for local chat history",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	fmt.Printf("\nConfiguration saved to %s\n", path)

	return cfg, nil
}
