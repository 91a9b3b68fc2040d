package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/lernkatalog/internal/manifest"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to lernkatalog! Let's configure your catalog.")
	fmt.Println()

	defaults := DefaultConfig()
	if _, err := os.Stat(manifest.DefaultPath); err == nil {
		fmt.Printf("Found %s in the current directory.\n\n", manifest.DefaultPath)
	}

	// 1. Manifest location.
	manifestPrompt := promptui.Prompt{
		Label:   "Manifest (path or http(s) URL)",
		Default: defaults.Manifest,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("manifest is required")
			}
			return nil
		},
	}
	manifestPath, err := manifestPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	// 2. Page title.
	titlePrompt := promptui.Prompt{
		Label:   "Catalog title",
		Default: defaults.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the static export",
		Default: defaults.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 4. Port.
	portPrompt := promptui.Prompt{
		Label:    "Port for serve",
		Default:  strconv.Itoa(defaults.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 5. Source patterns.
	sourcesPrompt := promptui.Prompt{
		Label:   "Source files to copy into the export (comma-separated globs, blank for defaults)",
		Default: "",
	}
	sourcesStr, err := sourcesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source patterns: %w", err)
	}

	cfg := defaults
	cfg.Manifest = strings.TrimSpace(manifestPath)
	cfg.Title = title
	cfg.OutputDir = outputDir
	cfg.Port = port
	cfg.Sources = splitAndTrim(sourcesStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
