package cmd

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/lernkatalog/internal/config"
	"github.com/ziadkadry99/lernkatalog/internal/manifest"
	"github.com/ziadkadry99/lernkatalog/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `lernkatalog init` to create a config file", err)
	}
	if manifestFlag != "" {
		cfg.Manifest = manifestFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLoader creates the manifest loader described by cfg.
func newLoader(cfg *config.Config) *manifest.Loader {
	return manifest.NewLoader(cfg.Manifest, manifest.WithTimeout(cfg.FetchTimeout()))
}

// loadWelcome renders the configured welcome Markdown, if any.
func loadWelcome(cfg *config.Config) (template.HTML, error) {
	if cfg.Welcome == "" {
		return "", nil
	}
	content, err := os.ReadFile(cfg.Welcome)
	if err != nil {
		return "", fmt.Errorf("reading welcome page: %w", err)
	}
	return site.RenderMarkdown(content)
}

// sourceRoot is the directory local source references resolve against:
// the manifest's own directory, or the working directory for remote
// manifests.
func sourceRoot(cfg *config.Config) string {
	if manifest.IsRemote(cfg.Manifest) {
		return "."
	}
	return filepath.Dir(cfg.Manifest)
}
