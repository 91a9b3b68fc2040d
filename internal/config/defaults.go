package config

import (
	"time"

	"github.com/ziadkadry99/lernkatalog/internal/manifest"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = ".lernkatalog.yml"

// DefaultSources are the local source files copied into a static export
// when Sources is empty.
var DefaultSources = []string{
	"**/*.pdf",
	"**/*.docx",
	"**/*.odt",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Manifest:            manifest.DefaultPath,
		Title:               "Lernfelder",
		OutputDir:           "public",
		Port:                8080,
		FetchTimeoutSeconds: int(manifest.DefaultTimeout / time.Second),
	}
}

// SourcePatterns returns the configured source patterns or DefaultSources.
func (c *Config) SourcePatterns() []string {
	if len(c.Sources) == 0 {
		return DefaultSources
	}
	return c.Sources
}

// FetchTimeout returns the manifest fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
