package config

// Config is the top-level lernkatalog configuration, corresponding to .lernkatalog.yml.
type Config struct {
	// Manifest is a local path or an http(s) URL.
	Manifest            string   `yaml:"manifest" koanf:"manifest"`
	Title               string   `yaml:"title" koanf:"title"`
	Welcome             string   `yaml:"welcome" koanf:"welcome"`
	OutputDir           string   `yaml:"output_dir" koanf:"output_dir"`
	Port                int      `yaml:"port" koanf:"port"`
	FetchTimeoutSeconds int      `yaml:"fetch_timeout_seconds" koanf:"fetch_timeout_seconds"`
	Sources             []string `yaml:"sources" koanf:"sources"`
	AllowAllOrigins     bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
