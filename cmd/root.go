package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/lernkatalog/internal/config"
)

var (
	cfgFile      string
	manifestFlag string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "lernkatalog",
	Short: "Browse a curriculum catalog of Lernfelder and Lernsituationen",
	Long: `lernkatalog loads a manifest of Lernfelder (curriculum units) and their
Lernsituationen (learning situations) and presents it as a searchable,
collapsible catalog: served live in the browser, exported as a static
site, or written out as a Markdown outline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().StringVarP(&manifestFlag, "manifest", "m", "", "manifest path or URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
