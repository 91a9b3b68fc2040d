package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/lernkatalog/internal/progress"
	"github.com/ziadkadry99/lernkatalog/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate a static catalog website",
	Long: `Generates a self-contained static HTML catalog from the manifest: an index
page, one page per Lernsituation, the stylesheet, a small script for
toggling and filtering, and a copy of the manifest.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Int("port", 0, "port for the local dev server (defaults to config port)")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	siteCmd.Flags().String("output", "", "override output directory (defaults to config output_dir)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Determine output directory.
	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	m, err := newLoader(cfg).Load(context.Background())
	if err != nil {
		return err
	}

	generator := site.NewSiteGenerator(m, outputDir, cfg.Title)
	generator.WelcomePath = cfg.Welcome
	generator.SourceRoot = sourceRoot(cfg)
	generator.SourcePatterns = cfg.SourcePatterns()
	generator.Reporter = progress.NewReporter()

	pageCount, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static catalog generated: %s (%d pages)\n", outputDir, pageCount)

	// Optionally serve the site.
	serve, _ := cmd.Flags().GetBool("serve")
	if serve {
		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.Port
		}
		openBrowser, _ := cmd.Flags().GetBool("open")

		if err := site.Serve(outputDir, port, openBrowser); err != nil {
			return fmt.Errorf("serving site: %w", err)
		}
	}

	return nil
}
