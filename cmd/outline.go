package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/lernkatalog/internal/outline"
)

var outlineOutput string

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Write the catalog as a Markdown outline",
	Long:  `Writes every Lernfeld and Lernsituation of the manifest as a single Markdown document, to stdout or a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		m, err := newLoader(cfg).Load(context.Background())
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if outlineOutput != "" && outlineOutput != "-" {
			f, err := os.Create(outlineOutput)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outlineOutput, err)
			}
			defer f.Close()
			w = f
		}

		if err := outline.Write(w, m, cfg.Title); err != nil {
			return fmt.Errorf("writing outline: %w", err)
		}
		if outlineOutput != "" && outlineOutput != "-" {
			fmt.Fprintf(os.Stderr, "Outline written to %s\n", outlineOutput)
		}
		return nil
	},
}

func init() {
	outlineCmd.Flags().StringVarP(&outlineOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(outlineCmd)
}
