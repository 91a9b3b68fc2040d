package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/lernkatalog/internal/server"
)

var (
	servePort     int
	serveAllowAll bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive catalog",
	Long: `Starts the interactive catalog viewer. Each browser session loads the
manifest once and keeps its own expand, filter and selection state on the
server; the page talks to it over a websocket and falls back to plain
form posts without JavaScript.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		welcome, err := loadWelcome(cfg)
		if err != nil {
			return err
		}

		port := cfg.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv := server.New(server.Config{
			Port:     port,
			Title:    cfg.Title,
			AllowAll: cfg.AllowAllOrigins || serveAllowAll,
			Verbose:  verbose,
			Welcome:  welcome,
		}, newLoader(cfg))

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "lernkatalog v%s starting on port %d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Manifest: %s\n", cfg.Manifest)
		fmt.Fprintf(os.Stderr, "  Open http://localhost:%d in your browser\n", port)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "allow CORS requests from any origin")
	rootCmd.AddCommand(serveCmd)
}
