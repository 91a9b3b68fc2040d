package server

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/lernkatalog/internal/catalog"
)

// Config holds server configuration.
type Config struct {
	Port     int
	Title    string
	AllowAll bool // allow all CORS origins (dev mode)
	Verbose  bool // log every UI event
	// Welcome fills the detail area before the first selection.
	Welcome template.HTML
}

// Server is the interactive catalog viewer. Every browser session owns its
// own catalog surface, bootstrapped from source on first request.
type Server struct {
	cfg        Config
	source     catalog.ManifestSource
	sessions   *sessionStore
	router     chi.Router
	httpServer *http.Server
}

// New creates a server that loads the manifest from source.
func New(cfg Config, source catalog.ManifestSource) *Server {
	if cfg.Title == "" {
		cfg.Title = "Lernfelder"
	}
	s := &Server{
		cfg:      cfg,
		source:   source,
		sessions: newSessionStore(),
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/style.css", serveAsset("text/css; charset=utf-8", catalog.Stylesheet))
	r.Get("/script.js", serveAsset("application/javascript; charset=utf-8", scriptContent))

	// The websocket handler runs for the lifetime of the page and must not
	// be cut off by the request timeout.
	r.Get("/ws", s.handleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Get("/", s.handleIndex)
		r.Post("/units/{unit}/toggle", s.handleToggle)
		r.Post("/units/{unit}/situations/{situation}", s.handleSelect)
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("lernkatalog server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func serveAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write([]byte(body))
	}
}
