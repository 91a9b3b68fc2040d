package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultPath is the fixed relative location of the manifest document.
const DefaultPath = "manifest.json"

// DefaultTimeout bounds a single manifest fetch.
const DefaultTimeout = 10 * time.Second

// User-visible load failure messages.
const (
	msgUnavailable = "manifest.json konnte nicht geladen werden."
	msgUnreadable  = "manifest.json konnte nicht gelesen werden."
)

// LoadError is the only error kind of the loader. Message is meant to be
// shown to the user as-is.
type LoadError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader fetches a manifest once from a URL or a local file.
type Loader struct {
	source  string
	client  *http.Client
	timeout time.Duration
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) { l.client = c }
}

// WithTimeout bounds the fetch. Zero or negative keeps the default.
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// NewLoader creates a Loader for source. An empty source means DefaultPath.
func NewLoader(source string, opts ...LoaderOption) *Loader {
	if source == "" {
		source = DefaultPath
	}
	l := &Loader{
		source:  source,
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the configured manifest location.
func (l *Loader) Source() string { return l.source }

// IsRemote reports whether source is fetched over HTTP.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load performs the one-shot fetch. Every failure is a *LoadError.
func (l *Loader) Load(ctx context.Context) (*Manifest, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if IsRemote(l.source) {
		return l.loadHTTP(ctx)
	}
	return l.loadFile()
}

func (l *Loader) loadHTTP(ctx context.Context) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, &LoadError{Message: msgUnavailable, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &LoadError{Message: msgUnavailable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{Message: msgUnavailable, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	m, err := Decode(resp.Body)
	if err != nil {
		return nil, &LoadError{Message: msgUnreadable, Err: err}
	}
	return m, nil
}

func (l *Loader) loadFile() (*Manifest, error) {
	f, err := os.Open(l.source)
	if err != nil {
		return nil, &LoadError{Message: msgUnavailable, Err: err}
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, &LoadError{Message: msgUnreadable, Err: err}
	}
	return m, nil
}

// Decode parses a manifest document.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &m, nil
}
