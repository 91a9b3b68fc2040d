package catalog

import (
	"context"
	"errors"

	"github.com/ziadkadry99/lernkatalog/internal/manifest"
)

// ManifestSource loads the catalog manifest.
type ManifestSource interface {
	Load(ctx context.Context) (*manifest.Manifest, error)
}

// Bootstrap loads the manifest and wires the surface: navigation first,
// then the filter. On failure the detail area shows the error card and the
// navigation stays empty. The error is returned for logging only.
func Bootstrap(ctx context.Context, src ManifestSource, s *Surface) error {
	m, err := src.Load(ctx)
	if err != nil {
		s.Nav.Clear()
		s.Detail.ShowError(errorMessage(err))
		return err
	}

	RenderUnits(s, m)
	AttachFilter(s)
	return nil
}

// errorMessage prefers the user-facing LoadError message.
func errorMessage(err error) string {
	var loadErr *manifest.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Message
	}
	return err.Error()
}
