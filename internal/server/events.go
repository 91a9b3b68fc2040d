package server

import (
	"fmt"

	"github.com/ziadkadry99/lernkatalog/internal/catalog"
)

// Event types accepted from the page.
const (
	eventInput  = "input"
	eventToggle = "toggle"
	eventSelect = "select"
	eventScroll = "scroll"
)

// event is one UI interaction forwarded by the client.
type event struct {
	Type      string `json:"type"`
	Value     string `json:"value,omitempty"`
	Unit      int    `json:"unit"`
	Situation int    `json:"situation"`
	Top       int    `json:"top,omitempty"`
}

// update is the server's answer to an event. Detail is only set when the
// detail area was replaced.
type update struct {
	Type      string `json:"type"`
	Nav       string `json:"nav,omitempty"`
	Detail    string `json:"detail,omitempty"`
	ScrollTop int    `json:"scrollTop"`
	Query     string `json:"query"`
	Content   string `json:"content,omitempty"`
}

// dispatch routes ev to the handler bound to the addressed element. The
// caller must hold the session lock.
func dispatch(surface *catalog.Surface, ev event) error {
	switch ev.Type {
	case eventInput:
		surface.Search.Input(ev.Value)
	case eventToggle:
		u := surface.Nav.Unit(ev.Unit)
		if u == nil {
			return fmt.Errorf("unknown unit %d", ev.Unit)
		}
		u.Click()
	case eventSelect:
		n := surface.Nav.Situation(ev.Unit, ev.Situation)
		if n == nil {
			return fmt.Errorf("unknown situation %d/%d", ev.Unit, ev.Situation)
		}
		n.Click()
	case eventScroll:
		surface.Detail.ScrollTo(ev.Top)
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}

// snapshot renders the parts of the surface an event can change.
func snapshot(surface *catalog.Surface, ev event) update {
	u := update{
		Type:      "update",
		Nav:       string(surface.Nav.Render()),
		ScrollTop: surface.Detail.ScrollTop,
		Query:     surface.Search.Value,
	}
	if ev.Type == eventSelect {
		u.Detail = string(surface.Detail.HTML)
	}
	return u
}
