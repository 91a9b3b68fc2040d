package catalog

import (
	"bytes"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/ziadkadry99/lernkatalog/internal/manifest"
)

// Surface is one open catalog page: the navigation container, the detail
// container and the search input, plus the host templates used to render
// them. Every piece of UI state lives here; nothing is global.
type Surface struct {
	Title       string
	GeneratedAt string
	Location    *time.Location

	Nav    *NavContainer
	Detail *DetailContainer
	Search *SearchInput

	tpl *Templates
}

// NewSurface creates an empty surface. A nil tpl uses DefaultTemplates.
func NewSurface(title string, tpl *Templates) *Surface {
	if tpl == nil {
		tpl = DefaultTemplates()
	}
	return &Surface{
		Title:    title,
		Location: time.Local,
		Nav:      &NavContainer{tpl: tpl},
		Detail:   &DetailContainer{tpl: tpl},
		Search:   &SearchInput{},
		tpl:      tpl,
	}
}

// Templates returns the host templates of the surface.
func (s *Surface) Templates() *Templates { return s.tpl }

// PageData is the data passed to the page template.
type PageData struct {
	Title       string
	GeneratedAt string
	Query       string
	Base        string
	Nav         template.HTML
	Detail      template.HTML
	ScrollTop   int
}

// Data snapshots the surface for the page template.
func (s *Surface) Data() PageData {
	return PageData{
		Title:       s.Title,
		GeneratedAt: s.GeneratedAt,
		Query:       s.Search.Value,
		Base:        s.Nav.Base,
		Nav:         s.Nav.Render(),
		Detail:      s.Detail.HTML,
		ScrollTop:   s.Detail.ScrollTop,
	}
}

// Render writes the full page.
func (s *Surface) Render(w io.Writer) error {
	return s.tpl.Page.Execute(w, s.Data())
}

// DetailContainer holds the currently displayed detail view. Content is
// always replaced wholesale.
type DetailContainer struct {
	HTML      template.HTML
	ScrollTop int
	Selection *Selection

	tpl *Templates
}

// Selection is the last selected situation together with its unit.
type Selection struct {
	Unit      *manifest.Unit
	Situation *manifest.Situation
}

// Replace swaps the detail content and resets the scroll position.
func (d *DetailContainer) Replace(html template.HTML) {
	d.HTML = html
	d.ScrollTop = 0
}

// ScrollTo records the client's scroll offset.
func (d *DetailContainer) ScrollTo(top int) {
	if top < 0 {
		top = 0
	}
	d.ScrollTop = top
}

// ShowError replaces the detail area with the terminal error card.
func (d *DetailContainer) ShowError(message string) {
	d.Selection = nil
	d.Replace(execute(d.tpl.ErrorCard, message))
}

// SearchInput is the search text field. Subscribers are notified on every
// input event with the new value.
type SearchInput struct {
	Value    string
	handlers []func(string)
}

// Subscribe registers an input handler.
func (in *SearchInput) Subscribe(fn func(string)) {
	in.handlers = append(in.handlers, fn)
}

// Input sets the field value and fires the input event.
func (in *SearchInput) Input(value string) {
	in.Value = value
	for _, fn := range in.handlers {
		fn(value)
	}
}

// execute renders a fixed template into HTML. Rendering never fails the
// caller; a template error is logged and yields empty output.
func execute(t *template.Template, data any) template.HTML {
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		log.Printf("catalog: rendering %s: %v", t.Name(), err)
		return ""
	}
	return template.HTML(b.String())
}
