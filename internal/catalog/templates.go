package catalog

import (
	"fmt"
	"html/template"
)

// Templates are the structural templates a host page supplies: the full
// page, one unit row and one situation row. The detail card and the error
// card are shared by every host.
type Templates struct {
	Page         *template.Template
	UnitRow      *template.Template
	SituationRow *template.Template
	Card         *template.Template
	ErrorCard    *template.Template
}

// NewTemplates parses host templates and attaches the shared card templates.
func NewTemplates(page, unitRow, situationRow string) (*Templates, error) {
	t := &Templates{}
	var err error
	if t.Page, err = template.New("page").Parse(page); err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	if t.UnitRow, err = template.New("unit-row").Parse(unitRow); err != nil {
		return nil, fmt.Errorf("parsing unit row template: %w", err)
	}
	if t.SituationRow, err = template.New("situation-row").Parse(situationRow); err != nil {
		return nil, fmt.Errorf("parsing situation row template: %w", err)
	}
	t.Card = cardTmpl
	t.ErrorCard = errorCardTmpl
	return t, nil
}

// DefaultTemplates returns the templates of the interactive viewer.
func DefaultTemplates() *Templates {
	t, err := NewTemplates(pageTemplate, unitRowTemplate, situationRowTemplate)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	cardTmpl      = template.Must(template.New("card").Parse(cardTemplate))
	errorCardTmpl = template.Must(template.New("error-card").Parse(errorCardTemplate))
)

// cardTemplate renders one situation detail view. Section content is
// trusted markup; everything else is escaped text.
const cardTemplate = `<div class="card">
  <div>
    <p class="badge">{{.Badge}}</p>
    <h2>{{.Heading}}</h2>
  </div>
{{- if .HasMeta}}
  <div class="meta-chips">
  {{- range .Chips}}
    {{- if .IsTag}}<span class="chip tag">{{.Text}}</span>{{else}}<span class="chip {{.Kind}}"><span class="dot"></span>{{.Icon}} {{.Text}}</span>{{end}}
  {{- end}}
  </div>
{{- end}}
{{- if .Overview}}
  <p id="overview">{{.Overview}}</p>
{{- end}}
{{- if .Sections}}
  <div class="section-grid">
  {{- range .Sections}}
    <div class="section"><h3>{{.Title}}</h3>{{.Content}}</div>
  {{- end}}
  </div>
{{- end}}
  <p class="meta">Quelle: <a href="{{.Source}}" target="_blank" rel="noopener noreferrer">{{.Source}}</a></p>
</div>`

const errorCardTemplate = `<div class="card error"><h2>Fehler</h2><p>{{.}}</p></div>`

// unitRowTemplate is the viewer's unit row. Without JavaScript the toggle
// posts a form; with it, script.js forwards the click over the websocket.
const unitRowTemplate = `<li class="lf" id="{{.DOMID}}">
  <form method="post" action="{{.Base}}units/{{.Index}}/toggle">
    <button type="submit" class="lf-title" data-unit="{{.Index}}" aria-expanded="{{.Expanded}}">{{.Label}}</button>
  </form>
  <ul class="ls-list" style="display: {{if .Expanded}}block{{else}}none{{end}}">{{.Items}}</ul>
</li>
`

const situationRowTemplate = `<li class="ls" id="{{.DOMID}}" style="display: {{if .Matched}}block{{else}}none{{end}}">
  <form method="post" action="{{.Base}}units/{{.UnitIndex}}/situations/{{.Index}}">
    <button type="submit" class="ls-title" data-unit="{{.UnitIndex}}" data-situation="{{.Index}}">{{.Label}}</button>
  </form>
</li>
`

const pageTemplate = `<!DOCTYPE html>
<html lang="de">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="{{.Base}}style.css">
</head>
<body>
  <nav class="sidebar">
    <h1 class="project-title">{{.Title}}</h1>
    <form method="get" action="{{.Base}}">
      <input type="search" id="search" name="q" value="{{.Query}}" placeholder="Lernsituation suchen…" autocomplete="off">
    </form>
    <p class="generated">Stand: <span id="generatedAt">{{.GeneratedAt}}</span></p>
    <ul id="lernfeldList">{{.Nav}}</ul>
  </nav>
  <main id="content" data-scroll-top="{{.ScrollTop}}">{{.Detail}}</main>
  <script src="{{.Base}}script.js"></script>
</body>
</html>`

// Stylesheet is the minimal shared stylesheet of viewer and export.
const Stylesheet = `body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; display: flex; margin: 0; min-height: 100vh; }
.sidebar { width: 320px; padding: 16px; border-right: 1px solid #dee2e6; overflow-y: auto; }
#lernfeldList, .ls-list { list-style: none; padding-left: 0; }
.ls-list { padding-left: 12px; }
.lf-title, .ls-title { background: none; border: 0; text-align: left; cursor: pointer; padding: 4px 0; font: inherit; }
.lf-title { font-weight: 600; }
.lf form, .ls form { margin: 0; }
#content { flex: 1; padding: 24px; overflow-y: auto; }
.card { max-width: 900px; }
.badge { color: #228be6; font-weight: 600; }
.meta-chips { display: flex; flex-wrap: wrap; gap: 6px; margin: 8px 0; }
.chip { border: 1px solid #dee2e6; border-radius: 12px; padding: 2px 10px; font-size: 0.85rem; }
.chip .dot { display: inline-block; width: 6px; height: 6px; border-radius: 3px; background: #228be6; margin-right: 6px; }
.section-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(280px, 1fr)); gap: 12px; }
.section { border: 1px solid #dee2e6; border-radius: 6px; padding: 12px; }
.meta { color: #868e96; font-size: 0.85rem; }
`
