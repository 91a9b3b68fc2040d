package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/lernkatalog/internal/catalog"
	"github.com/ziadkadry99/lernkatalog/internal/manifest"
	"github.com/ziadkadry99/lernkatalog/internal/progress"
)

// SiteGenerator writes a loaded manifest as a static, server-free catalog.
type SiteGenerator struct {
	Manifest  *manifest.Manifest
	OutputDir string
	Title     string

	// WelcomePath is an optional Markdown file shown on the index page.
	WelcomePath string
	// SourceRoot is the directory local source references are relative to.
	SourceRoot string
	// SourcePatterns select which local source references are copied into
	// the export (doublestar globs, e.g. "docs/**/*.pdf").
	SourcePatterns []string

	Location *time.Location
	Reporter progress.Reporter
}

// NewSiteGenerator creates a SiteGenerator for m.
func NewSiteGenerator(m *manifest.Manifest, outputDir, title string) *SiteGenerator {
	return &SiteGenerator{
		Manifest:   m,
		OutputDir:  outputDir,
		Title:      title,
		SourceRoot: ".",
		Location:   time.Local,
		Reporter:   progress.Nop{},
	}
}

// PagePath is the export path of situation j in unit i.
func PagePath(i, j int) string {
	return fmt.Sprintf("situations/%d-%d.html", i, j)
}

// Generate builds the static catalog. Returns the number of pages generated.
func (g *SiteGenerator) Generate() (int, error) {
	if g.Manifest == nil {
		return 0, fmt.Errorf("no manifest to export")
	}

	tpl, err := catalog.NewTemplates(pageTemplate, unitRowTemplate, situationRowTemplate)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Join(g.OutputDir, "situations"), 0o755); err != nil {
		return 0, err
	}

	// Write static assets.
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}
	if err := g.writeManifest(); err != nil {
		return 0, fmt.Errorf("writing manifest copy: %w", err)
	}

	welcome, err := g.renderWelcome()
	if err != nil {
		return 0, fmt.Errorf("rendering welcome page: %w", err)
	}

	total := 1
	for _, lf := range g.Manifest.Units {
		total += len(lf.Situations)
	}
	g.Reporter.Start(len(g.Manifest.Units), total)
	defer g.Reporter.Finish()

	index := g.newSurface(tpl, "")
	if welcome != "" {
		index.Detail.Replace(welcome)
	}
	if err := writePage(index, filepath.Join(g.OutputDir, "index.html")); err != nil {
		return 0, fmt.Errorf("rendering index: %w", err)
	}
	pages := 1
	g.Reporter.Page(progress.Page{Path: "index.html"})

	for i := range g.Manifest.Units {
		lf := &g.Manifest.Units[i]
		for j := range lf.Situations {
			rel := PagePath(i, j)
			s := g.newSurface(tpl, "../")
			s.Nav.Unit(i).Click()
			s.Nav.Situation(i, j).Click()
			if err := writePage(s, filepath.Join(g.OutputDir, filepath.FromSlash(rel))); err != nil {
				return 0, fmt.Errorf("rendering %s: %w", rel, err)
			}
			pages++
			g.Reporter.Page(progress.Page{Unit: lf.ID, Label: catalog.SituationLabel(&lf.Situations[j]), Path: rel})
		}
		g.Reporter.UnitDone(lf.ID, len(lf.Situations))
	}

	if err := g.copySources(); err != nil {
		return 0, fmt.Errorf("copying sources: %w", err)
	}

	return pages, nil
}

// newSurface builds a fresh page over the manifest with every unit
// collapsed and every row matched.
func (g *SiteGenerator) newSurface(tpl *catalog.Templates, base string) *catalog.Surface {
	s := catalog.NewSurface(g.Title, tpl)
	if g.Location != nil {
		s.Location = g.Location
	}
	s.Nav.Base = base
	catalog.RenderUnits(s, g.Manifest)
	catalog.AttachFilter(s)
	return s
}

func writePage(s *catalog.Surface, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Render(f)
}

// writeManifest stores the exported manifest next to the pages so the
// export stays self-describing.
func (g *SiteGenerator) writeManifest() error {
	data, err := json.MarshalIndent(g.Manifest, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(g.OutputDir, manifest.DefaultPath), data, 0o644)
}

// renderWelcome converts WelcomePath to HTML. No path means no welcome text.
func (g *SiteGenerator) renderWelcome() (template.HTML, error) {
	if g.WelcomePath == "" {
		return "", nil
	}
	content, err := os.ReadFile(g.WelcomePath)
	if err != nil {
		return "", err
	}
	return RenderMarkdown(content)
}

// RenderMarkdown converts Markdown to HTML wrapped in a welcome block.
func RenderMarkdown(content []byte) (template.HTML, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	var buf bytes.Buffer
	buf.WriteString(`<div class="welcome">`)
	if err := md.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	buf.WriteString(`</div>`)
	return template.HTML(buf.String()), nil
}

// copySources copies every local source reference matched by one of the
// SourcePatterns into the export, keeping its relative path.
func (g *SiteGenerator) copySources() error {
	if len(g.SourcePatterns) == 0 {
		return nil
	}
	for _, p := range g.SourcePatterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid source pattern %q", p)
		}
	}

	seen := make(map[string]bool)
	for _, lf := range g.Manifest.Units {
		for _, ls := range lf.Situations {
			rel, ok := localSource(ls.Source)
			if !ok || seen[rel] || !g.matchesSource(rel) {
				continue
			}
			seen[rel] = true
			src := filepath.Join(g.SourceRoot, filepath.FromSlash(rel))
			dst := filepath.Join(g.OutputDir, filepath.FromSlash(rel))
			if err := copyFile(src, dst); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					log.Printf("site: source %s not found, link left unresolved", rel)
					continue
				}
				return err
			}
		}
	}
	return nil
}

func (g *SiteGenerator) matchesSource(rel string) bool {
	for _, p := range g.SourcePatterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// localSource reports whether source names a file inside the source root
// and returns its cleaned slash path.
func localSource(source string) (string, bool) {
	if source == "" || manifest.IsRemote(source) || strings.Contains(source, ":") {
		return "", false
	}
	rel := path.Clean(strings.TrimPrefix(filepath.ToSlash(source), "./"))
	if path.IsAbs(rel) || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
