package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Page is one rendered catalog page. Unit is empty for the index page.
type Page struct {
	Unit  string
	Label string
	Path  string
}

// String describes the page the way it shows up in progress output.
func (p Page) String() string {
	if p.Unit == "" {
		return p.Path
	}
	return fmt.Sprintf("%s · %s (%s)", p.Unit, p.Label, p.Path)
}

// Reporter provides progress feedback while a catalog export runs.
type Reporter interface {
	// Start announces how many Lernfelder and pages the export covers.
	Start(units, pages int)
	Page(p Page)
	// UnitDone is called once all situation pages of a Lernfeld are written.
	UnitDone(unit string, situations int)
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive terminal,
// or a CIReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{}
}

// TerminalReporter displays a progress bar over all pages, described by
// the Lernfeld and situation currently rendered.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(units, pages int) {
	r.bar = progressbar.NewOptions(pages,
		progressbar.OptionSetDescription(fmt.Sprintf("Exporting %d Lernfelder", units)),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Page(p Page) {
	if r.bar != nil {
		r.bar.Describe(p.String())
		_ = r.bar.Add(1)
	}
}

func (r *TerminalReporter) UnitDone(string, int) {}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints one line per page and per finished Lernfeld,
// suitable for CI logs.
type CIReporter struct {
	Out io.Writer

	units, total, current int
	doneUnits             int
}

func (r *CIReporter) Start(units, pages int) {
	r.units, r.total = units, pages
	r.current, r.doneUnits = 0, 0
	fmt.Fprintf(r.Out, "Exporting %d Lernfelder, %d pages\n", units, pages)
}

func (r *CIReporter) Page(p Page) {
	r.current++
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", r.current, r.total, p)
}

func (r *CIReporter) UnitDone(unit string, situations int) {
	r.doneUnits++
	fmt.Fprintf(r.Out, "Lernfeld %s done (%d Lernsituationen, %d/%d)\n", unit, situations, r.doneUnits, r.units)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.Out, "Catalog export complete: %d pages\n", r.current)
}

// Nop discards all progress. Used by tests and quiet runs.
type Nop struct{}

func (Nop) Start(int, int)       {}
func (Nop) Page(Page)            {}
func (Nop) UnitDone(string, int) {}
func (Nop) Finish()              {}
