package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestPageString(t *testing.T) {
	tests := []struct {
		page Page
		want string
	}{
		{Page{Path: "index.html"}, "index.html"},
		{Page{Unit: "LF1", Label: "LS2: Durchführen", Path: "situations/0-1.html"}, "LF1 · LS2: Durchführen (situations/0-1.html)"},
	}
	for _, tt := range tests {
		if got := tt.page.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}

	r.Start(2, 3)
	r.Page(Page{Path: "index.html"})
	r.Page(Page{Unit: "LF1", Label: "LS1: Planen", Path: "situations/0-0.html"})
	r.UnitDone("LF1", 1)
	r.Page(Page{Unit: "LF2", Label: "LS1: Netze", Path: "situations/1-0.html"})
	r.UnitDone("LF2", 1)
	r.Finish()

	want := []string{
		"Exporting 2 Lernfelder, 3 pages",
		"[1/3] index.html",
		"[2/3] LF1 · LS1: Planen (situations/0-0.html)",
		"Lernfeld LF1 done (1 Lernsituationen, 1/2)",
		"[3/3] LF2 · LS1: Netze (situations/1-0.html)",
		"Lernfeld LF2 done (1 Lernsituationen, 2/2)",
		"Catalog export complete: 3 pages",
	}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), strings.Join(want, "\n"))
	}
}

func TestCIReporterRestart(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}
	r.Start(1, 1)
	r.Page(Page{Path: "index.html"})
	r.Finish()

	buf.Reset()
	r.Start(1, 1)
	r.Page(Page{Path: "index.html"})
	if !strings.Contains(buf.String(), "[1/1] index.html") {
		t.Errorf("counter should reset on Start, got %q", buf.String())
	}
}
