package outline

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/lernkatalog/internal/manifest"
)

func ptr[T any](v T) *T { return &v }

func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		GeneratedAt: manifest.Timestamp{Time: time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)},
		Units: []manifest.Unit{
			{ID: "LF1", Title: "Grundlagen", Situations: []manifest.Situation{
				{
					ID:       "LS1",
					Title:    "Planen",
					Meta:     &manifest.Meta{Hours: ptr(1.5), Year: ptr("1"), Tags: []string{"netz", "plan"}},
					Overview: "Ein Projekt planen.",
					Sections: []manifest.Section{
						{Title: "Ziele", HTML: "<ul><li>Anforderungen &amp; Ziele</li><li>Zeitplan</li></ul>"},
						{Title: "Leer"},
					},
					Source: "http://x/1",
				},
			}},
			{ID: "LF2", Title: "Leer"},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testManifest(), "Lernfelder"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Lernfelder",
		"Stand: 2026-10-19T08:30:00Z",
		"Lernsituationen",
		"Gesamt",
		"## LF1 – Grundlagen",
		"### LS1: Planen",
		"Stunden: 1,5",
		"Jahrgang: 1",
		"Tags: netz, plan",
		"Ein Projekt planen.",
		"**Ziele**",
		"Anforderungen & Ziele\nZeitplan",
		"Keine Inhalte hinterlegt.",
		"Quelle: <http://x/1>",
		"## LF2 – Leer",
		"Keine Lernsituationen hinterlegt.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("outline missing %q\n%s", want, out)
		}
	}

	if strings.Index(out, "## LF1") > strings.Index(out, "## LF2") {
		t.Error("units should keep manifest order")
	}
	if strings.Contains(out, "Freigabe") {
		t.Error("absent approval should not be listed")
	}
}

func TestWriteNoTimestamp(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, &manifest.Manifest{}, "Leer"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.Contains(buf.String(), "Stand:") {
		t.Error("zero timestamp should be omitted")
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"nur Text", "nur Text"},
		{"<p>Hallo <strong>Welt</strong></p>", "Hallo Welt"},
		{"<p>A</p><p>B</p>", "A\nB"},
		{"<ul>\n  <li>eins</li>\n  <li>zwei</li>\n</ul>", "eins\nzwei"},
		{"a<br>b", "a\nb"},
		{"&lt;tag&gt; &amp; mehr", "<tag> & mehr"},
		{"<p>  viel    Platz  </p>", "viel Platz"},
	}

	for _, tt := range tests {
		if got := PlainText(tt.in); got != tt.want {
			t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
