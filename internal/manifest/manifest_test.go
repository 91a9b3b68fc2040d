package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleManifest = `{
  "generatedAt": "2026-10-19T08:30:00.123456Z",
  "lernfelder": [
    {
      "id": "LF1",
      "title": "Grundlagen",
      "situationen": [
        {"id": "LS1", "title": "Planen", "source": "http://x/1"},
        {
          "id": "LS2",
          "title": "Umsetzen",
          "overview": "Kurzer <b>Überblick</b>",
          "meta": {"hours": 2, "year": "2. Jahr", "aprv": "genehmigt", "tags": ["a", "b"]},
          "sections": [{"title": "Ziele", "html": "<p>Ziel</p>"}, {"title": "Inhalte"}],
          "source": "data/lf01_ls02.html"
        }
      ]
    },
    {"id": "LF2", "title": "Leer", "situationen": []}
  ]
}`

func TestDecode(t *testing.T) {
	m, err := Decode(strings.NewReader(sampleManifest))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(m.Units) != 2 {
		t.Fatalf("units = %d, want 2", len(m.Units))
	}
	if got := m.GeneratedAt.UTC().Format(time.RFC3339); got != "2026-10-19T08:30:00Z" {
		t.Errorf("generatedAt = %q", got)
	}

	lf := m.Units[0]
	if lf.ID != "LF1" || lf.Title != "Grundlagen" || len(lf.Situations) != 2 {
		t.Fatalf("unexpected unit: %+v", lf)
	}
	if lf.Situations[0].Meta != nil {
		t.Error("LS1 meta should be absent")
	}

	ls := lf.Situations[1]
	if ls.Meta == nil {
		t.Fatal("LS2 meta should be present")
	}
	if ls.Meta.Hours == nil || *ls.Meta.Hours != 2 {
		t.Errorf("hours = %v, want 2", ls.Meta.Hours)
	}
	if ls.Meta.Year == nil || *ls.Meta.Year != "2. Jahr" {
		t.Errorf("year = %v", ls.Meta.Year)
	}
	if ls.Meta.Approval == nil || *ls.Meta.Approval != "genehmigt" {
		t.Errorf("approval = %v", ls.Meta.Approval)
	}
	if strings.Join(ls.Meta.Tags, ",") != "a,b" {
		t.Errorf("tags = %v", ls.Meta.Tags)
	}
	if len(ls.Sections) != 2 || ls.Sections[1].HTML != "" {
		t.Errorf("sections = %+v", ls.Sections)
	}

	if len(m.Units[1].Situations) != 0 {
		t.Error("LF2 should have no situations")
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"lernfelder": [`)); err == nil {
		t.Error("expected error for truncated document")
	}
	if _, err := Decode(strings.NewReader(`{"lernfelder": "nope"}`)); err == nil {
		t.Error("expected error for non-array units")
	}
}

func TestMetaLenient(t *testing.T) {
	tests := []struct {
		name     string
		meta     string
		hours    string
		label    string
		year     string
		approval string
		tags     string
		noTags   bool
		noMeta   bool
	}{
		{name: "tags not an array", meta: `{"tags": "a,b"}`, noTags: true},
		{name: "tags object", meta: `{"tags": {"a": 1}}`, noTags: true},
		{name: "mixed tags", meta: `{"tags": ["x", 3, null, true]}`, tags: "x|3||true"},
		{name: "numeric year", meta: `{"year": 2026}`, year: "2026"},
		{name: "string hours", meta: `{"hours": " 1.5 "}`, hours: "1.5"},
		{name: "non-numeric hours kept as label", meta: `{"hours": "viel"}`, label: "viel"},
		{name: "zero hours", meta: `{"hours": 0}`},
		{name: "zero year", meta: `{"year": 0}`},
		{name: "false approval", meta: `{"aprv": false}`},
		{name: "true approval", meta: `{"aprv": true}`, approval: "true"},
		{name: "object year", meta: `{"year": {"v": 1}}`},
		{name: "empty approval kept", meta: `{"aprv": ""}`, approval: "<empty>"},
		{name: "meta not an object", meta: `"whatever"`, noTags: true},
		{name: "meta false", meta: `false`, noMeta: true},
		{name: "meta zero", meta: `0`, noMeta: true},
		{name: "meta empty string", meta: `""`, noMeta: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"lernfelder":[{"id":"LF1","title":"T","situationen":[{"id":"LS1","title":"S","meta":` + tt.meta + `}]}]}`
			m, err := Decode(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			meta := m.Units[0].Situations[0].Meta
			if tt.noMeta {
				if meta != nil {
					t.Errorf("meta = %+v, want absent", meta)
				}
				return
			}
			if meta == nil {
				t.Fatal("meta should be present")
			}
			if meta.HoursLabel != tt.label {
				t.Errorf("hours label = %q, want %q", meta.HoursLabel, tt.label)
			}

			if tt.hours == "" && meta.Hours != nil {
				t.Errorf("hours = %v, want absent", *meta.Hours)
			}
			if tt.hours == "1.5" && (meta.Hours == nil || *meta.Hours != 1.5) {
				t.Errorf("hours = %v, want 1.5", meta.Hours)
			}
			if tt.year == "" && meta.Year != nil {
				t.Errorf("year = %q, want absent", *meta.Year)
			}
			if tt.year != "" && (meta.Year == nil || *meta.Year != tt.year) {
				t.Errorf("year = %v, want %q", meta.Year, tt.year)
			}
			switch tt.approval {
			case "":
				if meta.Approval != nil {
					t.Errorf("approval = %q, want absent", *meta.Approval)
				}
			case "<empty>":
				if meta.Approval == nil || *meta.Approval != "" {
					t.Errorf("approval = %v, want empty string", meta.Approval)
				}
			default:
				if meta.Approval == nil || *meta.Approval != tt.approval {
					t.Errorf("approval = %v, want %q", meta.Approval, tt.approval)
				}
			}
			if tt.noTags && meta.Tags != nil {
				t.Errorf("tags = %v, want none", meta.Tags)
			}
			if tt.tags != "" && strings.Join(meta.Tags, "|") != tt.tags {
				t.Errorf("tags = %q, want %q", strings.Join(meta.Tags, "|"), tt.tags)
			}
		})
	}
}

func TestMetaHoursLabelRoundTrip(t *testing.T) {
	doc := `{"lernfelder":[{"id":"LF1","title":"T","situationen":[{"id":"LS1","title":"S","meta":{"hours":"zwei","tags":["a"]}}]}]}`
	m, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"hours":"zwei"`) {
		t.Errorf("encoded manifest lost the hours label: %s", data)
	}
	again, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := again.Units[0].Situations[0].Meta.HoursLabel; got != "zwei" {
		t.Errorf("hours label = %q, want zwei", got)
	}
}

func TestTimestampMalformed(t *testing.T) {
	m, err := Decode(strings.NewReader(`{"generatedAt": "gestern", "lernfelder": []}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !m.GeneratedAt.IsZero() {
		t.Errorf("generatedAt = %v, want zero", m.GeneratedAt)
	}
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/manifest.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleManifest))
	}))
	defer srv.Close()

	m, err := NewLoader(srv.URL + "/manifest.json").Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Units) != 2 {
		t.Errorf("units = %d, want 2", len(m.Units))
	}
}

func TestLoadHTTPBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewLoader(srv.URL + "/manifest.json").Load(context.Background())
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T (%v)", err, err)
	}
	if loadErr.Message != msgUnavailable {
		t.Errorf("message = %q, want %q", loadErr.Message, msgUnavailable)
	}
}

func TestLoadHTTPParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := NewLoader(srv.URL).Load(context.Background())
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Message != msgUnreadable {
		t.Errorf("message = %q, want %q", loadErr.Message, msgUnreadable)
	}
}

func TestLoadHTTPUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewLoader(url+"/manifest.json", WithTimeout(time.Second)).Load(context.Background())
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Unwrap() == nil {
		t.Error("expected wrapped cause")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := NewLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Units[0].Situations[0].Title != "Planen" {
		t.Errorf("title = %q", m.Units[0].Situations[0].Title)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestNewLoaderDefaults(t *testing.T) {
	l := NewLoader("")
	if l.Source() != DefaultPath {
		t.Errorf("source = %q, want %q", l.Source(), DefaultPath)
	}
	if IsRemote(DefaultPath) {
		t.Error("default path should be local")
	}
	if !IsRemote("https://example.org/manifest.json") {
		t.Error("https source should be remote")
	}
}
