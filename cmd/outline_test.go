package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutlineCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "outline.md")

	rootCmd.SetArgs([]string{
		"outline",
		"--config", filepath.Join(dir, "missing.yml"),
		"--manifest", filepath.Join("..", "testdata", "manifest.json"),
		"--output", out,
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("outline: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading outline: %v", err)
	}
	for _, want := range []string{
		"# Lernfelder",
		"## LF1 – Das Unternehmen und die eigene Rolle im Betrieb beschreiben",
		"### LS1.2: Die eigene Rolle reflektieren",
		"Organigramm erstellen",
		"## LF3 – Clients in Netzwerke einbinden",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("outline missing %q", want)
		}
	}
}

func TestOutlineCommandMissingManifest(t *testing.T) {
	dir := t.TempDir()

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{
		"outline",
		"--config", filepath.Join(dir, "missing.yml"),
		"--manifest", filepath.Join(dir, "nope.json"),
		"--output", filepath.Join(dir, "outline.md"),
	})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected an error for a missing manifest")
	}
	if !strings.Contains(err.Error(), "manifest.json konnte nicht geladen werden.") {
		t.Errorf("err = %v", err)
	}
}
