package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRenderFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "critique.md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRenderHTMLOutput(t *testing.T) {
	origHTML := renderHTML
	defer func() { renderHTML = origHTML }()
	renderHTML = true

	path := writeRenderFixture(t, "# Starters\n\n- **Rich** soup\n- `code`\n")

	var out bytes.Buffer
	renderCmd.SetOut(&out)
	defer renderCmd.SetOut(nil)

	if err := runRender(renderCmd, []string{path}); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	got := out.String()
	for _, want := range []string{"<h1>", "<ul>", "<strong>", "<code>"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderEscapesScript(t *testing.T) {
	origHTML := renderHTML
	defer func() { renderHTML = origHTML }()
	renderHTML = true

	path := writeRenderFixture(t, "<script>alert(1)</script>")

	var out bytes.Buffer
	renderCmd.SetOut(&out)
	defer renderCmd.SetOut(nil)

	if err := runRender(renderCmd, []string{path}); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	if strings.Contains(out.String(), "<script>") {
		t.Errorf("raw script tag leaked through: %s", out.String())
	}
}

func TestRenderTerminalOutput(t *testing.T) {
	origHTML, origWidth := renderHTML, renderWidth
	defer func() { renderHTML, renderWidth = origHTML, origWidth }()
	renderHTML = false
	renderWidth = 40

	path := writeRenderFixture(t, "## Mains\n\nThe duck is *underseasoned*.\n")

	var out bytes.Buffer
	renderCmd.SetOut(&out)
	defer renderCmd.SetOut(nil)

	if err := runRender(renderCmd, []string{path}); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Mains") || !strings.Contains(got, "underseasoned") {
		t.Errorf("unexpected terminal output: %q", got)
	}
	if strings.Contains(got, "*underseasoned*") {
		t.Error("italic markers were not consumed")
	}
}

func TestRenderMissingFile(t *testing.T) {
	if err := runRender(renderCmd, []string{filepath.Join(t.TempDir(), "missing.md")}); err == nil {
		t.Error("expected error for missing file")
	}
}
