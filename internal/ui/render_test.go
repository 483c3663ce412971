package ui

import (
	"strings"
	"testing"
	"time"
)

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{
			name:     "short text within width",
			text:     "hello world",
			width:    20,
			expected: "hello world",
		},
		{
			name:     "long text needs wrap",
			text:     "this is a longer text that needs wrapping",
			width:    20,
			expected: "this is a longer\ntext that needs\nwrapping",
		},
		{
			name:     "zero width returns original",
			text:     "hello world",
			width:    0,
			expected: "hello world",
		},
		{
			name:     "empty string",
			text:     "",
			width:    20,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := wrapText(tt.text, tt.width)
			if result != tt.expected {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, result, tt.expected)
			}
		})
	}
}

func TestRenderMarkdownPlainText(t *testing.T) {
	out := RenderMarkdown("just a plain sentence", 80)
	if !strings.Contains(out, "just a plain sentence") {
		t.Errorf("plain text missing from output: %q", out)
	}
}

func TestRenderMarkdownHeadingsAndLists(t *testing.T) {
	input := "# Summary\ntext line\n* first\n* second\n* third"
	out := RenderMarkdown(input, 80)

	for _, want := range []string{"Summary", "text line", "first", "second", "third"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "•"); got != 3 {
		t.Errorf("bullet count = %d, want 3", got)
	}
}

func TestRenderMarkdownInline(t *testing.T) {
	out := RenderMarkdown("mix of **bold**, *italic* and `code` spans", 80)
	for _, want := range []string{"bold", "italic", "code", "mix of"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Markers are consumed, not displayed
	if strings.Contains(out, "**") || strings.Contains(out, "`") {
		t.Errorf("markdown markers leaked into output:\n%s", out)
	}
}

func TestRenderMarkdownCodeBlock(t *testing.T) {
	input := "before\n```go\nfunc main() {}\n```\nafter"
	out := RenderMarkdown(input, 80)
	for _, want := range []string{"before", "func", "main", "after"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "```") {
		t.Errorf("fence markers leaked into output:\n%s", out)
	}
}

func TestRenderMarkdownZeroWidth(t *testing.T) {
	// Falls back to the default wrap width instead of panicking
	out := RenderMarkdown("hello", 0)
	if !strings.Contains(out, "hello") {
		t.Errorf("output missing text: %q", out)
	}
}

func TestHighlightCodeUnknownLanguage(t *testing.T) {
	out := highlightCode("plain text here", "not-a-language")
	if !strings.Contains(out, "plain text here") {
		t.Errorf("fallback lexer dropped content: %q", out)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{"under a second", 0.5, "0.5s"},
		{"a few seconds", 12.3, "12.3s"},
		{"over a minute", 83, "1:23"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := secondsToDuration(tt.seconds)
			if got := formatElapsed(d); got != tt.expected {
				t.Errorf("formatElapsed = %q, want %q", got, tt.expected)
			}
		})
	}
}
