package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zhubert/mise/internal/markdown"
)

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

// wrapText wraps text to the specified width, handling ANSI escape codes
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// RenderMarkdown parses content with the restricted markdown grammar and
// renders it for the terminal, wrapped to width.
func RenderMarkdown(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	return RenderNodes(markdown.Render(content), width)
}

// RenderNodes renders a parsed markdown node sequence for the terminal.
func RenderNodes(nodes []markdown.Node, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var sb strings.Builder
	for i, n := range nodes {
		switch n.Kind {
		case markdown.KindLineBreak:
			sb.WriteString("\n")
		case markdown.KindHeading:
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(renderHeading(n))
			sb.WriteString("\n")
		case markdown.KindCodeBlock:
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(highlightCode(n.Text, n.Lang))
			sb.WriteString("\n")
		case markdown.KindList:
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(renderList(n, width))
			sb.WriteString("\n")
		default:
			sb.WriteString(renderInline(n))
		}
	}

	return strings.TrimRight(wrapInlineRuns(sb.String(), width), "\n")
}

// wrapInlineRuns wraps each line of already-rendered text. Code blocks come
// out of chroma pre-formatted, so wrapping happens per line and long code
// lines are left to the terminal.
func wrapInlineRuns(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = wrapText(line, width)
	}
	return strings.Join(lines, "\n")
}

func renderHeading(n markdown.Node) string {
	text := renderChildren(n.Children)
	switch n.Level {
	case 1:
		return MarkdownH1Style.Render(text)
	case 2:
		return MarkdownH2Style.Render(text)
	default:
		return MarkdownH3Style.Render(text)
	}
}

func renderList(n markdown.Node, width int) string {
	bullet := MarkdownListBulletStyle.Render("•")
	items := make([]string, 0, len(n.Children))
	for _, item := range n.Children {
		content := renderChildren(item.Children)
		wrapped := wrapText(content, width-4)
		lines := strings.Split(wrapped, "\n")
		for i := 1; i < len(lines); i++ {
			lines[i] = "    " + lines[i]
		}
		items = append(items, "  "+bullet+" "+strings.Join(lines, "\n"))
	}
	return strings.Join(items, "\n")
}

// renderInline renders a single inline node with its style.
func renderInline(n markdown.Node) string {
	switch n.Kind {
	case markdown.KindBold:
		return MarkdownBoldStyle.Render(n.Text)
	case markdown.KindItalic:
		return MarkdownItalicStyle.Render(n.Text)
	case markdown.KindCodeSpan:
		return MarkdownInlineCodeStyle.Render(n.Text)
	default:
		return n.Text
	}
}

func renderChildren(children []markdown.Node) string {
	var sb strings.Builder
	for _, c := range children {
		sb.WriteString(renderInline(c))
	}
	return sb.String()
}
