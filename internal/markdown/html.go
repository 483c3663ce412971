package markdown

import (
	"fmt"
	"strings"
)

// escapeText neutralizes the two characters that open and close tags. Every
// piece of source text passes through here on its way into the output, so
// nothing the AI authored can introduce raw tag syntax.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

// ToHTML serializes a node tree into safe structured markup. All text
// content is escaped at emission; the only angle brackets in the result are
// the serializer's own tags.
func ToHTML(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeHTML(&sb, n)
	}
	return sb.String()
}

func writeHTML(sb *strings.Builder, n Node) {
	switch n.Kind {
	case KindText:
		sb.WriteString(escapeText(n.Text))
	case KindLineBreak:
		sb.WriteString("<br>")
	case KindCodeBlock:
		sb.WriteString("<pre><code>")
		sb.WriteString(escapeText(n.Text))
		sb.WriteString("</code></pre>")
	case KindCodeSpan:
		sb.WriteString("<code>")
		sb.WriteString(escapeText(n.Text))
		sb.WriteString("</code>")
	case KindBold:
		sb.WriteString("<strong>")
		sb.WriteString(escapeText(n.Text))
		sb.WriteString("</strong>")
	case KindItalic:
		sb.WriteString("<em>")
		sb.WriteString(escapeText(n.Text))
		sb.WriteString("</em>")
	case KindHeading:
		level := n.Level
		if level < 1 || level > 3 {
			level = 1
		}
		fmt.Fprintf(sb, "<h%d>", level)
		for _, c := range n.Children {
			writeHTML(sb, c)
		}
		fmt.Fprintf(sb, "</h%d>", level)
	case KindListItem:
		sb.WriteString("<li>")
		for _, c := range n.Children {
			writeHTML(sb, c)
		}
		sb.WriteString("</li>")
	case KindList:
		sb.WriteString("<ul>")
		for _, c := range n.Children {
			writeHTML(sb, c)
		}
		sb.WriteString("</ul>")
	}
}

// RenderHTML is the convenience composition of Render and ToHTML.
func RenderHTML(input string) string {
	return ToHTML(Render(input))
}
