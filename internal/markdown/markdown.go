// Package markdown converts AI-authored semi-structured text into a small
// tagged-node tree that serializers can render safely. It is a restricted,
// non-recursive transformer, not a general markup parser: emphasis and list
// matching are not nest-aware, which is acceptable because the rendered
// content is advisory display text and never executed or re-parsed.
package markdown

import (
	"regexp"
	"strings"
)

// Kind identifies the type of a rendered node.
type Kind int

const (
	KindText Kind = iota
	KindLineBreak
	KindCodeBlock
	KindCodeSpan
	KindBold
	KindItalic
	KindHeading
	KindListItem
	KindList
)

// Node is one element of the rendered tree. Text carries content for Text,
// CodeBlock, CodeSpan, Bold and Italic nodes. Level is the heading level
// (1-3). Children carries inline nodes for Heading and ListItem, and
// ListItem nodes for List.
type Node struct {
	Kind     Kind
	Text     string
	Lang     string // code block language tag, if any
	Level    int
	Children []Node
}

// Inline patterns, in match priority order. Bold must be matched before
// italic: a naive single-asterisk pattern would otherwise consume one
// asterisk of a bold pair and corrupt the match.
var (
	codeSpanPattern = regexp.MustCompile("`([^`]+)`")
	boldPattern     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern   = regexp.MustCompile(`\*([^*]+)\*`)
)

// Render converts raw text into a node tree. It is pure and never panics;
// text matching none of the recognized patterns passes through as Text and
// LineBreak nodes unchanged. Serializers are responsible for escaping, so
// no raw source text can reach display output unescaped.
func Render(input string) []Node {
	var nodes []Node

	// Fenced code blocks are extracted first so nothing downstream can
	// reinterpret their content.
	inCode := false
	codeLang := ""
	var code strings.Builder
	prevInline := false

	flushCode := func() {
		nodes = append(nodes, Node{Kind: KindCodeBlock, Text: code.String(), Lang: codeLang})
		code.Reset()
		codeLang = ""
	}

	for _, line := range strings.Split(input, "\n") {
		if strings.HasPrefix(line, "```") {
			if !inCode {
				inCode = true
				codeLang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
			} else {
				inCode = false
				flushCode()
				prevInline = false
			}
			continue
		}

		if inCode {
			if code.Len() > 0 {
				code.WriteString("\n")
			}
			code.WriteString(line)
			continue
		}

		if block, ok := blockNode(line); ok {
			nodes = append(nodes, block)
			prevInline = false
			continue
		}

		// Plain line: a break separates it from a preceding plain line.
		if prevInline {
			nodes = append(nodes, Node{Kind: KindLineBreak})
		}
		nodes = append(nodes, parseInline(line)...)
		prevInline = true
	}

	// Unterminated fence: render what we have as code rather than dropping it.
	if inCode {
		flushCode()
	}

	return groupLists(nodes)
}

// blockNode matches whole-line constructs: level 1-3 headings and list items.
func blockNode(line string) (Node, bool) {
	for level := 3; level >= 1; level-- {
		prefix := strings.Repeat("#", level) + " "
		if strings.HasPrefix(line, prefix) {
			return Node{
				Kind:     KindHeading,
				Level:    level,
				Children: parseInline(strings.TrimPrefix(line, prefix)),
			}, true
		}
	}

	if strings.HasPrefix(line, "* ") {
		return Node{
			Kind:     KindListItem,
			Children: parseInline(strings.TrimPrefix(line, "* ")),
		}, true
	}

	return Node{}, false
}

// parseInline renders inline markers within a line. Code spans are matched
// first so emphasis markers inside them are preserved verbatim, then bold,
// then italic.
func parseInline(line string) []Node {
	if line == "" {
		return nil
	}

	nodes := []Node{{Kind: KindText, Text: line}}
	nodes = splitMatches(nodes, codeSpanPattern, KindCodeSpan)
	nodes = splitMatches(nodes, boldPattern, KindBold)
	nodes = splitMatches(nodes, italicPattern, KindItalic)
	return nodes
}

// splitMatches replaces pattern matches inside Text nodes with nodes of the
// given kind, leaving non-Text nodes (already-claimed spans) untouched.
func splitMatches(nodes []Node, pattern *regexp.Regexp, kind Kind) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Kind != KindText {
			out = append(out, n)
			continue
		}

		rest := n.Text
		for {
			loc := pattern.FindStringSubmatchIndex(rest)
			if loc == nil {
				break
			}
			if before := rest[:loc[0]]; before != "" {
				out = append(out, Node{Kind: KindText, Text: before})
			}
			out = append(out, Node{Kind: kind, Text: rest[loc[2]:loc[3]]})
			rest = rest[loc[1]:]
		}
		if rest != "" {
			out = append(out, Node{Kind: KindText, Text: rest})
		}
	}
	return out
}

// groupLists wraps maximal runs of consecutive ListItem nodes in a single
// List node, so N consecutive "* item" lines render as one list with N
// items rather than N single-item lists.
func groupLists(nodes []Node) []Node {
	var out []Node
	var run []Node

	flush := func() {
		if len(run) > 0 {
			out = append(out, Node{Kind: KindList, Children: run})
			run = nil
		}
	}

	for _, n := range nodes {
		if n.Kind == KindListItem {
			run = append(run, n)
			continue
		}
		flush()
		out = append(out, n)
	}
	flush()

	return out
}
