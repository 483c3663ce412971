package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Header represents the top header bar
type Header struct {
	width          int
	account        string
	conversationID string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetAccount sets the signed-in account to display
func (h *Header) SetAccount(email string) {
	h.account = email
}

// SetConversationID sets the current conversation id to display
func (h *Header) SetConversationID(id string) {
	h.conversationID = id
}

// View renders the header
func (h *Header) View() string {
	titleText := " mise"
	var rightText string
	if h.conversationID != "" {
		rightText = shortID(h.conversationID)
	}
	if h.account != "" {
		if rightText != "" {
			rightText += " · "
		}
		rightText += h.account
	}
	if rightText != "" {
		rightText += " "
	}

	// Keep the title visible when the terminal is narrow
	maxRight := h.width - runewidth.StringWidth(titleText) - 1
	if maxRight < 0 {
		maxRight = 0
	}
	if runewidth.StringWidth(rightText) > maxRight {
		rightText = runewidth.Truncate(rightText, maxRight, "…")
	}

	paddingLen := h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	return h.renderGradient(fullContent, rightText)
}

// shortID truncates a conversation id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// rightText identifies the trailing status portion, which is rendered muted.
func (h *Header) renderGradient(content, rightText string) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	// End color: fade to the main background
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	rightStart := -1
	if rightText != "" {
		rightStart = strings.LastIndex(content, rightText)
	}

	// Walk grapheme clusters so combining marks stay styled together
	var clusters []string
	byteOffsets := []int{}
	gr := uniseg.NewGraphemes(content)
	offset := 0
	for gr.Next() {
		clusters = append(clusters, gr.Str())
		byteOffsets = append(byteOffsets, offset)
		offset += len(gr.Str())
	}

	width := len(clusters)
	var result strings.Builder

	for i, cluster := range clusters {
		// Interpolation factor (0.0 to 1.0)
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < 5) // Bold for the "mise" title

		if rightStart >= 0 && byteOffsets[i] >= rightStart {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(cluster))
	}

	return result.String()
}
