package ui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/zhubert/mise/internal/conversation"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width       int
	status      conversation.Status
	authEnabled bool
	hasReport   bool
	errText     string
	flashText   string
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(status conversation.Status, authEnabled, hasReport bool, errText string) {
	f.status = status
	f.authEnabled = authEnabled
	f.hasReport = hasReport
	f.errText = errText
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetFlash sets a transient success line, shown when no error is pending
func (f *Footer) SetFlash(text string) {
	f.flashText = text
}

// bindings returns the shortcuts for the current conversation state
func (f *Footer) bindings() []KeyBinding {
	switch f.status {
	case conversation.StatusUploading, conversation.StatusAwaitingReply, conversation.StatusFinalizing:
		return []KeyBinding{
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	case conversation.StatusActive:
		return []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "ctrl+r", Desc: "final report"},
			{Key: "ctrl+u", Desc: "new menu"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	case conversation.StatusFinalized:
		b := []KeyBinding{
			{Key: "enter", Desc: "keep refining"},
		}
		if f.hasReport {
			b = append(b, KeyBinding{Key: "ctrl+y", Desc: "copy report"})
		}
		b = append(b,
			KeyBinding{Key: "ctrl+u", Desc: "new menu"},
			KeyBinding{Key: "pgup/dn", Desc: "scroll"},
			KeyBinding{Key: "ctrl+c", Desc: "quit"},
		)
		return b
	default: // Idle
		b := []KeyBinding{
			{Key: "ctrl+u", Desc: "upload menu"},
			{Key: "ctrl+t", Desc: "settings"},
		}
		if f.authEnabled {
			b = append(b, KeyBinding{Key: "ctrl+l", Desc: "log in"})
		}
		b = append(b, KeyBinding{Key: "ctrl+c", Desc: "quit"})
		return b
	}
}

// View renders the footer. A pending error replaces the shortcut line until
// the next action clears it.
func (f *Footer) View() string {
	if f.errText != "" {
		return FooterStyle.Width(f.width).Render(StatusErrorStyle.Render("✗ " + f.errText))
	}
	if f.flashText != "" {
		return FooterStyle.Width(f.width).Render(StatusSuccessStyle.Render("✓ " + f.flashText))
	}

	var parts []string
	for _, b := range f.bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
