package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/mise/internal/conversation"
	"github.com/zhubert/mise/internal/logger"
)

// StopwatchTickMsg is sent to update the stopwatch display
type StopwatchTickMsg time.Time

// waitingVerbs are playful status messages that cycle while waiting for the critique
var waitingVerbs = []string{
	"Tasting",
	"Simmering",
	"Reducing",
	"Seasoning",
	"Plating",
	"Garnishing",
	"Whisking",
	"Deglazing",
	"Julienning",
	"Caramelizing",
	"Proofing",
	"Marinating",
}

// randomWaitingVerb returns a random verb from the list
func randomWaitingVerb() string {
	return waitingVerbs[rand.Intn(len(waitingVerbs))]
}

// Chat is the conversation panel: transcript viewport plus input textarea.
// During an upload it shows a progress bar in place of the transcript.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	bar      progress.Model
	width    int
	height   int

	snap          conversation.Snapshot
	waitStartTime time.Time
	waitingVerb   string
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Ask about your menu..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	ti.Focus()

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	bar := progress.New(progress.WithDefaultBlend())
	bar.SetWidth(ProgressBarWidth)

	c := &Chat{
		viewport: vp,
		input:    ti,
		bar:      bar,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	chatPanelHeight := height - InputTotalHeight

	innerWidth := width - BorderSize
	viewportHeight := chatPanelHeight - BorderSize
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)

	inputInnerWidth := innerWidth - InputPaddingWidth
	c.input.SetWidth(inputInnerWidth)

	logger.Log("Chat.SetSize: outer=%dx%d, viewport=%dx%d", width, height, innerWidth, viewportHeight)
	c.updateContent()
}

// SetSnapshot updates the panel from the current conversation state.
func (c *Chat) SetSnapshot(snap conversation.Snapshot) {
	startedWaiting := snap.Status != c.snap.Status && snap.Busy()
	c.snap = snap
	if startedWaiting {
		c.waitStartTime = time.Now()
		c.waitingVerb = randomWaitingVerb()
	}
	c.updateContent()
}

// GetInput returns the current input text
func (c *Chat) GetInput() string {
	val := strings.TrimSpace(c.input.Value())
	logger.Log("Chat.GetInput: value=%q, len=%d", val, len(val))
	return val
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// StopwatchTick returns a command that sends a tick message after a delay
func StopwatchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// formatElapsed formats a duration as a stopwatch string (e.g., "1.2s", "1:23")
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// renderWelcome renders the placeholder shown before any menu is uploaded
func (c *Chat) renderWelcome() string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(msgStyle.Italic(true).Render("No menu uploaded"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("To get started:"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("ctrl+u"))
	sb.WriteString(msgStyle.Render(" to upload a menu document"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • You'll get an initial critique, then refine it in chat"))
	return sb.String()
}

// renderUploading renders the upload progress view
func (c *Chat) renderUploading() string {
	var sb strings.Builder
	sb.WriteString(StatusLoadingStyle.Render("Uploading menu..."))
	sb.WriteString("\n\n")
	sb.WriteString(c.bar.ViewAs(float64(c.snap.UploadPercent) / 100))
	sb.WriteString(fmt.Sprintf("  %d%%", c.snap.UploadPercent))
	return sb.String()
}

func (c *Chat) updateContent() {
	var sb strings.Builder

	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	switch {
	case c.snap.Status == conversation.StatusIdle:
		sb.WriteString(c.renderWelcome())
	case c.snap.Status == conversation.StatusUploading:
		sb.WriteString(c.renderUploading())
	default:
		for i, msg := range c.snap.Messages {
			if i > 0 {
				sb.WriteString("\n\n")
			}

			var roleStyle lipgloss.Style
			var roleName string
			if msg.Sender == conversation.SenderUser {
				roleStyle = ChatUserStyle
				roleName = "You"
			} else {
				roleStyle = ChatAssistantStyle
				roleName = "Critic"
			}

			sb.WriteString(roleStyle.Render(roleName + ":"))
			sb.WriteString("\n")
			sb.WriteString(RenderMarkdown(strings.TrimSpace(msg.Content), wrapWidth))
		}

		if c.snap.Busy() {
			if len(c.snap.Messages) > 0 {
				sb.WriteString("\n\n")
			}
			elapsed := time.Since(c.waitStartTime)
			stopwatchStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
			sb.WriteString(ChatAssistantStyle.Render("Critic:"))
			sb.WriteString("\n")
			sb.WriteString(StatusLoadingStyle.Render(c.waitingVerb + "... "))
			sb.WriteString(stopwatchStyle.Render(formatElapsed(elapsed)))
		}

		if c.snap.Status == conversation.StatusFinalized && c.snap.FinalReport != "" {
			sb.WriteString("\n\n")
			sb.WriteString(c.renderReport(wrapWidth))
		}
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// renderReport renders the final report in its own box
func (c *Chat) renderReport(wrapWidth int) string {
	var sb strings.Builder
	sb.WriteString(ReportTitleStyle.Render("Final Report"))
	sb.WriteString("\n")
	sb.WriteString(RenderMarkdown(strings.TrimSpace(c.snap.FinalReport), wrapWidth-4))

	boxWidth := wrapWidth
	if boxWidth > 100 {
		boxWidth = 100
	}
	return ReportBoxStyle.Width(boxWidth).Render(sb.String())
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case StopwatchTickMsg:
		if c.snap.Busy() {
			c.updateContent()
			cmds = append(cmds, StopwatchTick())
		}
		return c, tea.Batch(cmds...)
	}

	if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
		switch keyMsg.String() {
		case "pgup", "pgdown", "home", "end", "ctrl+up", "ctrl+down":
			// Pass to viewport for scrolling
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			cmds = append(cmds, cmd)
			return c, tea.Batch(cmds...)
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
		// Key events stop here so typing never scrolls the viewport
		return c, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	chatPanelHeight := c.height - InputTotalHeight

	chatPanel := PanelStyle.Width(c.width).Height(chatPanelHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.snap.Status == conversation.StatusActive || c.snap.Status == conversation.StatusFinalized {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
