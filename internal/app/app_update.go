package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/mise/internal/clipboard"
	"github.com/zhubert/mise/internal/conversation"
	"github.com/zhubert/mise/internal/keys"
	"github.com/zhubert/mise/internal/logger"
	"github.com/zhubert/mise/internal/notification"
	"github.com/zhubert/mise/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that
// routes all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.KeyPressMsg:
		if m.modal.IsVisible() {
			return m.handleModalKey(msg)
		}
		if model, cmd, handled := m.handleKeyPress(msg); handled {
			return model, cmd
		}

	case ui.StopwatchTickMsg:
		// Refresh progress and the stopwatch while an operation is in flight
		if m.controller.Snapshot().Busy() {
			m.refresh()
			cmds = append(cmds, ui.StopwatchTick())
		}
		return m, tea.Batch(cmds...)

	case OpDoneMsg:
		return m.handleOpDone()

	case LoginResultMsg:
		return m.handleLoginResult(msg)

	case AccountMsg:
		if msg.Err != nil {
			logger.Warn("App: account lookup failed: %v", msg.Err)
			return m, nil
		}
		m.config.SetAccountEmail(msg.Email)
		if err := m.config.Save(); err != nil {
			logger.Error("App: failed to persist account email: %v", err)
		}
		m.header.SetAccount(msg.Email)
		return m, nil

	case CopyResultMsg:
		if msg.Err != nil {
			logger.Warn("App: copy failed: %v", msg.Err)
		} else {
			m.flash = "report copied to clipboard"
			m.footer.SetFlash(m.flash)
			cmds = append(cmds, clearFlashAfter(2*time.Second))
		}
		return m, tea.Batch(cmds...)

	case FlashClearMsg:
		m.flash = ""
		m.footer.SetFlash("")
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles global shortcuts. Returns handled=false for keys
// that should fall through to the chat panel.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case keys.CtrlC:
		return m, tea.Quit, true

	case "q":
		// Only before a conversation exists; otherwise "q" is input text
		if m.snap.Status == conversation.StatusIdle {
			return m, tea.Quit, true
		}
		return m, nil, false

	case keys.CtrlU:
		if m.snap.Busy() {
			return m, nil, true
		}
		m.modal.Show(ui.NewUploadState())
		return m, nil, true

	case keys.CtrlT:
		if m.snap.Busy() {
			return m, nil, true
		}
		m.modal.Show(ui.NewSettingsState(
			string(ui.CurrentThemeName()),
			m.config.GetBackendURL(),
			m.config.GetNotificationsEnabled(),
		))
		return m, nil, true

	case keys.CtrlR:
		m.refresh()
		return m, tea.Batch(m.finalize(), ui.StopwatchTick()), true

	case keys.CtrlY:
		if report := m.snap.FinalReport; report != "" {
			return m, copyReport(report), true
		}
		return m, nil, true

	case keys.CtrlL:
		if m.config.IsAuthEnabled() && !m.snap.Busy() {
			m.flash = "waiting for browser sign-in..."
			m.footer.SetFlash(m.flash)
			return m, m.login(), true
		}
		return m, nil, true

	case keys.Enter:
		text := m.chat.GetInput()
		m.chat.ClearInput()
		m.refresh()
		return m, tea.Batch(m.sendMessage(text), ui.StopwatchTick()), true
	}

	return m, nil, false
}

// handleModalKey handles keys while a modal is open
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape:
		if s, ok := m.modal.State.(*ui.SettingsState); ok {
			// Revert any live-previewed theme
			ui.SetThemeByName(s.OriginalTheme)
		}
		m.modal.Hide()
		return m, nil

	case keys.Enter:
		switch s := m.modal.State.(type) {
		case *ui.UploadState:
			if err := s.Validate(); err != nil {
				m.modal.SetError(err.Error())
				return m, nil
			}
			m.controller.SelectFile(s.Path())
			m.modal.Hide()
			m.refresh()
			return m, tea.Batch(m.startUpload(), ui.StopwatchTick())

		case *ui.SettingsState:
			return m.applySettings(s)
		}
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// applySettings persists the settings form and closes the modal
func (m *Model) applySettings(s *ui.SettingsState) (tea.Model, tea.Cmd) {
	ui.SetThemeByName(s.SelectedTheme())
	m.config.SetTheme(s.SelectedTheme())
	m.config.SetNotificationsEnabled(s.NotificationsEnabled())
	if url := s.BackendURL(); url != "" {
		m.config.SetBackendURL(url)
	}
	if err := m.config.Save(); err != nil {
		m.modal.SetError("could not save settings")
		logger.Error("App: failed to save settings: %v", err)
		return m, nil
	}
	m.modal.Hide()
	m.refresh()
	return m, nil
}

// handleOpDone refreshes state after a controller operation and fires
// desktop notifications for completed replies and reports.
func (m *Model) handleOpDone() (tea.Model, tea.Cmd) {
	prev := m.snap
	m.refresh()

	if m.config.GetNotificationsEnabled() && m.snap.Err == "" {
		switch {
		case prev.Status == conversation.StatusFinalizing && m.snap.Status == conversation.StatusFinalized:
			go notification.ReportReady()
		case (prev.Status == conversation.StatusAwaitingReply || prev.Status == conversation.StatusUploading) &&
			len(m.snap.Messages) > len(prev.Messages):
			go notification.ReplyReceived()
		}
	}

	return m, nil
}

// handleLoginResult stores the received credential
func (m *Model) handleLoginResult(msg LoginResultMsg) (tea.Model, tea.Cmd) {
	m.footer.SetFlash("")
	m.flash = ""

	if msg.Err != nil {
		logger.Warn("App: login failed: %v", msg.Err)
		m.footer.SetContext(m.snap.Status, true, m.snap.FinalReport != "", "login failed, try again")
		return m, nil
	}

	m.config.SetBearerToken(msg.Result.Token)
	if msg.Result.Email != "" {
		m.config.SetAccountEmail(msg.Result.Email)
	}
	if err := m.config.Save(); err != nil {
		logger.Error("App: failed to persist credentials: %v", err)
	}
	m.header.SetAccount(m.config.GetAccountEmail())
	m.flash = "signed in"
	m.footer.SetFlash(m.flash)

	cmds := []tea.Cmd{clearFlashAfter(2 * time.Second)}
	if msg.Result.Email == "" {
		cmds = append(cmds, m.fetchAccount())
	}
	return m, tea.Batch(cmds...)
}

// copyReport copies the final report text to the clipboard
func copyReport(report string) tea.Cmd {
	return func() tea.Msg {
		return CopyResultMsg{Err: clipboard.WriteText(report)}
	}
}

// clearFlashAfter clears the transient footer line after a delay
func clearFlashAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return FlashClearMsg{}
	})
}
