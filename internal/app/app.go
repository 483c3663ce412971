// Package app wires the conversation controller, backend client and UI
// components into the main Bubble Tea model.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/mise/internal/api"
	"github.com/zhubert/mise/internal/auth"
	"github.com/zhubert/mise/internal/config"
	"github.com/zhubert/mise/internal/conversation"
	"github.com/zhubert/mise/internal/logger"
	"github.com/zhubert/mise/internal/ui"
)

// Model is the main Bubble Tea model
type Model struct {
	config     *config.Config
	version    string // App version (injected at build time)
	client     *api.Client
	controller *conversation.Controller
	header     *ui.Header
	footer     *ui.Footer
	chat       *ui.Chat
	modal      *ui.Modal

	width  int
	height int

	snap  conversation.Snapshot
	flash string // transient success line (copy, login)
}

// OpDoneMsg is sent when a controller operation (upload, chat, finalize)
// has finished; the new state is read from the controller's snapshot.
type OpDoneMsg struct{}

// LoginResultMsg is sent when the browser login flow completes
type LoginResultMsg struct {
	Result auth.Result
	Err    error
}

// CopyResultMsg is sent when copying the final report finishes
type CopyResultMsg struct {
	Err error
}

// AccountMsg carries the account email fetched after login
type AccountMsg struct {
	Email string
	Err   error
}

// FlashClearMsg clears the transient success line
type FlashClearMsg struct{}

// New creates a new app model
func New(cfg *config.Config, version string) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	client := api.New(cfg.GetBackendURL(), func() string {
		return cfg.GetBearerToken()
	})

	controller := conversation.New(client)
	if cfg.IsAuthEnabled() {
		controller.EnableAuth(func() {
			cfg.ClearCredentials()
			if err := cfg.Save(); err != nil {
				logger.Error("App: failed to persist cleared credentials: %v", err)
			}
		})
	}

	m := &Model{
		config:     cfg,
		version:    version,
		client:     client,
		controller: controller,
		header:     ui.NewHeader(),
		footer:     ui.NewFooter(),
		chat:       ui.NewChat(),
		modal:      ui.NewModal(),
	}

	m.header.SetAccount(cfg.GetAccountEmail())
	m.refresh()
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// refresh pulls the current snapshot into the UI components
func (m *Model) refresh() {
	m.snap = m.controller.Snapshot()
	m.chat.SetSnapshot(m.snap)
	m.header.SetConversationID(m.snap.ConversationID)
	m.footer.SetContext(m.snap.Status, m.config.IsAuthEnabled(), m.snap.FinalReport != "", m.footerText())
}

// footerText returns the error or flash line for the footer, error first.
func (m *Model) footerText() string {
	if m.snap.Err != "" {
		return m.snap.Err
	}
	return ""
}

// startUpload runs the upload on a background goroutine
func (m *Model) startUpload() tea.Cmd {
	return func() tea.Msg {
		m.controller.StartUpload(context.Background())
		return OpDoneMsg{}
	}
}

// sendMessage runs the chat turn on a background goroutine
func (m *Model) sendMessage(text string) tea.Cmd {
	return func() tea.Msg {
		m.controller.SendMessage(context.Background(), text)
		return OpDoneMsg{}
	}
}

// finalize runs report generation on a background goroutine
func (m *Model) finalize() tea.Cmd {
	return func() tea.Msg {
		m.controller.Finalize(context.Background())
		return OpDoneMsg{}
	}
}

// login runs the browser login flow on a background goroutine
func (m *Model) login() tea.Cmd {
	backendURL := m.config.GetBackendURL()
	return func() tea.Msg {
		res, err := auth.Login(context.Background(), backendURL)
		return LoginResultMsg{Result: res, Err: err}
	}
}

// fetchAccount asks the service who the stored credential belongs to.
// Used when the login redirect did not carry an email.
func (m *Model) fetchAccount() tea.Cmd {
	return func() tea.Msg {
		email, err := m.client.Me(context.Background())
		return AccountMsg{Email: email, Err: err}
	}
}
