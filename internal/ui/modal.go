package ui

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := ModalTitleStyle.Render(m.State.Title()) + "\n" + m.State.Render()

	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	content += "\n" + ModalHelpStyle.Render(m.State.Help())

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// =============================================================================
// UploadState - State for the upload menu modal
// =============================================================================

type UploadState struct {
	form *huh.Form
	path string
}

func NewUploadState() *UploadState {
	s := &UploadState{}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Menu document").
			Description("Path to the menu file to critique").
			Placeholder("~/menus/dinner.pdf").
			CharLimit(ModalInputCharLimit).
			Value(&s.path),
	)).
		WithTheme(FormTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 6)

	initHuhForm(s.form)
	return s
}

func (*UploadState) modalState() {}

func (s *UploadState) Title() string { return "Upload Menu" }

func (s *UploadState) Help() string {
	return "Enter to upload, Esc to cancel"
}

func (s *UploadState) Render() string {
	return s.form.View()
}

func (s *UploadState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Path returns the entered file path with ~ and whitespace resolved.
func (s *UploadState) Path() string {
	path := strings.TrimSpace(s.path)
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	return path
}

// Validate checks that the entered path points at a readable file.
func (s *UploadState) Validate() error {
	path := s.Path()
	if path == "" {
		return fmt.Errorf("enter a file path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// =============================================================================
// SettingsState - State for the settings modal
// =============================================================================

type SettingsState struct {
	form *huh.Form

	selectedTheme        string
	OriginalTheme        string
	backendURL           string
	notificationsEnabled bool
}

func NewSettingsState(currentTheme, backendURL string, notificationsEnabled bool) *SettingsState {
	s := &SettingsState{
		selectedTheme:        currentTheme,
		OriginalTheme:        currentTheme,
		backendURL:           backendURL,
		notificationsEnabled: notificationsEnabled,
	}

	themes := ThemeNames()
	themeOptions := make([]huh.Option[string], len(themes))
	for i, name := range themes {
		themeOptions[i] = huh.NewOption(GetTheme(name).Name, string(name))
	}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.selectedTheme),
		huh.NewInput().
			Title("Backend URL").
			Description("Critique service endpoint").
			Placeholder("http://localhost:8080").
			CharLimit(ModalInputCharLimit).
			Value(&s.backendURL),
		huh.NewConfirm().
			Title("Desktop notifications").
			Affirmative("On").
			Negative("Off").
			Value(&s.notificationsEnabled),
	)).
		WithTheme(FormTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 6).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}

func (*SettingsState) modalState() {}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab to move, Enter to save, Esc to cancel"
}

func (s *SettingsState) Render() string {
	return s.form.View()
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)

	// Live-preview the theme as the selection moves
	if s.selectedTheme != string(CurrentThemeName()) {
		SetThemeByName(s.selectedTheme)
	}

	return s, cmd
}

// SelectedTheme returns the chosen theme name.
func (s *SettingsState) SelectedTheme() string { return s.selectedTheme }

// BackendURL returns the entered backend URL.
func (s *SettingsState) BackendURL() string { return strings.TrimSpace(s.backendURL) }

// NotificationsEnabled returns the notifications toggle value.
func (s *SettingsState) NotificationsEnabled() bool { return s.notificationsEnabled }
