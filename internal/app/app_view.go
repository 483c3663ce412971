package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/mise/internal/ui"
)

// updateSizes recalculates component dimensions after a resize
func (m *Model) updateSizes() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)

	chatHeight := m.height - ui.HeaderHeight - ui.FooterHeight
	if chatHeight < 1 {
		chatHeight = 1
	}
	m.chat.SetSize(m.width, chatHeight)
}

// View renders the full application
func (m *Model) View() tea.View {
	if m.width == 0 || m.height == 0 {
		return tea.NewView("")
	}

	if m.modal.IsVisible() {
		return tea.NewView(m.modal.View(m.width, m.height))
	}

	return tea.NewView(lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		m.chat.View(),
		m.footer.View(),
	))
}
