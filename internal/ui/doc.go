// Package ui provides the user interface components for the Mise TUI.
//
// # Overview
//
// The ui package implements the visual components of Mise using the Bubble Tea
// framework and Lipgloss styling library. It follows the Model-Update-View pattern
// established by Bubble Tea.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────────────────────────────────────────┤
//	│                                                     │
//	│              Critique Panel                         │
//	│        (conversation transcript)                    │
//	│                                                     │
//	├─────────────────────────────────────────────────────┤
//	│ Input (3 lines + border)                            │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// Header: Displays the application title, the signed-in account, and the
// current conversation id. Uses a gradient background with the primary color.
//
// Footer: Shows context-aware keyboard shortcuts. The displayed shortcuts
// change based on the conversation state.
//
// Chat: The main panel showing the critique transcript and input.
// Includes a viewport for scrolling through messages and a textarea for input.
// While a menu document is uploading, the panel shows a progress bar instead.
//
// Modal: Popup dialogs built on huh forms:
//   - UploadState: choose a menu document to upload
//   - SettingsState: theme, notifications, backend URL
//
// # Styles
//
// All styles are defined in styles.go using Lipgloss and regenerated when the
// theme changes. Markdown in assistant messages is rendered from the parsed
// node tree in render.go, with chroma syntax highlighting for code blocks.
package ui
