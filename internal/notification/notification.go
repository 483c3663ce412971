// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/zhubert/mise/internal/logger"
)

// NotifyFunc matches beeep.Notify and can be swapped out in tests.
type NotifyFunc func(title, message string, appIcon any) error

var notify NotifyFunc = beeep.Notify

// SetNotifier replaces the underlying notification function.
func SetNotifier(fn NotifyFunc) {
	notify = fn
}

// ResetNotifier restores the default beeep notifier.
func ResetNotifier() {
	notify = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	logger.Log("Notification: Sending notification - title=%q, message=%q", title, message)
	// Use empty string for icon - beeep handles platform defaults
	err := notify(title, message, "")
	if err != nil {
		logger.Log("Notification: Failed to send notification: %v", err)
	}
	return err
}

// ReplyReceived sends a notification that the critique assistant replied.
func ReplyReceived() error {
	return Send("Mise", "New reply to your menu critique")
}

// ReportReady sends a notification that the final report is ready.
func ReportReady() error {
	return Send("Mise", "Your final menu report is ready")
}
