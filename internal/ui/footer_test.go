package ui

import (
	"strings"
	"testing"

	"github.com/zhubert/mise/internal/conversation"
)

func TestFooterBindingsByStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  conversation.Status
		want    []string
		notWant []string
	}{
		{
			name:    "idle shows upload",
			status:  conversation.StatusIdle,
			want:    []string{"ctrl+u", "upload menu", "ctrl+t"},
			notWant: []string{"final report", "send"},
		},
		{
			name:    "active shows send and finalize",
			status:  conversation.StatusActive,
			want:    []string{"enter", "send", "ctrl+r", "final report"},
			notWant: []string{"upload menu"},
		},
		{
			name:    "busy hides actions",
			status:  conversation.StatusAwaitingReply,
			want:    []string{"scroll", "quit"},
			notWant: []string{"send", "final report", "upload"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFooter()
			f.SetWidth(120)
			f.SetContext(tt.status, false, false, "")
			view := f.View()
			for _, want := range tt.want {
				if !strings.Contains(view, want) {
					t.Errorf("footer missing %q:\n%s", want, view)
				}
			}
			for _, not := range tt.notWant {
				if strings.Contains(view, not) {
					t.Errorf("footer unexpectedly shows %q:\n%s", not, view)
				}
			}
		})
	}
}

func TestFooterFinalizedShowsCopyOnlyWithReport(t *testing.T) {
	f := NewFooter()
	f.SetWidth(120)

	f.SetContext(conversation.StatusFinalized, false, true, "")
	if !strings.Contains(f.View(), "copy report") {
		t.Error("footer missing copy shortcut when report present")
	}

	f.SetContext(conversation.StatusFinalized, false, false, "")
	if strings.Contains(f.View(), "copy report") {
		t.Error("footer shows copy shortcut without a report")
	}
}

func TestFooterLoginShownOnlyWithAuth(t *testing.T) {
	f := NewFooter()
	f.SetWidth(120)

	f.SetContext(conversation.StatusIdle, true, false, "")
	if !strings.Contains(f.View(), "log in") {
		t.Error("footer missing login shortcut with auth enabled")
	}

	f.SetContext(conversation.StatusIdle, false, false, "")
	if strings.Contains(f.View(), "log in") {
		t.Error("footer shows login shortcut with auth disabled")
	}
}

func TestFooterErrorReplacesShortcuts(t *testing.T) {
	f := NewFooter()
	f.SetWidth(120)
	f.SetContext(conversation.StatusActive, false, false, "message send failed: boom")

	view := f.View()
	if !strings.Contains(view, "message send failed: boom") {
		t.Errorf("footer missing error text:\n%s", view)
	}
	if strings.Contains(view, "final report") {
		t.Errorf("footer shows shortcuts alongside error:\n%s", view)
	}
}
