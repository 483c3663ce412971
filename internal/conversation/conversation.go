// Package conversation owns the lifecycle of one menu-critique conversation:
// which actions are valid in which state, the append-only transcript, the
// current-error slot, and upload progress. All mutation goes through the
// Controller, so illegal state combinations (uploading and finalizing at
// once, two outstanding network calls) are unrepresentable.
package conversation

import "time"

// Status enumerates the conversation lifecycle states.
type Status int

const (
	// StatusIdle means no conversation exists yet
	StatusIdle Status = iota
	// StatusUploading means the menu document upload is in flight
	StatusUploading
	// StatusActive means the conversation is ready for user input
	StatusActive
	// StatusAwaitingReply means a chat message is in flight
	StatusAwaitingReply
	// StatusFinalizing means the final report request is in flight
	StatusFinalizing
	// StatusFinalized means a final report has been produced; sending
	// another message returns to StatusActive and clears the report
	StatusFinalized
)

// String returns a human-readable name for the status
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusUploading:
		return "Uploading"
	case StatusActive:
		return "Active"
	case StatusAwaitingReply:
		return "AwaitingReply"
	case StatusFinalizing:
		return "Finalizing"
	case StatusFinalized:
		return "Finalized"
	default:
		return "Unknown"
	}
}

// busy reports whether a network call is outstanding in this status. At most
// one of upload, chat and finalize can be in flight at any time; the three
// in-flight statuses share this single guard.
func (s Status) busy() bool {
	return s == StatusUploading || s == StatusAwaitingReply || s == StatusFinalizing
}

// Sender identifies who authored a message.
type Sender int

const (
	// SenderUser is the local user. User content is always rendered
	// verbatim, never interpreted as markup.
	SenderUser Sender = iota
	// SenderAI is the remote analysis service. AI content may contain
	// markup-like syntax and goes through the markdown renderer.
	SenderAI
)

// String returns a human-readable name for the sender
func (s Sender) String() string {
	if s == SenderUser {
		return "user"
	}
	return "ai"
}

// Message is one turn of the conversation. Messages are append-only: once
// in the log they are never mutated or removed.
type Message struct {
	Sender  Sender
	Content string
	At      time.Time
}

// Session is the conversation identity and lifecycle state. ID is empty
// until the backend accepts an upload and is reset whenever a new upload
// begins.
type Session struct {
	ID          string
	Status      Status
	FinalReport string
}

// Snapshot is a read-only copy of controller state for the display layer.
// The messages slice is a copy; holding a Snapshot never aliases live state.
type Snapshot struct {
	Status         Status
	ConversationID string
	FinalReport    string
	Messages       []Message
	Err            string
	UploadPercent  int
	SelectedFile   string
}

// Busy reports whether a network call is outstanding.
func (s Snapshot) Busy() bool {
	return s.Status.busy()
}
