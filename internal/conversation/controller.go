package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/zhubert/mise/internal/api"
	apperrors "github.com/zhubert/mise/internal/errors"
	"github.com/zhubert/mise/internal/logger"
	"github.com/zhubert/mise/internal/upload"
)

// FinalReportMarker is the transcript entry recorded when a final report
// has been generated; the report itself lives on the session.
const FinalReportMarker = "Final report generated."

// Client is the backend surface the controller drives. *api.Client satisfies
// it; tests substitute fakes.
type Client interface {
	Upload(ctx context.Context, filePath string, onProgress upload.ProgressFunc) (api.UploadResult, error)
	Chat(ctx context.Context, conversationID, message string) (string, error)
	Finalize(ctx context.Context, conversationID string) (string, error)
}

// Controller orchestrates the conversation lifecycle. Operations run
// synchronously on the caller's goroutine; the mutex is released around
// network calls so reads (Snapshot) stay responsive, and the in-flight
// statuses themselves guard against overlapping operations.
//
// Per the propagation policy, operations do not return errors: every
// failure, local or remote, lands in the error slot and is visible in the
// next Snapshot.
type Controller struct {
	mu      sync.Mutex
	client  Client
	tracker *upload.Tracker

	session      Session
	messages     []Message
	errMsg       string
	selectedFile string

	authEnabled    bool
	onForcedLogout func()
}

// New creates a controller in the Idle state.
func New(client Client) *Controller {
	return &Controller{
		client:  client,
		tracker: upload.NewTracker(),
	}
}

// EnableAuth switches on the authenticated variant. onForcedLogout is
// invoked (outside the lock) when the backend rejects the stored
// credential, so the caller can clear it.
func (c *Controller) EnableAuth(onForcedLogout func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authEnabled = true
	c.onForcedLogout = onForcedLogout
}

// Snapshot returns a copy of the current state for display.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	msgs := make([]Message, len(c.messages))
	copy(msgs, c.messages)

	return Snapshot{
		Status:         c.session.Status,
		ConversationID: c.session.ID,
		FinalReport:    c.session.FinalReport,
		Messages:       msgs,
		Err:            c.errMsg,
		UploadPercent:  c.tracker.Percent(),
		SelectedFile:   c.selectedFile,
	}
}

// SelectFile records the pending local file for the next upload and resets
// the progress display. Ignored while a network call is outstanding.
func (c *Controller) SelectFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Status.busy() {
		return
	}
	c.selectedFile = path
	c.tracker.Reset()
	logger.Log("Conversation: file selected: %s", path)
}

// StartUpload uploads the selected menu document and starts a new
// conversation. Starting an upload abandons any previous conversation: the
// transcript, conversation id and final report are cleared before the
// network call begins.
func (c *Controller) StartUpload(ctx context.Context) {
	c.mu.Lock()
	if c.session.Status.busy() {
		c.mu.Unlock()
		logger.Log("Conversation: upload ignored, operation already in flight")
		return
	}

	c.errMsg = ""
	if c.selectedFile == "" {
		c.fail(apperrors.NoFileSelected())
		c.mu.Unlock()
		return
	}

	file := c.selectedFile
	c.messages = nil
	c.session = Session{Status: StatusUploading}
	c.tracker.Reset()
	c.mu.Unlock()

	logger.Info("Conversation: uploading %s", file)
	result, err := c.client.Upload(ctx, file, c.tracker.Observe)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracker.Reset()

	if err != nil {
		c.session.Status = StatusIdle
		c.handleCallError(err, apperrors.UploadFailed)
		return
	}

	c.session.ID = result.ConversationID
	c.session.Status = StatusActive
	c.selectedFile = ""
	c.append(SenderAI, result.InitialResponse)
	logger.WithConversation(result.ConversationID).Info("conversation started")
}

// SendMessage sends one follow-up message. The user turn is appended
// optimistically before the network call and is never retracted, so the
// transcript always reflects what was sent even when delivery fails.
// Calling while a chat or finalize is already outstanding is a no-op.
func (c *Controller) SendMessage(ctx context.Context, text string) {
	c.mu.Lock()
	if c.session.Status.busy() {
		c.mu.Unlock()
		logger.Log("Conversation: send ignored, operation already in flight")
		return
	}

	c.errMsg = ""
	text = strings.TrimSpace(text)
	if text == "" {
		c.fail(apperrors.EmptyMessage())
		c.mu.Unlock()
		return
	}
	if c.session.ID == "" || (c.session.Status != StatusActive && c.session.Status != StatusFinalized) {
		c.fail(apperrors.NoActiveConversation())
		c.mu.Unlock()
		return
	}

	id := c.session.ID
	c.append(SenderUser, text)
	c.session.FinalReport = ""
	c.session.Status = StatusAwaitingReply
	c.mu.Unlock()

	reply, err := c.client.Chat(ctx, id, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Status = StatusActive

	if err != nil {
		c.handleCallError(err, apperrors.ChatFailed)
		return
	}

	c.append(SenderAI, reply)
	logger.WithConversation(id).Debug("reply received")
}

// Finalize asks the backend for the consolidated report. Valid only from
// the Active state with a conversation present; overlapping calls share
// the chat guard, so a chat and a finalize can never be in flight at once.
func (c *Controller) Finalize(ctx context.Context) {
	c.mu.Lock()
	if c.session.Status.busy() {
		c.mu.Unlock()
		logger.Log("Conversation: finalize ignored, operation already in flight")
		return
	}

	c.errMsg = ""
	if c.session.ID == "" || c.session.Status != StatusActive {
		c.fail(apperrors.NothingToFinalize())
		c.mu.Unlock()
		return
	}

	id := c.session.ID
	c.session.FinalReport = ""
	c.session.Status = StatusFinalizing
	c.mu.Unlock()

	report, err := c.client.Finalize(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.session.Status = StatusActive
		c.handleCallError(err, apperrors.FinalizeFailed)
		return
	}

	c.session.FinalReport = report
	c.session.Status = StatusFinalized
	c.append(SenderAI, FinalReportMarker)
	logger.WithConversation(id).Info("final report generated")
}

// append adds one turn to the transcript. Caller holds the lock.
func (c *Controller) append(sender Sender, content string) {
	c.messages = append(c.messages, Message{
		Sender:  sender,
		Content: content,
		At:      time.Now(),
	})
}

// fail records an error in the error slot. Caller holds the lock.
func (c *Controller) fail(err error) {
	c.errMsg = apperrors.Message(err)
	logger.Warn("Conversation: %v", err)
}

// handleCallError records a failed network call, distinguishing a rejected
// credential (forced logout) from an ordinary network failure. wrap adds
// the action-specific label. Caller holds the lock.
func (c *Controller) handleCallError(err error, wrap func(error) error) {
	if c.authEnabled && apperrors.Is(err, apperrors.KindAuth) {
		logger.Warn("Conversation: credential rejected, forcing logout")
		c.session = Session{Status: StatusIdle}
		c.messages = nil
		c.errMsg = apperrors.Message(apperrors.LoginRequired())
		if c.onForcedLogout != nil {
			// Release the lock for the callback; it may touch config.
			logout := c.onForcedLogout
			c.mu.Unlock()
			logout()
			c.mu.Lock()
		}
		return
	}

	c.fail(wrap(err))
}
