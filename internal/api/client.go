// Package api implements the HTTP contract with the menu-analysis backend.
// Timeout and retry behavior are delegated entirely to the underlying
// http.Client; this package only shapes requests and interprets responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	apperrors "github.com/zhubert/mise/internal/errors"
	"github.com/zhubert/mise/internal/logger"
	"github.com/zhubert/mise/internal/upload"
)

// UploadFieldName is the multipart form field the backend expects the menu
// document under.
const UploadFieldName = "menuFile"

// TokenFunc supplies the current bearer credential, or empty string when the
// request should go out unauthenticated.
type TokenFunc func() string

// Client talks to the backend. The zero http.Client is usable; its defaults
// govern timeouts.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
	log     *slog.Logger
}

// UploadResult is the backend's answer to a successful upload.
type UploadResult struct {
	ConversationID  string `json:"conversationId"`
	InitialResponse string `json:"initialResponse"`
}

type chatRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type finalizeRequest struct {
	ConversationID string `json:"conversationId"`
}

type finalizeResponse struct {
	FinalReport string `json:"finalReport"`
}

type userResponse struct {
	Email string `json:"email"`
}

type errorBody struct {
	Error string `json:"error"`
}

// New creates a client for the given backend base URL. token may be nil for
// the unauthenticated variant.
func New(baseURL string, token TokenFunc) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		token:   token,
		log:     logger.ComponentLogger("API"),
	}
}

// SetHTTPClient replaces the underlying transport. Used by tests.
func (c *Client) SetHTTPClient(h *http.Client) {
	c.http = h
}

// Upload posts the menu document as a multipart form and returns the new
// conversation. onProgress receives byte-level samples as the transport
// consumes the request body; it may be nil.
func (c *Client) Upload(ctx context.Context, filePath string, onProgress upload.ProgressFunc) (UploadResult, error) {
	var result UploadResult

	f, err := os.Open(filePath)
	if err != nil {
		return result, apperrors.E(apperrors.Op("api.Upload"), apperrors.KindIO, fmt.Sprintf("cannot open %s", filePath), err)
	}
	defer f.Close()

	// Buffer the whole form so the total size is known before the request
	// starts; menu documents are small.
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(UploadFieldName, filepath.Base(filePath))
	if err != nil {
		return result, apperrors.E(apperrors.Op("api.Upload"), apperrors.KindIO, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return result, apperrors.E(apperrors.Op("api.Upload"), apperrors.KindIO, fmt.Sprintf("cannot read %s", filePath), err)
	}
	if err := mw.Close(); err != nil {
		return result, apperrors.E(apperrors.Op("api.Upload"), apperrors.KindIO, err)
	}

	total := int64(body.Len())
	reader := upload.NewProgressReader(&body, total, onProgress)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", reader)
	if err != nil {
		return result, apperrors.E(apperrors.Op("api.Upload"), apperrors.KindNetwork, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = total

	c.log.Debug("uploading menu document", "file", filepath.Base(filePath), "bytes", total)
	if err := c.do(req, apperrors.Op("api.Upload"), &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

// Chat sends one follow-up message and returns the AI reply.
func (c *Client) Chat(ctx context.Context, conversationID, message string) (string, error) {
	var resp chatResponse
	err := c.postJSON(ctx, "/api/chat", apperrors.Op("api.Chat"),
		chatRequest{ConversationID: conversationID, Message: message}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}

// Finalize asks the backend for the consolidated report.
func (c *Client) Finalize(ctx context.Context, conversationID string) (string, error) {
	var resp finalizeResponse
	err := c.postJSON(ctx, "/api/finalize", apperrors.Op("api.Finalize"),
		finalizeRequest{ConversationID: conversationID}, &resp)
	if err != nil {
		return "", err
	}
	return resp.FinalReport, nil
}

// Me returns the email of the account the stored credential belongs to.
// Only meaningful in the authenticated variant.
func (c *Client) Me(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/user/me", nil)
	if err != nil {
		return "", apperrors.E(apperrors.Op("api.Me"), apperrors.KindNetwork, err)
	}

	var resp userResponse
	if err := c.do(req, apperrors.Op("api.Me"), &resp); err != nil {
		return "", err
	}
	return resp.Email, nil
}

// postJSON issues a JSON POST and decodes the success body into out.
func (c *Client) postJSON(ctx context.Context, path string, op apperrors.Op, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return apperrors.E(op, apperrors.KindNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return apperrors.E(op, apperrors.KindNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, op, out)
}

// do executes a prepared request, attaching the credential and a correlation
// id, and decodes the response. Failure bodies of shape {error} surface
// verbatim; 401/403 map to the auth kind so callers can force a logout.
func (c *Client) do(req *http.Request, op apperrors.Op, out interface{}) error {
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "op", string(op), "requestID", requestID, "error", err)
		return apperrors.E(op, apperrors.KindNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.log.Warn("credential rejected", "op", string(op), "status", resp.StatusCode, "requestID", requestID)
		return apperrors.E(op, apperrors.KindAuth, readErrorBody(resp))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.E(op, apperrors.KindNetwork, readErrorBody(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.E(op, apperrors.KindNetwork, fmt.Errorf("malformed response: %w", err))
	}
	return nil
}

// readErrorBody extracts the backend's {error} message, falling back to the
// HTTP status text when no usable body is present.
func readErrorBody(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(data) > 0 {
		var body errorBody
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			return fmt.Errorf("%s", body.Error)
		}
	}
	return fmt.Errorf("%s", resp.Status)
}
