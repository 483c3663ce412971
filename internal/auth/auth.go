// Package auth implements the browser-based login flow for the
// authenticated backend variant. The client starts a loopback HTTP
// server, sends the user's browser to the backend's Google sign-in
// page with a redirect back to that server, and waits for the backend
// to deliver a bearer token on the redirect.
package auth

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"time"

	apperrors "github.com/zhubert/mise/internal/errors"
	"github.com/zhubert/mise/internal/logger"
)

const (
	callbackPath = "/callback"

	// DefaultTimeout bounds how long Login waits for the user to finish
	// signing in before giving up.
	DefaultTimeout = 3 * time.Minute
)

// Result is the outcome of a completed login.
type Result struct {
	Token string
	Email string
}

// LoginURL builds the backend sign-in URL that redirects back to the
// loopback callback server.
func LoginURL(backendURL, redirectURI string) string {
	return fmt.Sprintf("%s/auth/google?redirect_uri=%s", backendURL, url.QueryEscape(redirectURI))
}

// CallbackServer receives the post-login redirect on a loopback port.
type CallbackServer struct {
	tokenChan chan Result
	errChan   chan error
	server    *http.Server
	addr      string
}

// NewCallbackServer creates an unstarted callback server.
func NewCallbackServer() *CallbackServer {
	return &CallbackServer{
		tokenChan: make(chan Result, 1),
		errChan:   make(chan error, 1),
	}
}

// Start listens on an ephemeral loopback port and serves the callback
// endpoint in the background.
func (s *CallbackServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, s.handleCallback)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return apperrors.E(apperrors.Op("auth.Start"), apperrors.KindNetwork, "failed to start login callback server", err)
	}
	s.addr = ln.Addr().String()

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.trySendError(err)
		}
	}()

	logger.Log("Auth: callback server listening on %s", s.addr)
	return nil
}

// Stop shuts down the callback server.
func (s *CallbackServer) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(ctx)
	}
}

// RedirectURI returns the loopback URI the backend should redirect to.
// Valid after Start.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://%s%s", s.addr, callbackPath)
}

// Wait blocks until the redirect arrives, the server fails, the timeout
// elapses, or ctx is cancelled.
func (s *CallbackServer) Wait(ctx context.Context, timeout time.Duration) (Result, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-s.tokenChan:
		return res, nil
	case err := <-s.errChan:
		return Result{}, apperrors.E(apperrors.Op("auth.Wait"), apperrors.KindAuth, "login failed", err)
	case <-timer.C:
		return Result{}, apperrors.E(apperrors.Op("auth.Wait"), apperrors.KindTimeout, "timed out waiting for login, did you complete the sign-in in your browser?")
	case <-ctx.Done():
		return Result{}, apperrors.E(apperrors.Op("auth.Wait"), apperrors.KindAuth, "login cancelled", ctx.Err())
	}
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	if errMsg := q.Get("error"); errMsg != "" {
		s.trySendError(fmt.Errorf("backend reported: %s", errMsg))
		s.renderResponse(w, false, "Sign-in failed: "+errMsg)
		return
	}

	token := q.Get("token")
	if token == "" {
		s.trySendError(fmt.Errorf("no token in callback"))
		s.renderResponse(w, false, "No token received from the backend")
		return
	}

	// Non-blocking send in case the browser replays the redirect.
	select {
	case s.tokenChan <- Result{Token: token, Email: q.Get("email")}:
	default:
	}
	s.renderResponse(w, true, "You are signed in. You can close this window and return to the terminal.")
}

func (s *CallbackServer) trySendError(err error) {
	select {
	case s.errChan <- err:
	default:
	}
}

func (s *CallbackServer) renderResponse(w http.ResponseWriter, success bool, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	title := "Sign-in Failed"
	if success {
		title = "Signed In"
	}
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>mise - %s</title></head>
<body style="font-family: sans-serif; background: #1a1a1a; color: #eee; text-align: center; padding-top: 20vh;">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`, title, title, html.EscapeString(message))
}

// Login runs the full interactive flow: start the callback server, open
// the user's browser at the backend sign-in page, and wait for the token.
func Login(ctx context.Context, backendURL string) (Result, error) {
	srv := NewCallbackServer()
	if err := srv.Start(); err != nil {
		return Result{}, err
	}
	defer srv.Stop()

	loginURL := LoginURL(backendURL, srv.RedirectURI())
	logger.Info("Auth: opening browser at %s", loginURL)
	if err := openBrowser(loginURL); err != nil {
		logger.Warn("Auth: could not open browser: %v", err)
	}

	return srv.Wait(ctx, DefaultTimeout)
}

// openBrowser launches the system browser at the given URL.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
