package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/zhubert/mise/internal/errors"
)

func writeTempMenu(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menu.pdf")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp menu: %v", err)
	}
	return path
}

func TestUpload_Success(t *testing.T) {
	var gotField string
	var gotContent []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload" {
			t.Errorf("path = %q, want /api/upload", r.URL.Path)
		}
		file, header, err := r.FormFile("menuFile")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		gotField = header.Filename
		gotContent, _ = io.ReadAll(file)

		json.NewEncoder(w).Encode(map[string]string{
			"conversationId":  "c1",
			"initialResponse": "Looks good",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	var lastSent, lastTotal int64
	result, err := client.Upload(context.Background(), writeTempMenu(t, "menu bytes"), func(sent, total int64) {
		lastSent, lastTotal = sent, total
	})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if result.ConversationID != "c1" {
		t.Errorf("ConversationID = %q, want c1", result.ConversationID)
	}
	if result.InitialResponse != "Looks good" {
		t.Errorf("InitialResponse = %q", result.InitialResponse)
	}
	if gotField != "menu.pdf" {
		t.Errorf("uploaded filename = %q, want menu.pdf", gotField)
	}
	if string(gotContent) != "menu bytes" {
		t.Errorf("uploaded content = %q", gotContent)
	}
	if lastSent == 0 || lastSent != lastTotal {
		t.Errorf("progress incomplete: sent=%d total=%d", lastSent, lastTotal)
	}
}

func TestUpload_MissingFile(t *testing.T) {
	client := New("http://unused.invalid", nil)
	_, err := client.Upload(context.Background(), "/does/not/exist", nil)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !apperrors.Is(err, apperrors.KindIO) {
		t.Errorf("kind = %v, want KindIO", apperrors.GetKind(err))
	}
}

func TestChat_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["conversationId"] != "c1" || req["message"] != "lower prices" {
			t.Errorf("request = %v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "Done"})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	reply, err := client.Chat(context.Background(), "c1", "lower prices")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply != "Done" {
		t.Errorf("reply = %q, want Done", reply)
	}
}

func TestFinalize_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/finalize" {
			t.Errorf("path = %q, want /api/finalize", r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["conversationId"] != "c1" {
			t.Errorf("request = %v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{"finalReport": "Full report"})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	report, err := client.Finalize(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if report != "Full report" {
		t.Errorf("report = %q", report)
	}
}

func TestMe_AttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("missing X-Request-ID header")
		}
		json.NewEncoder(w).Encode(map[string]string{"email": "chef@example.com"})
	}))
	defer srv.Close()

	client := New(srv.URL, func() string { return "tok-123" })
	email, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if email != "chef@example.com" {
		t.Errorf("email = %q", email)
	}
}

func TestErrorBody_SurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "model overloaded"})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.Chat(context.Background(), "c1", "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.Is(err, apperrors.KindNetwork) {
		t.Errorf("kind = %v, want KindNetwork", apperrors.GetKind(err))
	}
	if !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("error %q missing backend message", err)
	}
}

func TestErrorWithoutBody_UsesStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.Finalize(context.Background(), "c1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error %q missing status", err)
	}
}

func TestUnauthorized_MapsToAuthKind(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
		}))

		client := New(srv.URL, func() string { return "stale" })
		_, err := client.Chat(context.Background(), "c1", "hi")
		srv.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", status)
		}
		if !apperrors.Is(err, apperrors.KindAuth) {
			t.Errorf("status %d: kind = %v, want KindAuth", status, apperrors.GetKind(err))
		}
	}
}

func TestConnectionRefused_MapsToNetworkKind(t *testing.T) {
	// Closed server: the transport itself fails.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(srv.URL, nil)
	_, err := client.Chat(context.Background(), "c1", "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.Is(err, apperrors.KindNetwork) {
		t.Errorf("kind = %v, want KindNetwork", apperrors.GetKind(err))
	}
}

func TestNoTokenMeansNoAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want empty", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "ok"})
	}))
	defer srv.Close()

	client := New(srv.URL, func() string { return "" })
	if _, err := client.Chat(context.Background(), "c1", "hi"); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
}
