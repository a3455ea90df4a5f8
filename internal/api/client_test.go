package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestCreateSessionKeepsCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/session/create", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "session_id": "sess-1"}`))
	})
	mux.HandleFunc("/api/documents/list", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if err != nil || cookie.Value != "abc123" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success": false, "error": "Invalid session"}`))
			return
		}
		w.Write([]byte(`{"success": true, "documents": [], "total": 0}`))
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	resp, err := c.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if resp.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", resp.SessionID)
	}

	// The session cookie must ride along on the next call.
	if _, err := c.ListDocuments(ctx); err != nil {
		t.Fatalf("ListDocuments with session cookie: %v", err)
	}
}

func TestErrorBodyDecodedOnBadStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success": false, "error": "Question cannot be empty"}`))
	}))

	_, err := c.Ask(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for non-success response")
	}
	msg, ok := RemoteMessage(err)
	if !ok || msg != "Question cannot be empty" {
		t.Errorf("RemoteMessage = (%q, %v), want server error text", msg, ok)
	}
}

func TestNetworkFailureIsNotRemote(t *testing.T) {
	c, err := New("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.CreateSession(context.Background())
	if err == nil {
		t.Fatal("expected network error")
	}
	if _, ok := RemoteMessage(err); ok {
		t.Error("network failure should not carry a server-reported message")
	}
}

func TestUploadDocumentsMultipart(t *testing.T) {
	var gotFiles []string
	var gotLinks []string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		for _, fh := range r.MultipartForm.File["files"] {
			gotFiles = append(gotFiles, fh.Filename)
		}
		gotLinks = r.MultipartForm.Value["wiki_links"]

		w.Write([]byte(`{"success": true, "uploaded_files": 2, "wiki_links": 1, "total_documents": 3}`))
	}))

	files := []FileUpload{
		{Name: "notes.txt", Content: strings.NewReader("alpha")},
		{Name: "data.csv", Content: strings.NewReader("a,b")},
	}
	resp, err := c.UploadDocuments(context.Background(), files, []string{"https://example.com/doc"})
	if err != nil {
		t.Fatalf("UploadDocuments: %v", err)
	}

	if resp.UploadedFiles != 2 || resp.WikiLinks != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", resp.UploadedFiles, resp.WikiLinks)
	}
	if len(gotFiles) != 2 || gotFiles[0] != "notes.txt" || gotFiles[1] != "data.csv" {
		t.Errorf("server saw files %v", gotFiles)
	}
	if len(gotLinks) != 1 || gotLinks[0] != "https://example.com/doc" {
		t.Errorf("server saw links %v", gotLinks)
	}
}

func TestAskSuccess(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "response": "Summary...", "tone": "default", "level": "beginner", "sources": 4}`))
	}))

	resp, err := c.Ask(context.Background(), "What is this about?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if resp.Response != "Summary..." {
		t.Errorf("Response = %q", resp.Response)
	}
	if resp.Sources != 4 {
		t.Errorf("Sources = %d, want 4", resp.Sources)
	}
}

func TestUpdateSettingsEcho(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The server normalizes to its own values; those are authoritative.
		w.Write([]byte(`{"success": true, "tone": "professional", "level": "advanced"}`))
	}))

	resp, err := c.UpdateSettings(context.Background(), "PROFESSIONAL", "Advanced")
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if resp.Tone != "professional" || resp.Level != "advanced" {
		t.Errorf("echoed settings = (%q, %q)", resp.Tone, resp.Level)
	}
}

func TestResetSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "new_session_id": "sess-2"}`))
	}))

	resp, err := c.ResetSession(context.Background())
	if err != nil {
		t.Fatalf("ResetSession: %v", err)
	}
	if resp.NewSessionID != "sess-2" {
		t.Errorf("NewSessionID = %q, want sess-2", resp.NewSessionID)
	}
}

func TestMalformedResponseBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))

	if _, err := c.IngestDocuments(context.Background()); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}
