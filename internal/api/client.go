// Package api is the HTTP client for the Learn with AI server. Each method
// maps to one endpoint and returns either the decoded response or an error;
// a non-success response becomes a RemoteError carrying the server's error
// text.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"
)

// Client talks to a Learn with AI server. The session identity lives in a
// cookie, so a single Client must be used for the whole staging/chat flow.
// Requests carry no client-side timeout: a hung call stays in flight.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a Client for the server at baseURL.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Jar: jar},
	}, nil
}

// FileUpload is one file in an upload batch.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// doJSON issues a request and decodes the JSON body into out. The server
// returns a JSON body on error statuses too, so the body is decoded before
// the status is inspected.
func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, contentType string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response from %s: %w", path, err)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, fmt.Errorf("unmarshalling response from %s: %w", path, err)
	}

	return resp.StatusCode, nil
}

// postJSON marshals payload and POSTs it as JSON.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) (int, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("marshalling request for %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}
	return c.doJSON(ctx, http.MethodPost, path, body, "application/json", out)
}

// CreateSession requests a new session. The session cookie set by the
// server is retained by the client for subsequent calls.
func (c *Client) CreateSession(ctx context.Context) (*CreateSessionResponse, error) {
	var resp CreateSessionResponse
	status, err := c.postJSON(ctx, "/api/session/create", nil, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &RemoteError{Op: "create session", StatusCode: status, Message: resp.Error}
	}
	return &resp, nil
}

// UpdateSettings sends the tone/level pair. The echoed values in the
// response are the committed ones.
func (c *Client) UpdateSettings(ctx context.Context, tone, level string) (*UpdateSettingsResponse, error) {
	payload := map[string]string{"tone": tone, "level": level}
	var resp UpdateSettingsResponse
	status, err := c.postJSON(ctx, "/api/settings/update", payload, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &RemoteError{Op: "update settings", StatusCode: status, Message: resp.Error}
	}
	return &resp, nil
}

// UploadDocuments submits files and reference links as one multipart request.
func (c *Client) UploadDocuments(ctx context.Context, files []FileUpload, links []string) (*UploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("creating form file %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, fmt.Errorf("copying file %s: %w", f.Name, err)
		}
	}
	for _, link := range links {
		if err := mw.WriteField("wiki_links", link); err != nil {
			return nil, fmt.Errorf("writing link field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	var resp UploadResponse
	status, err := c.doJSON(ctx, http.MethodPost, "/api/documents/upload", &buf, mw.FormDataContentType(), &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &RemoteError{Op: "upload documents", StatusCode: status, Message: resp.Error}
	}
	return &resp, nil
}

// ListDocuments fetches the server's authoritative staged-document list.
func (c *Client) ListDocuments(ctx context.Context) (*ListDocumentsResponse, error) {
	var resp ListDocumentsResponse
	status, err := c.doJSON(ctx, http.MethodGet, "/api/documents/list", nil, "", &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &RemoteError{Op: "list documents", StatusCode: status, Message: resp.Error}
	}
	return &resp, nil
}

// IngestDocuments asks the server to process its staged set into the
// queryable corpus.
func (c *Client) IngestDocuments(ctx context.Context) (*IngestResponse, error) {
	var resp IngestResponse
	status, err := c.postJSON(ctx, "/api/documents/ingest", nil, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &RemoteError{Op: "ingest documents", StatusCode: status, Message: resp.Error}
	}
	return &resp, nil
}

// Ask submits a question. Session and settings are implicit server-side
// context established by prior calls.
func (c *Client) Ask(ctx context.Context, question string) (*AskResponse, error) {
	payload := map[string]string{"question": question}
	var resp AskResponse
	status, err := c.postJSON(ctx, "/api/chat/ask", payload, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &RemoteError{Op: "ask", StatusCode: status, Message: resp.Error}
	}
	return &resp, nil
}

// SessionInfo fetches the server-side view of the current session.
func (c *Client) SessionInfo(ctx context.Context) (*SessionInfoResponse, error) {
	var resp SessionInfoResponse
	status, err := c.doJSON(ctx, http.MethodGet, "/api/session/info", nil, "", &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &RemoteError{Op: "session info", StatusCode: status, Message: resp.Error}
	}
	return &resp, nil
}

// ResetSession discards the current server-side session and returns the
// replacement identifier.
func (c *Client) ResetSession(ctx context.Context) (*ResetSessionResponse, error) {
	var resp ResetSessionResponse
	status, err := c.postJSON(ctx, "/api/session/reset", nil, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &RemoteError{Op: "reset session", StatusCode: status, Message: resp.Error}
	}
	return &resp, nil
}
