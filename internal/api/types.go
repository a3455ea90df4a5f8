package api

import "errors"

// RemoteDocument is one entry of the server's authoritative staged-document
// list.
type RemoteDocument struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	UploadedAt string `json:"uploaded_at,omitempty"`
}

// CreateSessionResponse is returned by POST /api/session/create.
type CreateSessionResponse struct {
	Success   bool     `json:"success"`
	SessionID string   `json:"session_id"`
	Tones     []string `json:"tones,omitempty"`
	Levels    []string `json:"levels,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// UpdateSettingsResponse is returned by POST /api/settings/update. The
// echoed tone and level are authoritative.
type UpdateSettingsResponse struct {
	Success bool   `json:"success"`
	Tone    string `json:"tone"`
	Level   string `json:"level"`
	Error   string `json:"error,omitempty"`
}

// UploadResponse is returned by POST /api/documents/upload.
type UploadResponse struct {
	Success        bool     `json:"success"`
	UploadedFiles  int      `json:"uploaded_files"`
	WikiLinks      int      `json:"wiki_links"`
	TotalDocuments int      `json:"total_documents"`
	Errors         []string `json:"errors,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// ListDocumentsResponse is returned by GET /api/documents/list.
type ListDocumentsResponse struct {
	Success   bool             `json:"success"`
	Documents []RemoteDocument `json:"documents"`
	Total     int              `json:"total"`
	Error     string           `json:"error,omitempty"`
}

// IngestResponse is returned by POST /api/documents/ingest.
type IngestResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	DocumentsCount int    `json:"documents_count"`
	Error          string `json:"error,omitempty"`
}

// AskResponse is returned by POST /api/chat/ask.
type AskResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Tone     string `json:"tone"`
	Level    string `json:"level"`
	Sources  int    `json:"sources"`
	Error    string `json:"error,omitempty"`
}

// SessionInfoResponse is returned by GET /api/session/info.
type SessionInfoResponse struct {
	Success        bool   `json:"success"`
	SessionID      string `json:"session_id"`
	Tone           string `json:"tone"`
	Level          string `json:"level"`
	DocumentsCount int    `json:"documents_count"`
	DBInitialized  bool   `json:"db_initialized"`
	CreatedAt      string `json:"created_at"`
	LastActivity   string `json:"last_activity"`
	Error          string `json:"error,omitempty"`
}

// ResetSessionResponse is returned by POST /api/session/reset.
type ResetSessionResponse struct {
	Success      bool   `json:"success"`
	NewSessionID string `json:"new_session_id"`
	Error        string `json:"error,omitempty"`
}

// RemoteError is a non-success response from the server. Message carries
// the server-reported error text when the server provided one.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Op + ": " + e.Message
	}
	return e.Op + ": request failed"
}

// RemoteMessage extracts the server-reported error text from err, if err
// wraps a RemoteError carrying one.
func RemoteMessage(err error) (string, bool) {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message, true
	}
	return "", false
}
