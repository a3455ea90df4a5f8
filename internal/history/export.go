package history

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// ExportFormat selects the output format of an export.
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatHTML     ExportFormat = "html"
)

// Export writes the full log to w in the given format and records the
// export in the database.
func (s *Store) Export(w io.Writer, format ExportFormat, path string) error {
	turns := s.LoadAll()

	md := transcriptMarkdown(turns)

	switch format {
	case FormatMarkdown:
		if _, err := io.WriteString(w, md); err != nil {
			return fmt.Errorf("writing markdown export: %w", err)
		}
	case FormatHTML:
		var buf bytes.Buffer
		if err := exportRenderer.Convert([]byte(md), &buf); err != nil {
			return fmt.Errorf("rendering HTML export: %w", err)
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("writing HTML export: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q", format)
	}

	_, err := s.db.Exec(
		`INSERT INTO exports (id, format, path, turn_count) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), string(format), path, len(turns),
	)
	if err != nil {
		return fmt.Errorf("recording export: %w", err)
	}
	return nil
}

// exportRenderer converts the Markdown transcript to HTML. Assistant
// answers are Markdown-ish text, so tables and fenced code survive.
var exportRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(),
	),
)

// transcriptMarkdown renders the log as a Markdown transcript, oldest
// turn first.
func transcriptMarkdown(turns []Turn) string {
	var b strings.Builder
	b.WriteString("# Chat history\n\n")

	for i, turn := range turns {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, turn.Question)
		fmt.Fprintf(&b, "*%s — %s tone, %s level*\n\n", turn.Timestamp, turn.Tone, turn.Level)
		b.WriteString(turn.Response)
		b.WriteString("\n\n")
	}

	return b.String()
}
