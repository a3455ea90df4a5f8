// Package staging owns the client-visible set of documents intended for,
// but not yet processed into, the question-answering corpus. Files are
// screened against a type allow-list and a size cap before they ever reach
// the server; the staged listing itself is authoritative on the server and
// re-fetched after every upload.
package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/raj-tembe/learn-with-ai/internal/api"
	"github.com/raj-tembe/learn-with-ai/internal/notify"
)

// ErrNothingStaged is returned by Ingest when the staged set is empty.
var ErrNothingStaged = errors.New("no documents staged")

// Staging manages the staged-document set prior to ingestion.
type Staging struct {
	client   *api.Client
	notifier notify.Notifier

	mu   sync.Mutex
	docs []Document

	maxUploadBytes int64
	progressOut    io.Writer
}

// New creates a Staging area. maxUploadMB caps individual file sizes, and
// matches the server's own limit so oversized files are rejected before the
// network round trip.
func New(client *api.Client, notifier notify.Notifier, maxUploadMB int64) *Staging {
	return &Staging{
		client:         client,
		notifier:       notifier,
		maxUploadBytes: maxUploadMB << 20,
		progressOut:    io.Discard,
	}
}

// SetProgressOutput directs upload/ingest progress feedback to w.
func (s *Staging) SetProgressOutput(w io.Writer) {
	s.progressOut = w
}

// SelectFiles partitions paths into the valid upload batch. Every rejected
// file produces its own warning; the returned slice may be empty.
func (s *Staging) SelectFiles(paths []string) []string {
	var valid []string
	for _, path := range paths {
		name := filepath.Base(path)
		if KindForFile(name) == KindUnknown {
			s.notifier.Warningf("%s - Not supported", name)
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			s.notifier.Warningf("%s - Cannot read file", name)
			continue
		}
		if info.Size() > s.maxUploadBytes {
			s.notifier.Warningf("%s - Exceeds %d MB limit", name, s.maxUploadBytes>>20)
			continue
		}

		valid = append(valid, path)
	}
	return valid
}

// AddReferenceLink validates link and submits it for upload. Empty input
// and malformed URLs are rejected without contacting the server.
func (s *Staging) AddReferenceLink(ctx context.Context, link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		s.notifier.Warningf("Please enter a wiki link")
		return errors.New("empty link")
	}
	if !validURL(link) {
		s.notifier.Errorf("Please enter a valid URL")
		return fmt.Errorf("malformed URL %q", link)
	}

	if err := s.UploadBatch(ctx, nil, []string{link}); err != nil {
		return err
	}
	s.notifier.Successf("Wiki link added")
	return nil
}

// UploadBatch submits the given files and links as a single multipart
// request. On success the staged listing is re-fetched from the server; the
// client never assumes its own batch matches what the server now holds.
func (s *Staging) UploadBatch(ctx context.Context, paths []string, links []string) error {
	if len(paths) == 0 && len(links) == 0 {
		return nil
	}

	files, closeAll, err := s.openBatch(paths)
	defer closeAll()
	if err != nil {
		return err
	}

	resp, err := s.client.UploadDocuments(ctx, files, links)
	if err != nil {
		if msg, ok := api.RemoteMessage(err); ok {
			s.notifier.Errorf("%s", msg)
		} else {
			s.notifier.Errorf("Error uploading files")
		}
		return err
	}

	if resp.UploadedFiles > 0 {
		s.notifier.Successf("%d file(s) uploaded", resp.UploadedFiles)
	}
	for _, serverErr := range resp.Errors {
		s.notifier.Warningf("%s", serverErr)
	}

	if err := s.RefreshList(ctx); err != nil {
		// The upload itself succeeded; the stale listing heals on the
		// next refresh.
		return nil
	}
	return nil
}

// openBatch opens each path and wires the readers through a byte-count
// progress bar. The returned cleanup closes every opened file.
func (s *Staging) openBatch(paths []string) ([]api.FileUpload, func(), error) {
	var handles []*os.File
	closeAll := func() {
		for _, f := range handles {
			f.Close()
		}
	}

	var total int64
	var files []api.FileUpload
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("opening %s: %w", path, err)
		}
		handles = append(handles, f)

		if info, err := f.Stat(); err == nil {
			total += info.Size()
		}
		files = append(files, api.FileUpload{Name: filepath.Base(path), Content: f})
	}

	if len(files) > 0 {
		bar := progressbar.NewOptions64(total,
			progressbar.OptionSetDescription("Uploading"),
			progressbar.OptionSetWriter(s.progressOut),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		for i := range files {
			files[i].Content = io.TeeReader(files[i].Content, bar)
		}
	}

	return files, closeAll, nil
}

// RefreshList fetches the authoritative staged-document list and replaces
// the local set entirely. Failures are logged quietly; the local set keeps
// its last known contents.
func (s *Staging) RefreshList(ctx context.Context) error {
	resp, err := s.client.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("refreshing document list: %w", err)
	}

	docs := make([]Document, 0, len(resp.Documents))
	for _, d := range resp.Documents {
		docs = append(docs, Document{Name: d.Name, Kind: KindFromRemote(d.Type, d.Name)})
	}

	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()
	return nil
}

// Remove drops the named document from the local staged set. This is
// client-local only; the server's staged artifact is untouched.
func (s *Staging) Remove(name string) {
	s.mu.Lock()
	kept := s.docs[:0]
	for _, d := range s.docs {
		if d.Name != name {
			kept = append(kept, d)
		}
	}
	s.docs = kept
	s.mu.Unlock()

	s.notifier.Infof("Document removed")
}

// Documents returns a snapshot of the staged set.
func (s *Staging) Documents() []Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// CanIngest reports whether there is anything to ingest.
func (s *Staging) CanIngest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs) > 0
}

// Clear empties the local staged set. Used on session reset.
func (s *Staging) Clear() {
	s.mu.Lock()
	s.docs = nil
	s.mu.Unlock()
}

// Ingest asks the server to process the staged set into the queryable
// corpus. On failure the staged set is left as-is so the user can retry.
func (s *Staging) Ingest(ctx context.Context) error {
	if !s.CanIngest() {
		s.notifier.Warningf("No documents to ingest")
		return ErrNothingStaged
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Processing documents"),
		progressbar.OptionSetWriter(s.progressOut),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Finish()

	_, err := s.client.IngestDocuments(ctx)
	if err != nil {
		if msg, ok := api.RemoteMessage(err); ok {
			s.notifier.Errorf("%s", msg)
		} else {
			s.notifier.Errorf("Error processing documents")
		}
		return err
	}

	s.notifier.Successf("Documents processed successfully! Ready to chat.")
	return nil
}

// validURL reports whether raw parses as an absolute URL with a host.
// Reachability is not checked.
func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != ""
}
