package conversation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/raj-tembe/learn-with-ai/internal/api"
	"github.com/raj-tembe/learn-with-ai/internal/config"
	"github.com/raj-tembe/learn-with-ai/internal/db"
	"github.com/raj-tembe/learn-with-ai/internal/history"
	"github.com/raj-tembe/learn-with-ai/internal/notify"
)

// fakeSettings is a mutable stand-in for the session controller.
type fakeSettings struct {
	tone  config.Tone
	level config.Level
}

func (f *fakeSettings) Tone() config.Tone   { return f.tone }
func (f *fakeSettings) Level() config.Level { return f.level }

// recordingView captures everything projected into the live view.
type recordingView struct {
	questions []string
	answers   []string
	errors    []string
	statuses  []string
}

func (v *recordingView) ShowQuestion(q string) { v.questions = append(v.questions, q) }
func (v *recordingView) ShowAnswer(a string)   { v.answers = append(v.answers, a) }
func (v *recordingView) ShowError(m string)    { v.errors = append(v.errors, m) }
func (v *recordingView) SetStatus(s string)    { v.statuses = append(v.statuses, s) }

type engineFixture struct {
	engine   *Engine
	store    *history.Store
	view     *recordingView
	rec      *notify.Recorder
	settings *fakeSettings
	requests *atomic.Int64
}

func setupEngine(t *testing.T, handler http.HandlerFunc) *engineFixture {
	t.Helper()

	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store, err := history.Open(database)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}

	view := &recordingView{}
	rec := notify.NewRecorder()
	settings := &fakeSettings{tone: config.ToneDefault, level: config.LevelBeginner}

	return &engineFixture{
		engine:   NewEngine(client, rec, store, view, settings),
		store:    store,
		view:     view,
		rec:      rec,
		settings: settings,
		requests: &requests,
	}
}

func answerOK(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`{"success": true, "response": "Summary...", "tone": "default", "level": "beginner", "sources": 1}`))
}

func TestAskEmptyQuestion(t *testing.T) {
	f := setupEngine(t, answerOK)
	f.engine.SetReady(true)

	for _, q := range []string{"", "   ", "\t\n"} {
		if err := f.engine.Ask(context.Background(), q); !errors.Is(err, ErrEmptyQuestion) {
			t.Errorf("Ask(%q) = %v, want ErrEmptyQuestion", q, err)
		}
	}

	if f.requests.Load() != 0 {
		t.Error("blank questions must never reach the server")
	}
	if f.engine.State() != StateIdle {
		t.Errorf("state = %q, want idle", f.engine.State())
	}
	if len(f.rec.ByLevel(notify.LevelWarning)) != 3 {
		t.Error("expected one warning per blank question")
	}
}

func TestAskBeforeIngest(t *testing.T) {
	f := setupEngine(t, answerOK)

	if err := f.engine.Ask(context.Background(), "What is this about?"); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Ask = %v, want ErrNotReady", err)
	}
	if f.requests.Load() != 0 {
		t.Error("questions before ingestion must never reach the server")
	}
	if f.store.Len() != 0 {
		t.Error("history must be unchanged")
	}
}

func TestAskSuccessRecordsTurn(t *testing.T) {
	f := setupEngine(t, answerOK)
	f.engine.SetReady(true)

	if err := f.engine.Ask(context.Background(), "What is this about?"); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	turns := f.store.LoadAll()
	if len(turns) != 1 {
		t.Fatalf("history length = %d, want 1", len(turns))
	}
	if turns[0].Question != "What is this about?" || turns[0].Response != "Summary..." {
		t.Errorf("turn = %+v", turns[0])
	}
	if turns[0].Timestamp == "" {
		t.Error("turn timestamp missing")
	}

	if len(f.view.questions) != 1 || len(f.view.answers) != 1 {
		t.Errorf("view got %d questions, %d answers", len(f.view.questions), len(f.view.answers))
	}
	last := f.view.statuses[len(f.view.statuses)-1]
	if !strings.Contains(last, "1 sources") || !strings.Contains(last, "default tone") {
		t.Errorf("status line = %q", last)
	}
	if f.engine.State() != StateIdle {
		t.Errorf("state after settle = %q, want idle", f.engine.State())
	}
}

func TestAskCapturesSettingsAtSendTime(t *testing.T) {
	// The server echoes different values than the client-side settings;
	// the recorded turn keeps what was active when the question was sent.
	f := setupEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "response": "ok", "tone": "professional", "level": "advanced", "sources": 2}`))
	})
	f.engine.SetReady(true)
	f.settings.tone = config.ToneInformal
	f.settings.level = config.LevelIntermediate

	if err := f.engine.Ask(context.Background(), "hello?"); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	turn := f.store.LoadAll()[0]
	if turn.Tone != "informal" || turn.Level != "intermediate" {
		t.Errorf("turn settings = (%q, %q), want send-time values", turn.Tone, turn.Level)
	}
}

func TestAskFailureNotHistorized(t *testing.T) {
	f := setupEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false, "error": "Error processing question: boom"}`))
	})
	f.engine.SetReady(true)

	if err := f.engine.Ask(context.Background(), "What is this about?"); err == nil {
		t.Fatal("expected ask failure")
	}

	if f.store.Len() != 0 {
		t.Error("failed exchanges must not be historized")
	}
	if len(f.view.errors) != 1 || !strings.Contains(f.view.errors[0], "Error processing question: boom") {
		t.Errorf("view errors = %v, want server-reported text", f.view.errors)
	}
	// The optimistic question is still shown.
	if len(f.view.questions) != 1 {
		t.Error("optimistic question display missing")
	}
	if f.engine.State() != StateIdle {
		t.Errorf("state after failure = %q, want idle", f.engine.State())
	}
}

func TestAskNetworkFailureGenericMessage(t *testing.T) {
	f := setupEngine(t, answerOK)
	f.engine.SetReady(true)

	// Point the engine at a dead address.
	client, err := api.New("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	f.engine.client = client

	if err := f.engine.Ask(context.Background(), "anyone there?"); err == nil {
		t.Fatal("expected network failure")
	}
	if len(f.view.errors) != 1 || !strings.Contains(f.view.errors[0], "Sorry, an error occurred") {
		t.Errorf("view errors = %v, want generic message", f.view.errors)
	}
	if f.store.Len() != 0 {
		t.Error("history must be unchanged")
	}
}

func TestSingleFlight(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var enteredOnce sync.Once

	f := setupEngine(t, func(w http.ResponseWriter, r *http.Request) {
		enteredOnce.Do(func() { close(entered) })
		<-release
		answerOK(w, r)
	})
	f.engine.SetReady(true)

	done := make(chan error, 1)
	go func() {
		done <- f.engine.Ask(context.Background(), "first question")
	}()

	<-entered
	if got := f.engine.State(); got != StateAwaitingResponse {
		t.Errorf("state while in flight = %q, want awaiting-response", got)
	}

	// A second submission while in flight is rejected, not queued.
	if err := f.engine.Ask(context.Background(), "second question"); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent Ask = %v, want ErrBusy", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Ask: %v", err)
	}

	// Exactly the first exchange is historized, and submission re-enabled.
	if f.store.Len() != 1 {
		t.Errorf("history length = %d, want 1", f.store.Len())
	}
	waitForIdle(t, f.engine)
	if err := f.engine.Ask(context.Background(), "third question"); err != nil {
		t.Errorf("Ask after settle: %v", err)
	}
}

func waitForIdle(t *testing.T, e *Engine) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if e.State() == StateIdle {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("engine never returned to idle")
}
