// Package conversation runs the question/answer exchange with the remote
// assistant. Chat is gated on successful ingestion, and at most one
// exchange is in flight at a time.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/raj-tembe/learn-with-ai/internal/api"
	"github.com/raj-tembe/learn-with-ai/internal/config"
	"github.com/raj-tembe/learn-with-ai/internal/history"
	"github.com/raj-tembe/learn-with-ai/internal/notify"
)

// State of the engine.
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingResponse State = "awaiting-response"
)

var (
	// ErrEmptyQuestion is returned for blank input; no request is sent.
	ErrEmptyQuestion = errors.New("empty question")
	// ErrNotReady is returned while documents have not been ingested.
	ErrNotReady = errors.New("documents not ingested")
	// ErrBusy is returned while a previous exchange is still in flight.
	ErrBusy = errors.New("previous question still in flight")
)

// View is the live conversation surface.
type View interface {
	ShowQuestion(question string)
	ShowAnswer(answer string)
	ShowError(message string)
	SetStatus(status string)
}

// Settings provides the configuration in effect at send time. Satisfied by
// session.Controller.
type Settings interface {
	Tone() config.Tone
	Level() config.Level
}

// displayTime is the timestamp layout recorded on history turns.
const displayTime = "2006-01-02 15:04:05"

// Engine drives the chat exchange.
type Engine struct {
	client   *api.Client
	notifier notify.Notifier
	store    *history.Store
	view     View
	settings Settings

	mu    sync.Mutex
	ready bool
	state State
}

// NewEngine creates an idle, not-ready Engine.
func NewEngine(client *api.Client, notifier notify.Notifier, store *history.Store, view View, settings Settings) *Engine {
	return &Engine{
		client:   client,
		notifier: notifier,
		store:    store,
		view:     view,
		settings: settings,
		state:    StateIdle,
	}
}

// SetReady flips the ingestion gate.
func (e *Engine) SetReady(ready bool) {
	e.mu.Lock()
	e.ready = ready
	e.mu.Unlock()
}

// Ready reports whether chat is available.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// State returns the current engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Ask submits a question and settles the exchange. Blank questions and
// questions asked before ingestion are rejected locally without a request.
// A second submission while one is in flight is rejected, never queued.
// The engine always returns to idle once the request settles.
func (e *Engine) Ask(ctx context.Context, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		e.notifier.Warningf("Please enter a question")
		return ErrEmptyQuestion
	}

	e.mu.Lock()
	if !e.ready {
		e.mu.Unlock()
		e.notifier.Warningf("Please ingest documents first")
		return ErrNotReady
	}
	if e.state == StateAwaitingResponse {
		e.mu.Unlock()
		e.notifier.Warningf("Still waiting for the previous answer")
		return ErrBusy
	}
	e.state = StateAwaitingResponse
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.state = StateIdle
		e.mu.Unlock()
	}()

	// Capture the configuration at send time; the turn records what was
	// active when asked, even if settings change before the answer lands.
	tone := e.settings.Tone()
	level := e.settings.Level()

	e.view.ShowQuestion(question)
	e.view.SetStatus("Thinking...")

	resp, err := e.client.Ask(ctx, question)
	if err != nil {
		if msg, ok := api.RemoteMessage(err); ok {
			e.view.ShowError(fmt.Sprintf("Error: %s", msg))
		} else {
			e.view.ShowError("Sorry, an error occurred. Please try again.")
		}
		e.view.SetStatus("")
		return fmt.Errorf("asking question: %w", err)
	}

	e.view.ShowAnswer(resp.Response)
	e.view.SetStatus(fmt.Sprintf("%s tone • %s level • %d sources", resp.Tone, resp.Level, resp.Sources))

	turn := history.Turn{
		Question:  question,
		Response:  resp.Response,
		Timestamp: time.Now().Format(displayTime),
		Tone:      string(tone),
		Level:     string(level),
	}
	if err := e.store.Append(turn); err != nil {
		// The exchange itself succeeded; only the durable record is behind.
		e.notifier.Warningf("Could not save this exchange to history")
	}

	return nil
}
