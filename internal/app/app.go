// Package app composes the session controller, document staging, the
// conversation engine, and the history store. Each component owns its own
// disjoint state; the App only wires their interactions, most notably the
// ingestion gate and the session-reset fan-out.
package app

import (
	"context"
	"fmt"

	"github.com/raj-tembe/learn-with-ai/internal/api"
	"github.com/raj-tembe/learn-with-ai/internal/config"
	"github.com/raj-tembe/learn-with-ai/internal/conversation"
	"github.com/raj-tembe/learn-with-ai/internal/db"
	"github.com/raj-tembe/learn-with-ai/internal/history"
	"github.com/raj-tembe/learn-with-ai/internal/notify"
	"github.com/raj-tembe/learn-with-ai/internal/session"
	"github.com/raj-tembe/learn-with-ai/internal/staging"
)

// App is the composition root of the client.
type App struct {
	Config   *config.Config
	Client   *api.Client
	Notifier notify.Notifier
	View     conversation.View

	Session *session.Controller
	Staging *staging.Staging
	Engine  *conversation.Engine
	History *history.Store

	database *db.DB
}

// New builds the full component graph for the given configuration.
func New(cfg *config.Config, notifier notify.Notifier, view conversation.View) (*App, error) {
	client, err := api.New(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	database, err := db.Open(cfg.HistoryDBPath())
	if err != nil {
		return nil, fmt.Errorf("opening local database: %w", err)
	}

	store, err := history.Open(database)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("opening history store: %w", err)
	}

	controller := session.NewController(client, notifier)
	stage := staging.New(client, notifier, cfg.MaxUploadMB)
	engine := conversation.NewEngine(client, notifier, store, view, controller)

	return &App{
		Config:   cfg,
		Client:   client,
		Notifier: notifier,
		View:     view,
		Session:  controller,
		Staging:  stage,
		Engine:   engine,
		History:  store,
		database: database,
	}, nil
}

// Close releases the local database.
func (a *App) Close() error {
	return a.database.Close()
}

// Init creates the remote session and pushes the configured tone/level when
// they differ from the baseline the server starts every session with.
func (a *App) Init(ctx context.Context) error {
	if err := a.Session.Create(ctx); err != nil {
		return err
	}

	if a.Config.Tone != config.ToneDefault || a.Config.Level != config.LevelBeginner {
		if err := a.Session.UpdateSettings(ctx, a.Config.Tone, a.Config.Level); err != nil {
			return err
		}
	}
	return nil
}

// Ingest processes the staged set and, on success, opens the chat gate.
func (a *App) Ingest(ctx context.Context) error {
	if err := a.Staging.Ingest(ctx); err != nil {
		return err
	}
	a.Engine.SetReady(true)
	return nil
}

// ResetSession replaces the remote session and clears every piece of
// dependent local state: the staged set, the ingestion gate, and the
// persisted history. On a remote failure nothing changes. Confirmation is
// the caller's responsibility.
func (a *App) ResetSession(ctx context.Context) error {
	if err := a.Session.Reset(ctx); err != nil {
		return err
	}

	a.Staging.Clear()
	a.Engine.SetReady(false)
	if err := a.History.Clear(); err != nil {
		return err
	}

	a.Notifier.Successf("New session started")
	return nil
}

// Replay projects a past turn into the live view. It never issues a remote
// call and does not require the chat gate to be open.
func (a *App) Replay(index int) error {
	return a.History.Replay(index, a.View)
}
