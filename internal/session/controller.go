// Package session owns the current session identifier and the active
// tone/level configuration. The identifier is assigned by the server; the
// controller never invents one locally.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/raj-tembe/learn-with-ai/internal/api"
	"github.com/raj-tembe/learn-with-ai/internal/config"
	"github.com/raj-tembe/learn-with-ai/internal/notify"
)

// Controller manages the remote session and its settings.
type Controller struct {
	client   *api.Client
	notifier notify.Notifier

	mu    sync.Mutex
	id    string
	tone  config.Tone
	level config.Level
}

// NewController creates a Controller with the baseline configuration.
func NewController(client *api.Client, notifier notify.Notifier) *Controller {
	return &Controller{
		client:   client,
		notifier: notifier,
		tone:     config.ToneDefault,
		level:    config.LevelBeginner,
	}
}

// ID returns the current session identifier, or "" before Create succeeds.
func (c *Controller) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Tone returns the active tone.
func (c *Controller) Tone() config.Tone {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tone
}

// Level returns the active level.
func (c *Controller) Level() config.Level {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

// Create requests a new session identifier. On failure any prior identifier
// is left untouched and no retry is attempted.
func (c *Controller) Create(ctx context.Context) error {
	resp, err := c.client.CreateSession(ctx)
	if err != nil {
		c.notifier.Errorf("Error initializing session")
		return fmt.Errorf("creating session: %w", err)
	}

	c.mu.Lock()
	c.id = resp.SessionID
	c.mu.Unlock()

	c.notifier.Successf("Session initialized")
	return nil
}

// UpdateSettings sends the tone/level pair to the server. Unknown values
// are rejected before the call. On success the server's echoed values are
// committed; they are authoritative, not the requested ones. On failure the
// active configuration is unchanged.
func (c *Controller) UpdateSettings(ctx context.Context, tone config.Tone, level config.Level) error {
	if !config.ValidTone(tone) {
		c.notifier.Warningf("Unknown tone %q", tone)
		return fmt.Errorf("unknown tone %q", tone)
	}
	if !config.ValidLevel(level) {
		c.notifier.Warningf("Unknown level %q", level)
		return fmt.Errorf("unknown level %q", level)
	}

	resp, err := c.client.UpdateSettings(ctx, string(tone), string(level))
	if err != nil {
		c.notifier.Errorf("Error updating settings")
		return fmt.Errorf("updating settings: %w", err)
	}

	c.mu.Lock()
	c.tone = config.Tone(resp.Tone)
	c.level = config.Level(resp.Level)
	c.mu.Unlock()

	c.notifier.Successf("Settings updated: %s tone, %s level", resp.Tone, resp.Level)
	return nil
}

// Reset invokes the remote reset endpoint and replaces the session
// identifier with the new one. On failure the identifier is unchanged. The
// caller confirms the action with the user and clears the dependent state
// (staging, ingestion flag, history) after a successful reset.
func (c *Controller) Reset(ctx context.Context) error {
	resp, err := c.client.ResetSession(ctx)
	if err != nil {
		c.notifier.Errorf("Error resetting session")
		return fmt.Errorf("resetting session: %w", err)
	}

	c.mu.Lock()
	c.id = resp.NewSessionID
	c.tone = config.ToneDefault
	c.level = config.LevelBeginner
	c.mu.Unlock()

	return nil
}

// Info fetches the server-side view of the session.
func (c *Controller) Info(ctx context.Context) (*api.SessionInfoResponse, error) {
	resp, err := c.client.SessionInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching session info: %w", err)
	}
	return resp, nil
}
