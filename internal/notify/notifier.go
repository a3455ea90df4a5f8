// Package notify delivers short-lived, non-blocking status messages to the
// user. It is the terminal counterpart of a toast popup: every message is a
// single line on stderr and never interrupts the flow of the program.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notifier emits user-facing status messages.
type Notifier interface {
	Successf(format string, args ...any)
	Errorf(format string, args ...any)
	Warningf(format string, args ...any)
	Infof(format string, args ...any)
}

// Terminal writes colored notifications to a writer (stderr by default).
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminal creates a Terminal notifier writing to stderr.
func NewTerminal() *Terminal {
	return &Terminal{out: os.Stderr}
}

// NewTerminalWriter creates a Terminal notifier writing to w.
func NewTerminalWriter(w io.Writer) *Terminal {
	return &Terminal{out: w}
}

var levelStyles = map[Level]*color.Color{
	LevelSuccess: color.New(color.FgGreen),
	LevelError:   color.New(color.FgRed, color.Bold),
	LevelWarning: color.New(color.FgYellow),
	LevelInfo:    color.New(color.FgCyan),
}

var levelMarks = map[Level]string{
	LevelSuccess: "✓",
	LevelError:   "✗",
	LevelWarning: "!",
	LevelInfo:    "·",
}

func (t *Terminal) emit(level Level, format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := levelStyles[level]
	fmt.Fprintf(t.out, "%s %s\n", style.Sprint(levelMarks[level]), fmt.Sprintf(format, args...))
}

func (t *Terminal) Successf(format string, args ...any) { t.emit(LevelSuccess, format, args...) }
func (t *Terminal) Errorf(format string, args ...any)   { t.emit(LevelError, format, args...) }
func (t *Terminal) Warningf(format string, args ...any) { t.emit(LevelWarning, format, args...) }
func (t *Terminal) Infof(format string, args ...any)    { t.emit(LevelInfo, format, args...) }

// Message is a recorded notification.
type Message struct {
	Level Level
	Text  string
}

// Recorder captures notifications in memory. Used by tests to assert on the
// exact messages a component produced.
type Recorder struct {
	mu       sync.Mutex
	Messages []Message
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(level Level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, Message{Level: level, Text: fmt.Sprintf(format, args...)})
}

func (r *Recorder) Successf(format string, args ...any) { r.record(LevelSuccess, format, args...) }
func (r *Recorder) Errorf(format string, args ...any)   { r.record(LevelError, format, args...) }
func (r *Recorder) Warningf(format string, args ...any) { r.record(LevelWarning, format, args...) }
func (r *Recorder) Infof(format string, args ...any)    { r.record(LevelInfo, format, args...) }

// ByLevel returns the recorded messages with the given level.
func (r *Recorder) ByLevel(level Level) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Message
	for _, m := range r.Messages {
		if m.Level == level {
			out = append(out, m)
		}
	}
	return out
}
