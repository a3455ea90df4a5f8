package conversation

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Transcript renders the live conversation to a terminal. It doubles as
// the replay target for history entries.
type Transcript struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTranscript creates a Transcript writing to w.
func NewTranscript(w io.Writer) *Transcript {
	return &Transcript{out: w}
}

var (
	questionLabel = color.New(color.FgCyan, color.Bold).Sprint("You:")
	answerLabel   = color.New(color.FgGreen, color.Bold).Sprint("AI:")
	errorStyle    = color.New(color.FgRed)
	statusStyle   = color.New(color.Faint)
)

func (t *Transcript) ShowQuestion(question string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "\n%s %s\n", questionLabel, question)
}

func (t *Transcript) ShowAnswer(answer string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "\n%s %s\n", answerLabel, answer)
}

func (t *Transcript) ShowError(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "\n%s %s\n", answerLabel, errorStyle.Sprint(message))
}

func (t *Transcript) SetStatus(status string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if status != "" {
		fmt.Fprintf(t.out, "%s\n", statusStyle.Sprint(status))
	}
}
