// Package history persists the conversation log across runs. The full log
// is serialized into a single record under a fixed key, so each write either
// lands completely or leaves the previous durable log untouched.
package history

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/raj-tembe/learn-with-ai/internal/db"
)

// stateKey is the fixed record name the serialized log lives under.
const stateKey = "chat_history"

// Store is the durable, append-only conversation log. Turns are only ever
// appended or bulk-cleared, never updated or individually deleted.
type Store struct {
	mu    sync.Mutex
	db    *db.DB
	turns []Turn
}

// Open loads the persisted log from database. A missing or unparseable
// record is treated as an empty log, never as an error.
func Open(database *db.DB) (*Store, error) {
	s := &Store{db: database}

	value, ok, err := database.GetState(stateKey)
	if err != nil {
		return nil, fmt.Errorf("loading chat history: %w", err)
	}
	if ok {
		var turns []Turn
		if err := json.Unmarshal([]byte(value), &turns); err == nil {
			s.turns = turns
		}
		// Corrupt data is ignored; the log starts empty.
	}

	return s, nil
}

// Append adds turn to the end of the log and persists the full log. On a
// persistence failure the in-memory log is rolled back so memory and disk
// stay in agreement.
func (s *Store) Append(turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, turn)
	if err := s.persistLocked(); err != nil {
		s.turns = s.turns[:len(s.turns)-1]
		return fmt.Errorf("persisting chat history: %w", err)
	}
	return nil
}

// LoadAll returns a copy of the full log, oldest turn first.
func (s *Store) LoadAll() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of recorded turns.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Clear erases the persisted record and the in-memory log together. The
// caller is responsible for confirming the action with the user first.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.DeleteState(stateKey); err != nil {
		return fmt.Errorf("clearing chat history: %w", err)
	}
	s.turns = nil
	return nil
}

// Replay projects the turn at index into view. The log itself is not
// mutated.
func (s *Store) Replay(index int, view View) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.turns) {
		return fmt.Errorf("no history entry at index %d", index)
	}

	turn := s.turns[index]
	view.ShowQuestion(turn.Question)
	view.ShowAnswer(turn.Response)
	return nil
}

func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.turns)
	if err != nil {
		return fmt.Errorf("marshalling chat history: %w", err)
	}
	return s.db.SetState(stateKey, string(data))
}
