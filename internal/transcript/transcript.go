// Package transcript holds the append-only, in-memory log of utterances for
// one conversation.
package transcript

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("invalid utterance")

// ValidationError reports a missing ingestion field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Utterance is one recorded speaker turn. ID is 1-based and equals the
// utterance's position in the log.
type Utterance struct {
	ID         int       `json:"id"`
	Speaker    string    `json:"speaker_name"`
	Text       string    `json:"text"`
	RecordedAt time.Time `json:"timestamp"`
}

// Snapshot is a consistent copy of the log. Revision increases on every
// append and every clear and never goes back, so a larger revision always
// means a newer transcript state.
type Snapshot struct {
	Revision   uint64      `json:"revision"`
	Utterances []Utterance `json:"transcript"`
}

// Text joins the utterance texts with single spaces in log order.
func (s Snapshot) Text() string {
	texts := make([]string, len(s.Utterances))
	for i, u := range s.Utterances {
		texts[i] = u.Text
	}
	return strings.Join(texts, " ")
}

// Last returns the most recent utterance, if any.
func (s Snapshot) Last() (Utterance, bool) {
	if len(s.Utterances) == 0 {
		return Utterance{}, false
	}
	return s.Utterances[len(s.Utterances)-1], true
}

// Store is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	utterances []Utterance
	revision   uint64
	now        func() time.Time
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append validates and records a new utterance. Blank values are rejected,
// but accepted values are stored as given.
func (s *Store) Append(speaker, text string) (Utterance, error) {
	if strings.TrimSpace(speaker) == "" {
		return Utterance{}, &ValidationError{Field: "speaker_name"}
	}
	if strings.TrimSpace(text) == "" {
		return Utterance{}, &ValidationError{Field: "text"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := Utterance{
		ID:         len(s.utterances) + 1,
		Speaker:    speaker,
		Text:       text,
		RecordedAt: s.now(),
	}
	s.utterances = append(s.utterances, u)
	s.revision++
	return u, nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Revision:   s.revision,
		Utterances: append([]Utterance(nil), s.utterances...),
	}
}

// Clear empties the log and returns the revision of the empty state.
func (s *Store) Clear() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.utterances = nil
	s.revision++
	return s.revision
}

func (s *Store) JoinedText() string {
	return s.Snapshot().Text()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.utterances)
}
