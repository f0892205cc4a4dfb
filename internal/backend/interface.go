// Package backend contains the model backends used for abstractive
// summarization. Every failure a backend reports is an *Error matching
// ErrBackend.
package backend

import (
	"context"
	"errors"
)

var (
	ErrBackend     = errors.New("summarization backend error")
	ErrUnavailable = errors.New("backend unavailable")
	ErrEmptyOutput = errors.New("backend returned empty summary")
)

// Backend is a model capable of condensing text.
type Backend interface {
	Name() string
	// Available reports whether the backend is configured and usable. It is
	// probed once at startup.
	Available() bool
	// MaxInputWords is the largest input, in whitespace tokens, a single
	// Summarize call accepts.
	MaxInputWords() int
	Summarize(ctx context.Context, text string) (string, error)
}

type Error struct {
	Backend string
	Err     error
}

func (e *Error) Error() string {
	return e.Backend + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrBackend }

func wrap(name string, err error) error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return err
	}
	return &Error{Backend: name, Err: err}
}
