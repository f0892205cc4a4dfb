package summarizer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/live-summary/internal/backend"
	"github.com/nguyentantai21042004/live-summary/internal/logger"
)

type fakeBackend struct {
	mu        sync.Mutex
	name      string
	available bool
	maxWords  int
	err       error
	delay     time.Duration
	inputs    []string
	summarize func(text string) string
}

func (f *fakeBackend) Name() string       { return f.name }
func (f *fakeBackend) Available() bool    { return f.available }
func (f *fakeBackend) MaxInputWords() int { return f.maxWords }

func (f *fakeBackend) Summarize(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, text)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", &backend.Error{Backend: f.name, Err: ctx.Err()}
		}
	}
	if f.err != nil {
		return "", f.err
	}
	if f.summarize != nil {
		return f.summarize(text), nil
	}
	return "model summary", nil
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inputs)
}

func testLogger() logger.Logger { return logger.New("error") }

func TestEngineInsufficientShortCircuits(t *testing.T) {
	b := &fakeBackend{name: "fake", available: true}
	e := New(NewAbstractive(b, 0), 10, testLogger())

	for _, text := range []string{"", "nine words are not quite enough to bother models"} {
		res := e.Summarize(context.Background(), text)
		if !res.Insufficient || res.Text != InsufficientMessage {
			t.Errorf("Summarize(%q) = %+v, want insufficient", text, res)
		}
	}
	if b.calls() != 0 {
		t.Errorf("backend invoked %d times on short input", b.calls())
	}
}

func TestEngineUsesAbstractive(t *testing.T) {
	b := &fakeBackend{name: "fake", available: true}
	e := New(NewAbstractive(b, time.Second), 10, testLogger())

	res := e.Summarize(context.Background(), twoSentences)
	if res.Text != "model summary" || res.Strategy != "abstractive:fake" || res.Fallback {
		t.Errorf("Summarize() = %+v", res)
	}
}

func TestEngineExtractiveWhenNoPrimary(t *testing.T) {
	e := New(nil, 10, testLogger())

	res := e.Summarize(context.Background(), twoSentences)
	if res.Text != "Brief discussion: "+twoSentences+"..." {
		t.Errorf("Summarize() = %q", res.Text)
	}
	if res.Strategy != "extractive" || res.Fallback {
		t.Errorf("Summarize() = %+v", res)
	}
}

func TestEngineFallsBackOnBackendError(t *testing.T) {
	tests := []struct {
		name string
		b    *fakeBackend
	}{
		{"backend error", &fakeBackend{name: "fake", available: true, err: &backend.Error{Backend: "fake", Err: errors.New("boom")}}},
		{"plain error", &fakeBackend{name: "fake", available: true, err: errors.New("connection refused")}},
		{"empty output", &fakeBackend{name: "fake", available: true, summarize: func(string) string { return "  " }}},
		{"timeout", &fakeBackend{name: "fake", available: true, delay: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(NewAbstractive(tt.b, 20*time.Millisecond), 10, testLogger())

			res := e.Summarize(context.Background(), budgetMeeting)
			if want := SummarizeExtractive(budgetMeeting); res.Text != want {
				t.Errorf("Summarize() = %q, want extractive %q", res.Text, want)
			}
			if !res.Fallback || res.Strategy != "extractive" {
				t.Errorf("Summarize() = %+v, want fallback", res)
			}
		})
	}
}

func TestAbstractiveErrorsAreBackendErrors(t *testing.T) {
	b := &fakeBackend{name: "fake", available: true, err: errors.New("connection refused")}

	_, err := NewAbstractive(b, 0).Summarize(context.Background(), "text")
	if !errors.Is(err, backend.ErrBackend) {
		t.Errorf("error = %v, want ErrBackend", err)
	}
}

func TestAbstractiveChunksLongInput(t *testing.T) {
	b := &fakeBackend{
		name:      "fake",
		available: true,
		maxWords:  4,
		summarize: func(text string) string {
			return "S(" + strings.Fields(text)[0] + ")"
		},
	}

	got, err := NewAbstractive(b, 0).Summarize(context.Background(), "a b c d e f g h i j")
	if err != nil {
		t.Fatal(err)
	}

	wantInputs := []string{"a b c d", "e f g h", "i j", "S(a) S(e) S(i)"}
	if strings.Join(b.inputs, "|") != strings.Join(wantInputs, "|") {
		t.Errorf("backend inputs = %q, want %q", b.inputs, wantInputs)
	}
	if got != "S(S(a))" {
		t.Errorf("Summarize() = %q", got)
	}
	for _, in := range b.inputs {
		if n := len(strings.Fields(in)); n > 4 {
			t.Errorf("backend got %d words, limit 4", n)
		}
	}
}

func TestAbstractiveChunkFailureStops(t *testing.T) {
	b := &fakeBackend{name: "fake", available: true, maxWords: 2, err: errors.New("down")}

	if _, err := NewAbstractive(b, 0).Summarize(context.Background(), "a b c d e"); err == nil {
		t.Fatal("expected error")
	}
	if b.calls() != 1 {
		t.Errorf("backend called %d times after first failure", b.calls())
	}
}

func TestSelect(t *testing.T) {
	ctx := context.Background()
	down := &fakeBackend{name: "gemini"}
	up := &fakeBackend{name: "command", available: true}
	later := &fakeBackend{name: "openai", available: true}

	s := Select(ctx, []backend.Backend{down, up, later}, time.Second, testLogger())
	if s == nil || s.Name() != "abstractive:command" {
		t.Fatalf("Select() = %v, want abstractive:command", s)
	}

	if s := Select(ctx, []backend.Backend{down}, time.Second, testLogger()); s != nil {
		t.Errorf("Select() = %v, want nil", s.Name())
	}
}
