package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

type implLogger struct {
	logger    *log.Logger
	level     string
	format    string
	component string
}

// New creates a text Logger writing to stdout.
func New(level string) Logger {
	return NewWithFormat(level, FormatText, os.Stdout)
}

// NewWithFormat creates a Logger with an explicit output format and sink.
// Unknown formats fall back to text.
func NewWithFormat(level, format string, w io.Writer) Logger {
	format = strings.ToLower(format)
	flags := log.LstdFlags
	if format == FormatJSON {
		flags = 0
	} else {
		format = FormatText
	}
	return &implLogger{
		logger: log.New(w, "", flags),
		level:  strings.ToLower(level),
		format: format,
	}
}

func (l *implLogger) With(component string) Logger {
	child := *l
	if l.component != "" {
		component = l.component + "." + component
	}
	child.component = component
	return &child
}

func (l *implLogger) shouldLog(level string) bool {
	currentLevel, ok := levels[l.level]
	if !ok {
		currentLevel = 1 // default to info
	}

	targetLevel, ok := levels[level]
	if !ok {
		return true
	}

	return targetLevel >= currentLevel
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.output("debug", msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.output("info", msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.output("warn", msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.output("error", msg, args...)
}

func (l *implLogger) output(level, msg string, args ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	text := fmt.Sprintf(msg, args...)
	if l.format == FormatJSON {
		line, err := json.Marshal(struct {
			Time      string `json:"time"`
			Level     string `json:"level"`
			Component string `json:"component,omitempty"`
			Msg       string `json:"msg"`
		}{
			Time:      time.Now().Format(time.RFC3339Nano),
			Level:     level,
			Component: l.component,
			Msg:       text,
		})
		if err == nil {
			l.logger.Print(string(line))
			return
		}
	}

	prefix := "[" + strings.ToUpper(level) + "] "
	if l.component != "" {
		prefix += "[" + l.component + "] "
	}
	l.logger.Print(prefix + text)
}

// FormatError renders err for log lines, empty for nil.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%v", err)
}
