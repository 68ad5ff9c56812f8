package common

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
)

// Logger provides structured logging for command and query execution
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op
// logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {
	// Do nothing
}

// StdLogger writes log lines through the standard library logger. Used by
// the daemon and CLI entry points.
type StdLogger struct {
	// MinLevel filters out lines below this level: DEBUG < INFO < WARN < ERROR
	MinLevel string
}

var levelRank = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// NewStdLogger creates a stdout logger with the given minimum level
func NewStdLogger(minLevel string) *StdLogger {
	minLevel = strings.ToUpper(minLevel)
	if _, ok := levelRank[minLevel]; !ok {
		minLevel = "INFO"
	}
	return &StdLogger{MinLevel: minLevel}
}

func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	if levelRank[level] < levelRank[l.MinLevel] {
		return
	}

	if len(metadata) == 0 {
		log.Printf("[%s] %s", level, message)
		return
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := ""
	for _, k := range keys {
		kv += fmt.Sprintf(" %s=%v", k, metadata[k])
	}
	log.Printf("[%s] %s%s", level, message, kv)
}
