// Package testutil provides shared test doubles for package tests.
package testutil

import (
	"sync"

	"github.com/raysh454/segmentd/internal/logging"
)

// ─── Logger ────────────────────────────────────────────────────────────

// Entry is one recorded log call.
type Entry struct {
	Level  string
	Msg    string
	Fields map[string]any
}

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu      sync.Mutex
	entries []Entry
}

func (l *DummyLogger) record(level, msg string, fields []logging.Field) {
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Msg: msg, Fields: m})
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) { l.record("debug", msg, fields) }
func (l *DummyLogger) Info(msg string, fields ...logging.Field)  { l.record("info", msg, fields) }
func (l *DummyLogger) Warn(msg string, fields ...logging.Field)  { l.record("warn", msg, fields) }
func (l *DummyLogger) Error(msg string, fields ...logging.Field) { l.record("error", msg, fields) }

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// Entries returns a snapshot of every recorded call.
func (l *DummyLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Messages returns the messages logged at level.
func (l *DummyLogger) Messages(level string) []string {
	var out []string
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e.Msg)
		}
	}
	return out
}
