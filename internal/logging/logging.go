package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// StdoutLogger is a small structured logger that prints one JSON object per
// line. Entries below the configured level are dropped.
type StdoutLogger struct {
	out       io.Writer
	mu        *sync.Mutex
	level     Level
	component string
	fields    []Field
}

// NewStdoutLogger creates a logger writing to stdout at info level.
// component is included on every entry when non-empty.
func NewStdoutLogger(component string) *StdoutLogger {
	return NewLogger(os.Stdout, LevelInfo, component)
}

// NewLogger creates a logger writing to out.
func NewLogger(out io.Writer, level Level, component string) *StdoutLogger {
	return &StdoutLogger{
		out:       out,
		mu:        &sync.Mutex{},
		level:     level,
		component: component,
	}
}

type entry struct {
	Level     string         `json:"level"`
	Msg       string         `json:"msg"`
	Component string         `json:"component,omitempty"`
	Time      string         `json:"time"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func (s *StdoutLogger) log(level Level, msg string, fields ...Field) {
	if level < s.level {
		return
	}

	var m map[string]any
	if n := len(s.fields) + len(fields); n > 0 {
		m = make(map[string]any, n)
		for _, f := range s.fields {
			m[f.Key] = f.Value
		}
		for _, f := range fields {
			m[f.Key] = f.Value
		}
	}

	e := entry{
		Level:     level.String(),
		Msg:       msg,
		Component: s.component,
		Time:      time.Now().UTC().Format(time.RFC3339Nano),
		Fields:    m,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	enc, err := json.Marshal(e)
	if err != nil {
		// a field value that cannot be marshalled still gets logged
		fmt.Fprintf(s.out, "%s %s %v\n", e.Level, msg, m)
		return
	}
	_, _ = s.out.Write(append(enc, '\n'))
}

func (s *StdoutLogger) Debug(msg string, fields ...Field) {
	s.log(LevelDebug, msg, fields...)
}

func (s *StdoutLogger) Info(msg string, fields ...Field) {
	s.log(LevelInfo, msg, fields...)
}

func (s *StdoutLogger) Warn(msg string, fields ...Field) {
	s.log(LevelWarn, msg, fields...)
}

func (s *StdoutLogger) Error(msg string, fields ...Field) {
	s.log(LevelError, msg, fields...)
}

// With returns a child logger. A "component" field replaces the component
// name; all other fields are carried on every entry of the child.
func (s *StdoutLogger) With(fields ...Field) Logger {
	child := &StdoutLogger{
		out:       s.out,
		mu:        s.mu,
		level:     s.level,
		component: s.component,
		fields:    append([]Field(nil), s.fields...),
	}
	for _, f := range fields {
		if f.Key == "component" {
			if str, ok := f.Value.(string); ok {
				child.component = str
				continue
			}
		}
		child.fields = append(child.fields, f)
	}
	return child
}
