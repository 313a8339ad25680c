package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("line is not JSON: %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestStdoutLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LevelWarn, "test")

	l.Debug("dropped")
	l.Info("dropped too")
	l.Warn("kept", F("k", 1))
	l.Error("kept too")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d: %s", len(lines), buf.String())
	}
	if lines[0]["level"] != "warn" || lines[0]["msg"] != "kept" {
		t.Errorf("unexpected first entry: %v", lines[0])
	}
	if lines[0]["component"] != "test" {
		t.Errorf("expected component test, got %v", lines[0]["component"])
	}
}

func TestStdoutLogger_WithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&buf, LevelDebug, "base")
	child := base.With(F("component", "child"), F("request_id", "abc"))

	child.Info("hello", F("extra", true))
	base.Info("plain")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lines))
	}
	if lines[0]["component"] != "child" {
		t.Errorf("expected child component, got %v", lines[0]["component"])
	}
	fields, _ := lines[0]["fields"].(map[string]any)
	if fields["request_id"] != "abc" || fields["extra"] != true {
		t.Errorf("child fields missing: %v", fields)
	}
	if _, ok := lines[1]["fields"]; ok {
		t.Errorf("parent must not inherit child fields: %v", lines[1])
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
