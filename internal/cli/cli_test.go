package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/segmentd/internal/segment"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func heritageSignals() map[string]any {
	m := make(map[string]any, len(segment.RequiredSignals))
	for _, s := range segment.RequiredSignals {
		if s.Kind() == segment.KindFlag {
			m[string(s)] = false
		} else {
			m[string(s)] = 0
		}
	}
	m["designer_story_engagement"] = 1
	m["craftsmanship_content_focus"] = 1
	m["heritage_content_time"] = 240
	return m
}

func TestClassify_FromStdin(t *testing.T) {
	t.Parallel()
	body, err := json.Marshal(map[string]any{"signals": heritageSignals()})
	require.NoError(t, err)

	out, err := run(t, string(body), "classify")
	require.NoError(t, err)

	var result segment.ClassificationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, segment.ItalianHeritageAdvocate, result.PrimarySegment)
	assert.Equal(t, segment.AngleItalianHeritage, result.ContentAngle)
}

func TestClassify_FromFile(t *testing.T) {
	t.Parallel()
	body, err := json.Marshal(heritageSignals())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	out, err := run(t, "", "classify", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"primary_segment": "italian_heritage_advocate"`)
}

func TestClassify_Demo(t *testing.T) {
	t.Parallel()
	out, err := run(t, "", "classify", "--demo", "planner", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, `"primary_segment": "luxury_project_planner"`)
}

func TestClassify_Errors(t *testing.T) {
	t.Parallel()

	_, err := run(t, `{"page_depth": 3}`, "classify")
	require.Error(t, err)
	assert.ErrorIs(t, err, segment.ErrInvalidInput)

	_, err = run(t, `not json`, "classify")
	assert.ErrorContains(t, err, "decoding signals")

	_, err = run(t, "", "classify", "--demo", "hospitality")
	assert.ErrorContains(t, err, "unknown demo mode")

	_, err = run(t, "", "classify", "--log-level", "loud", "--demo", "random")
	assert.Error(t, err)
}

func TestSegments_Table(t *testing.T) {
	t.Parallel()
	out, err := run(t, "", "segments")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "ID"))
	assert.Contains(t, lines[1], "italian_heritage_advocate")
	assert.Contains(t, lines[1], "0.75")
	assert.Contains(t, lines[4], "hospitality_professional")
}

func TestSegments_BadCatalog(t *testing.T) {
	t.Parallel()
	_, err := run(t, "", "segments", "--catalog", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
