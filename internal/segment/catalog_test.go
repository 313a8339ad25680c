package segment

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_DeclarationOrder(t *testing.T) {
	t.Parallel()

	c, err := DefaultCatalog()
	require.NoError(t, err)

	var ids []SegmentID
	for _, s := range c.Segments() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []SegmentID{
		ItalianHeritageAdvocate,
		LuxuryProjectPlanner,
		InternationalMinimalist,
		HospitalityProfessional,
	}, ids)

	th, err := c.Threshold(LuxuryProjectPlanner)
	require.NoError(t, err)
	assert.Equal(t, 0.85, th)

	assert.Len(t, c.ContentAngles(), 4)
	for _, v := range variants {
		_, ok := c.ContentAngle(v.angle)
		assert.Truef(t, ok, "angle %s for %s", v.angle, v.id)
	}
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	c, err := DefaultCatalog()
	require.NoError(t, err)

	segs := c.Segments()
	segs[0].Thresholds[thresholdConfidence] = 0
	segs[0].KeySignals[0] = "tampered"

	def, err := c.Segment(segs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0.75, def.ConfidenceThreshold())
	assert.Equal(t, DesignerStoryEngagement, def.KeySignals[0])
}

func TestCatalog_UnknownSegment(t *testing.T) {
	t.Parallel()

	c, err := DefaultCatalog()
	require.NoError(t, err)

	_, err = c.Segment("casual_browser")
	assert.True(t, errors.Is(err, ErrUnknownSegment))
	_, err = c.Threshold("casual_browser")
	assert.True(t, errors.Is(err, ErrUnknownSegment))
}

func TestParseCatalog_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "threshold above one",
			mutate:  func(s string) string { return strings.Replace(s, "confidence: 0.85", "confidence: 1.5", 1) },
			wantErr: "outside [0,1]",
		},
		{
			name:    "missing confidence threshold",
			mutate:  func(s string) string { return strings.Replace(s, "confidence: 0.80", "recall: 0.80", 1) },
			wantErr: "missing confidence threshold",
		},
		{
			name:    "segment without model",
			mutate:  func(s string) string { return strings.Replace(s, "id: hospitality_professional", "id: casual_browser", 1) },
			wantErr: "no scoring model",
		},
		{
			name:    "unknown key signal",
			mutate:  func(s string) string { return strings.Replace(s, "- durability_specs_interest", "- page_views", 1) },
			wantErr: "unknown key signal",
		},
		{
			name:    "content angle removed",
			mutate:  func(s string) string { return strings.Replace(s, "id: commercial_excellence", "id: commercial", 1) },
			wantErr: "content angle \"commercial_excellence\" not in catalog",
		},
		{
			name:    "not yaml",
			mutate:  func(string) string { return "segments: [" },
			wantErr: "decoding catalog",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tc.mutate(string(embeddedCatalog))))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseCatalog_MissingSegment(t *testing.T) {
	t.Parallel()

	data := `
content_angles:
  - id: italian_heritage
  - id: contemporary_integration
segments:
  - id: italian_heritage_advocate
    thresholds:
      confidence: 0.75
`
	_, err := ParseCatalog([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing from catalog")
}

func TestLoadCatalog_FromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	custom := strings.Replace(string(embeddedCatalog), "confidence: 0.70", "confidence: 0.10", 1)
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	th, err := c.Threshold(InternationalMinimalist)
	require.NoError(t, err)
	assert.Equal(t, 0.10, th)

	_, err = LoadCatalog(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
