package segment

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawZero() map[string]any {
	raw := make(map[string]any, len(RequiredSignals))
	for _, s := range RequiredSignals {
		if s.Kind() == KindFlag {
			raw[string(s)] = false
		} else {
			raw[string(s)] = 0.0
		}
	}
	return raw
}

func TestParseSignals_AcceptsBoolsAndNumbers(t *testing.T) {
	t.Parallel()

	raw := rawZero()
	raw[string(MultiRoomNavigation)] = true
	raw[string(ReturnVisitorPattern)] = 0.4
	raw[string(PageDepth)] = json.Number("12")
	raw[string(SessionDuration)] = 320
	raw["unrelated_key"] = "ignored"

	v, err := ParseSignals(raw)
	require.NoError(t, err)

	assert.Len(t, v, len(RequiredSignals))
	assert.Equal(t, 1.0, v[MultiRoomNavigation])
	assert.True(t, v.Flag(ReturnVisitorPattern))
	assert.Equal(t, 0.4, v[ReturnVisitorPattern], "numeric flags keep their raw value")
	assert.Equal(t, 12.0, v[PageDepth])
	assert.Equal(t, 320.0, v[SessionDuration])
}

func TestParseSignals_ReportsMissingAndMalformed(t *testing.T) {
	t.Parallel()

	raw := rawZero()
	delete(raw, string(HeritageContentTime))
	raw[string(ReturnVisitorPattern)] = nil
	raw[string(CleanAestheticPreference)] = "high"
	raw[string(DesignerStoryEngagement)] = true // bools are only valid for flags

	_, err := ParseSignals(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, []string{"heritage_content_time", "return_visitor_pattern"}, invalid.Missing)
	assert.Equal(t, []string{"designer_story_engagement", "clean_aesthetic_preference"}, invalid.Malformed)
}

func TestSignalKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindFlag, MultiRoomNavigation.Kind())
	assert.Equal(t, KindFlag, ReturnVisitorPattern.Kind())
	assert.Equal(t, KindMagnitude, HeritageContentTime.Kind())
	assert.Equal(t, KindMagnitude, SessionDuration.Kind())
	assert.Equal(t, KindMagnitude, PageDepth.Kind())
	assert.Equal(t, KindUnit, ProductInteractionQuality.Kind())
	assert.Len(t, RequiredSignals, 16)
	assert.False(t, Signal("page_views").Known())
}
