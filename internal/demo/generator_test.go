package demo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/segmentd/internal/segment"
	"github.com/raysh454/segmentd/internal/testutil"
)

func assertValidVector(t *testing.T, v segment.SignalVector) {
	t.Helper()
	require.Len(t, v, len(segment.RequiredSignals))
	for _, s := range segment.RequiredSignals {
		val, ok := v[s]
		require.Truef(t, ok, "missing %s", s)
		switch s.Kind() {
		case segment.KindFlag:
			assert.Containsf(t, []float64{0, 1}, val, "flag %s", s)
		case segment.KindMagnitude:
			assert.GreaterOrEqualf(t, val, 0.0, "magnitude %s", s)
		default:
			assert.GreaterOrEqualf(t, val, 0.0, "unit %s", s)
			assert.LessOrEqualf(t, val, 1.0, "unit %s", s)
		}
	}
}

func TestGenerator_ProfilesClassifyAsTheirSegment(t *testing.T) {
	t.Parallel()

	catalog, err := segment.DefaultCatalog()
	require.NoError(t, err)
	classifier, err := segment.NewClassifier(catalog, &testutil.DummyLogger{})
	require.NoError(t, err)

	g := NewGenerator(Config{Seed: 42})
	want := map[Mode]segment.SegmentID{
		ModeHeritage: segment.ItalianHeritageAdvocate,
		ModePlanner:  segment.LuxuryProjectPlanner,
	}

	for mode, id := range want {
		for i := 0; i < 50; i++ {
			v, err := g.Signals(mode)
			require.NoError(t, err)
			assertValidVector(t, v)

			res, err := classifier.Classify(v)
			require.NoError(t, err)
			assert.Equalf(t, id, res.PrimarySegment, "mode %s iteration %d", mode, i)
		}
	}
}

func TestGenerator_RandomStaysInRange(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultConfig())
	for i := 0; i < 200; i++ {
		v, err := g.Signals(ModeRandom)
		require.NoError(t, err)
		assertValidVector(t, v)
	}
}

func TestGenerator_SeedIsReproducible(t *testing.T) {
	t.Parallel()

	a, err := NewGenerator(Config{Seed: 7}).Signals(ModeRandom)
	require.NoError(t, err)
	b, err := NewGenerator(Config{Seed: 7}).Signals(ModeRandom)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := ParseMode("planner")
	require.NoError(t, err)
	assert.Equal(t, ModePlanner, m)

	_, err = ParseMode("hospitality")
	assert.True(t, errors.Is(err, ErrUnknownMode))

	_, err = NewGenerator(DefaultConfig()).Signals(Mode("minimalist"))
	assert.True(t, errors.Is(err, ErrUnknownMode))
}
