// Package demo generates synthetic signal vectors for manual testing and
// demos of the classification endpoint.
package demo

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/raysh454/segmentd/internal/segment"
)

// ErrUnknownMode is returned for a demo mode outside Modes.
var ErrUnknownMode = errors.New("unknown demo mode")

// Mode selects the profile a generated vector follows.
type Mode string

const (
	ModeHeritage Mode = "heritage"
	ModePlanner  Mode = "planner"
	ModeRandom   Mode = "random"
)

// Modes lists the accepted demo modes.
var Modes = []Mode{ModeHeritage, ModePlanner, ModeRandom}

// ParseMode validates s as a demo mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

type band struct{ lo, hi float64 }

// profile gives the band each unit signal is drawn from; signals not listed
// use the profile's rest band.
type profile struct {
	unit         map[segment.Signal]band
	rest         band
	heritageTime band
	multiRoom    bool
}

var profiles = map[Mode]profile{
	ModeHeritage: {
		unit: map[segment.Signal]band{
			segment.DesignerStoryEngagement:   {0.7, 1.0},
			segment.CraftsmanshipContentFocus: {0.7, 1.0},
			segment.ProductInteractionQuality: {0.4, 0.9},
		},
		rest:         band{0, 0.4},
		heritageTime: band{120, 300},
	},
	ModePlanner: {
		unit: map[segment.Signal]band{
			segment.CompleteProjectInterest:   {0.8, 1.0},
			segment.BudgetPremiumIndicators:   {0.8, 1.0},
			segment.ProductInteractionQuality: {0.5, 1.0},
		},
		rest:         band{0, 0.4},
		heritageTime: band{0, 60},
		multiRoom:    true,
	},
}

// Generator produces demo signal vectors. It is safe for concurrent use.
type Generator struct {
	cfg Config
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a Generator from cfg.
func NewGenerator(cfg Config) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if cfg.MaxSessionSeconds <= 0 {
		cfg.MaxSessionSeconds = DefaultConfig().MaxSessionSeconds
	}
	if cfg.MaxPageDepth < 3 {
		cfg.MaxPageDepth = DefaultConfig().MaxPageDepth
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Signals returns a complete vector for mode. Every value satisfies the
// request validation ranges: unit signals in [0,1], magnitudes non-negative.
func (g *Generator) Signals(mode Mode) (segment.SignalVector, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch mode {
	case ModeRandom:
		return g.random(), nil
	case ModeHeritage, ModePlanner:
		return g.fromProfile(profiles[mode]), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

func (g *Generator) between(b band) float64 {
	return b.lo + g.rng.Float64()*(b.hi-b.lo)
}

func (g *Generator) fromProfile(p profile) segment.SignalVector {
	v := make(segment.SignalVector, len(segment.RequiredSignals))
	for _, s := range segment.RequiredSignals {
		switch s.Kind() {
		case segment.KindFlag:
			v[s] = 0
		case segment.KindMagnitude:
			// filled below
		default:
			b, ok := p.unit[s]
			if !ok {
				b = p.rest
			}
			v[s] = g.between(b)
		}
	}
	if p.multiRoom {
		v[segment.MultiRoomNavigation] = 1
	}
	if g.rng.IntN(2) == 1 {
		v[segment.ReturnVisitorPattern] = 1
	}
	v[segment.HeritageContentTime] = g.between(p.heritageTime)
	v[segment.SessionDuration] = g.between(band{180, g.cfg.MaxSessionSeconds})
	v[segment.PageDepth] = float64(3 + g.rng.IntN(g.cfg.MaxPageDepth-2))
	return v
}

func (g *Generator) random() segment.SignalVector {
	v := make(segment.SignalVector, len(segment.RequiredSignals))
	for _, s := range segment.RequiredSignals {
		switch s.Kind() {
		case segment.KindFlag:
			v[s] = float64(g.rng.IntN(2))
		case segment.KindMagnitude:
			// filled below
		default:
			v[s] = g.rng.Float64()
		}
	}
	v[segment.HeritageContentTime] = g.between(band{0, 300})
	v[segment.SessionDuration] = g.between(band{0, g.cfg.MaxSessionSeconds})
	v[segment.PageDepth] = float64(g.rng.IntN(g.cfg.MaxPageDepth + 1))
	return v
}
