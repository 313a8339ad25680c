package segment

import (
	"encoding/json"
	"math"
	"strings"
)

// Signal names one behavioral measurement of a browsing session.
type Signal string

const (
	DesignerStoryEngagement     Signal = "designer_story_engagement"
	CraftsmanshipContentFocus   Signal = "craftsmanship_content_focus"
	HeritageContentTime         Signal = "heritage_content_time"
	MultiRoomNavigation         Signal = "multi_room_navigation"
	CompleteProjectInterest     Signal = "complete_project_interest"
	BudgetPremiumIndicators     Signal = "budget_premium_indicators"
	CleanAestheticPreference    Signal = "clean_aesthetic_preference"
	IntegrationContentFocus     Signal = "integration_content_focus"
	ContemporaryBrowsingPattern Signal = "contemporary_browsing_pattern"
	CommercialScaleIndicators   Signal = "commercial_scale_indicators"
	DurabilitySpecsInterest     Signal = "durability_specs_interest"
	TechnicalDocumentationFocus Signal = "technical_documentation_focus"
	SessionDuration             Signal = "session_duration"
	PageDepth                   Signal = "page_depth"
	ProductInteractionQuality   Signal = "product_interaction_quality"
	ReturnVisitorPattern        Signal = "return_visitor_pattern"
)

// SignalKind describes the value domain of a signal.
type SignalKind int

const (
	// KindUnit is a numeric signal expected in [0,1].
	KindUnit SignalKind = iota
	// KindMagnitude is a non-negative, unbounded numeric signal (seconds, pages).
	KindMagnitude
	// KindFlag is a boolean-like signal; numbers are read as truthy when non-zero.
	KindFlag
)

// RequiredSignals lists every signal a vector must carry, in declaration order.
// Error messages and validation output follow this order.
var RequiredSignals = []Signal{
	DesignerStoryEngagement,
	CraftsmanshipContentFocus,
	HeritageContentTime,
	MultiRoomNavigation,
	CompleteProjectInterest,
	BudgetPremiumIndicators,
	CleanAestheticPreference,
	IntegrationContentFocus,
	ContemporaryBrowsingPattern,
	CommercialScaleIndicators,
	DurabilitySpecsInterest,
	TechnicalDocumentationFocus,
	SessionDuration,
	PageDepth,
	ProductInteractionQuality,
	ReturnVisitorPattern,
}

// Kind reports the value domain of s.
func (s Signal) Kind() SignalKind {
	switch s {
	case MultiRoomNavigation, ReturnVisitorPattern:
		return KindFlag
	case HeritageContentTime, SessionDuration, PageDepth:
		return KindMagnitude
	default:
		return KindUnit
	}
}

// Known reports whether s is one of the required signals.
func (s Signal) Known() bool {
	for _, r := range RequiredSignals {
		if r == s {
			return true
		}
	}
	return false
}

// SignalVector maps each signal to its value. Flags are stored as numbers
// (true=1, false=0); a numeric flag keeps its raw value.
type SignalVector map[Signal]float64

// Flag reads s as a boolean.
func (v SignalVector) Flag(s Signal) bool {
	return truthy(v[s])
}

// Clone returns an independent copy of v.
func (v SignalVector) Clone() SignalVector {
	out := make(SignalVector, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// validate checks that every required signal is present and finite.
func (v SignalVector) validate() error {
	var missing, malformed []string
	for _, s := range RequiredSignals {
		val, ok := v[s]
		switch {
		case !ok:
			missing = append(missing, string(s))
		case math.IsNaN(val) || math.IsInf(val, 0):
			malformed = append(malformed, string(s))
		}
	}
	if len(missing) > 0 || len(malformed) > 0 {
		return &InvalidInputError{Missing: missing, Malformed: malformed}
	}
	return nil
}

// ParseSignals converts a decoded JSON object into a SignalVector.
// Unknown keys are ignored. A null value counts as missing; a value that is
// neither a number nor (for flags) a boolean is malformed.
func ParseSignals(raw map[string]any) (SignalVector, error) {
	out := make(SignalVector, len(RequiredSignals))
	var missing, malformed []string

	for _, s := range RequiredSignals {
		val, ok := raw[string(s)]
		if !ok || val == nil {
			missing = append(missing, string(s))
			continue
		}
		f, ok := toFloat(val, s.Kind() == KindFlag)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			malformed = append(malformed, string(s))
			continue
		}
		out[s] = f
	}

	if len(missing) > 0 || len(malformed) > 0 {
		return nil, &InvalidInputError{Missing: missing, Malformed: malformed}
	}
	return out, nil
}

func toFloat(val any, allowBool bool) (float64, bool) {
	switch n := val.(type) {
	case bool:
		if !allowBool {
			return 0, false
		}
		if n {
			return 1, true
		}
		return 0, true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func truthy(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}

func boolValue(v float64) float64 {
	if truthy(v) {
		return 1
	}
	return 0
}

// clamp01 bounds v to [0,1]; NaN becomes 0.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func joinSignals(names []string) string {
	return strings.Join(names, ", ")
}
