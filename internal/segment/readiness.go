package segment

import (
	"fmt"
	"math"
)

// defaultReadiness replaces a readiness score that could not be computed.
const defaultReadiness = 0.5

// readinessFunc computes the consultation readiness for a classified vector.
type readinessFunc func(v SignalVector, primary SegmentID) (float64, error)

// safeReadiness runs fn, turning a panic into ErrDegradedComputation.
func safeReadiness(fn readinessFunc, v SignalVector, primary SegmentID) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			score, err = 0, fmt.Errorf("%w: consultation readiness: %v", ErrDegradedComputation, r)
		}
	}()
	return fn(v, primary)
}

// consultationReadiness estimates how ready a session is for a sales
// follow-up, scaled by the primary segment's multiplier and clamped to [0,1].
func consultationReadiness(v SignalVector, primary SegmentID) (float64, error) {
	base := 0.3*math.Min(v[SessionDuration]/600, 1) +
		0.2*math.Min(v[PageDepth]/10, 1) +
		0.3*v[ProductInteractionQuality] +
		0.2*boolValue(v[ReturnVisitorPattern])

	scaled := base * readinessMultiplier(primary)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return 0, fmt.Errorf("%w: consultation readiness is not finite (%v)", ErrDegradedComputation, scaled)
	}
	return clamp01(scaled), nil
}
