package segment

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput reports a signal vector that cannot be classified.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegradedComputation marks a derived metric that could not be
	// computed and was replaced by its default.
	ErrDegradedComputation = errors.New("degraded computation")

	// ErrUnknownSegment is returned by catalog lookups for an id outside the catalog.
	ErrUnknownSegment = errors.New("unknown segment")
)

// InvalidInputError names the signals that were missing or malformed.
// It matches ErrInvalidInput under errors.Is.
type InvalidInputError struct {
	Missing   []string
	Malformed []string
}

func (e *InvalidInputError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required signals: %s", joinSignals(e.Missing)))
	}
	if len(e.Malformed) > 0 {
		parts = append(parts, fmt.Sprintf("malformed signals: %s", joinSignals(e.Malformed)))
	}
	if len(parts) == 0 {
		return ErrInvalidInput.Error()
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
