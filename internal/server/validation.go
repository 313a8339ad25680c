package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/raysh454/segmentd/internal/segment"
)

// errRequestInvalid marks a request rejected before classification.
var errRequestInvalid = errors.New("invalid request")

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateRequest checks the request shape with struct tags.
func (s *Server) validateRequest(req *ClassifyRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", errRequestInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", errRequestInvalid, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required_without":
		return "either signals or demo_mode is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// checkRanges enforces the value domain of every signal: unit signals in
// [0,1], magnitudes non-negative. Flags accept any finite value.
func checkRanges(v segment.SignalVector) error {
	var bad []string
	for _, sig := range segment.RequiredSignals {
		val := v[sig]
		switch sig.Kind() {
		case segment.KindUnit:
			if val < 0 || val > 1 {
				bad = append(bad, fmt.Sprintf("%s must be between 0 and 1, got %v", sig, val))
			}
		case segment.KindMagnitude:
			if val < 0 {
				bad = append(bad, fmt.Sprintf("%s must not be negative, got %v", sig, val))
			}
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", errRequestInvalid, strings.Join(bad, "; "))
	}
	return nil
}
