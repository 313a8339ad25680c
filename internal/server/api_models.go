package server

import (
	"time"

	"github.com/raysh454/segmentd/internal/segment"
)

// ClassifyRequest carries either an explicit signal vector or a demo mode
// that substitutes a generated one. DemoMode wins when both are set.
type ClassifyRequest struct {
	Signals   map[string]any `json:"signals,omitempty" validate:"required_without=DemoMode"`
	DemoMode  string         `json:"demo_mode,omitempty" validate:"omitempty,oneof=heritage planner random" example:"heritage"`
	SessionID string         `json:"session_id,omitempty" validate:"omitempty,max=128" example:"sess_42"`
}

// ClassifyResponse is the envelope returned by the classify endpoints.
type ClassifyResponse struct {
	Success          bool                          `json:"success"`
	Data             *segment.ClassificationResult `json:"data,omitempty"`
	Error            string                        `json:"error,omitempty"`
	RequestID        string                        `json:"request_id"`
	SessionID        string                        `json:"session_id,omitempty"`
	DemoMode         string                        `json:"demo_mode,omitempty"`
	ProcessingTimeMS float64                       `json:"processing_time_ms"`
	Timestamp        time.Time                     `json:"timestamp"`
}

// ErrorResponse is the envelope for failures outside the classify endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error" example:"rate limit exceeded"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Service string `json:"service" example:"segmentd"`
	Version string `json:"version" example:"1.0.0"`
}

// SegmentsResponse lists the segment catalog in declaration order.
type SegmentsResponse struct {
	Segments []segment.SegmentDefinition `json:"segments"`
}

// ContentAnglesResponse lists the content angle catalog.
type ContentAnglesResponse struct {
	ContentAngles []segment.ContentAngle `json:"content_angles"`
}
