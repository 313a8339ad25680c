package segment

import (
	"errors"
	"fmt"
	"time"

	"github.com/raysh454/segmentd/internal/logging"
)

// ClassificationResult is the outcome of classifying one signal vector.
type ClassificationResult struct {
	PrimarySegment             SegmentID             `json:"primary_segment"`
	ConfidenceScore            float64               `json:"confidence_score"`
	SegmentProbabilities       map[SegmentID]float64 `json:"segment_probabilities"`
	ClassificationFactors      []string              `json:"classification_factors"`
	ContentAngle               ContentAngleID        `json:"content_angle"`
	ConsultationReadinessScore float64               `json:"consultation_readiness_score"`
}

// Classifier maps signal vectors to segments. It holds only the immutable
// catalog, so a single Classifier is safe for concurrent use.
type Classifier struct {
	catalog   *Catalog
	logger    logging.Logger
	readiness readinessFunc
}

// NewClassifier builds a classifier over catalog.
func NewClassifier(catalog *Catalog, logger logging.Logger) (*Classifier, error) {
	if catalog == nil {
		return nil, errors.New("segment: nil catalog")
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("segment")
	}
	return &Classifier{
		catalog:   catalog,
		logger:    logger.With(logging.F("component", "segment-classifier")),
		readiness: consultationReadiness,
	}, nil
}

// Catalog returns the catalog the classifier was built with.
func (c *Classifier) Catalog() *Catalog {
	return c.catalog
}

// candidate is a scored segment considered for the primary slot.
type candidate struct {
	id          SegmentID
	probability float64
	threshold   float64
}

// Classify scores signals against every segment and picks the primary one.
// It returns an *InvalidInputError before scoring when a required signal is
// missing or not finite.
func (c *Classifier) Classify(signals SignalVector) (*ClassificationResult, error) {
	start := time.Now()

	if err := signals.validate(); err != nil {
		c.logger.Warn("rejected signal vector",
			logging.F("signal_count", len(signals)),
			logging.Err(err))
		return nil, err
	}

	probabilities := make(map[SegmentID]float64, len(c.catalog.segments))
	candidates := make([]candidate, 0, len(c.catalog.segments))
	for _, def := range c.catalog.segments {
		model, ok := variantFor(def.ID)
		if !ok {
			// ParseCatalog guarantees a model per segment
			return nil, fmt.Errorf("%w: %q", ErrUnknownSegment, def.ID)
		}
		p := model.score(signals)
		probabilities[def.ID] = p
		candidates = append(candidates, candidate{
			id:          def.ID,
			probability: p,
			threshold:   def.ConfidenceThreshold(),
		})
	}

	primary := selectPrimary(candidates)

	factors := []string{}
	if model, ok := variantFor(primary); ok {
		factors = model.classificationFactors(signals)
	}

	readiness, err := safeReadiness(c.readiness, signals, primary)
	if err != nil {
		c.logger.Warn("using default consultation readiness",
			logging.F("primary_segment", primary),
			logging.F("default", defaultReadiness),
			logging.Err(err))
		readiness = defaultReadiness
	}

	result := &ClassificationResult{
		PrimarySegment:             primary,
		ConfidenceScore:            probabilities[primary],
		SegmentProbabilities:       probabilities,
		ClassificationFactors:      factors,
		ContentAngle:               ContentAngleFor(primary),
		ConsultationReadinessScore: readiness,
	}

	c.logger.Info("classified session",
		logging.F("signal_count", len(signals)),
		logging.F("primary_segment", result.PrimarySegment),
		logging.F("confidence", result.ConfidenceScore),
		logging.F("duration_ms", float64(time.Since(start).Microseconds())/1000))

	return result, nil
}

// selectPrimary returns the eligible candidate (probability >= threshold) with
// the strictly greatest probability, the earliest one winning a tie. When no
// candidate is eligible the result is InternationalMinimalist.
func selectPrimary(candidates []candidate) SegmentID {
	primary := InternationalMinimalist
	best := -1.0
	for _, cand := range candidates {
		if cand.probability < cand.threshold {
			continue
		}
		if cand.probability > best {
			best = cand.probability
			primary = cand.id
		}
	}
	return primary
}
