package segment

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// SegmentID identifies one of the four customer segments.
type SegmentID string

const (
	ItalianHeritageAdvocate SegmentID = "italian_heritage_advocate"
	LuxuryProjectPlanner    SegmentID = "luxury_project_planner"
	InternationalMinimalist SegmentID = "international_minimalist"
	HospitalityProfessional SegmentID = "hospitality_professional"
)

// ContentAngleID identifies a marketing messaging category.
type ContentAngleID string

const (
	AngleItalianHeritage         ContentAngleID = "italian_heritage"
	AngleLuxuryTransformation    ContentAngleID = "luxury_transformation"
	AngleContemporaryIntegration ContentAngleID = "contemporary_integration"
	AngleCommercialExcellence    ContentAngleID = "commercial_excellence"
)

// thresholdConfidence is the thresholds key every segment must define.
const thresholdConfidence = "confidence"

// SegmentDefinition describes one segment. Only Thresholds takes part in
// classification; the remaining fields are descriptive.
type SegmentDefinition struct {
	ID              SegmentID          `json:"id" yaml:"id"`
	Name            string             `json:"name" yaml:"name"`
	Description     string             `json:"description" yaml:"description"`
	KeySignals      []Signal           `json:"key_signals" yaml:"key_signals"`
	Thresholds      map[string]float64 `json:"thresholds" yaml:"thresholds"`
	Characteristics []string           `json:"characteristics" yaml:"characteristics"`
}

// ConfidenceThreshold returns the minimum probability for the segment to win.
func (d SegmentDefinition) ConfidenceThreshold() float64 {
	return d.Thresholds[thresholdConfidence]
}

func (d SegmentDefinition) clone() SegmentDefinition {
	out := d
	out.KeySignals = append([]Signal(nil), d.KeySignals...)
	out.Characteristics = append([]string(nil), d.Characteristics...)
	out.Thresholds = make(map[string]float64, len(d.Thresholds))
	for k, v := range d.Thresholds {
		out.Thresholds[k] = v
	}
	return out
}

// ContentAngle is a messaging category recommended for a segment.
type ContentAngle struct {
	ID          ContentAngleID `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Themes      []string       `json:"themes" yaml:"themes"`
}

func (a ContentAngle) clone() ContentAngle {
	out := a
	out.Themes = append([]string(nil), a.Themes...)
	return out
}

type catalogFile struct {
	ContentAngles []ContentAngle      `yaml:"content_angles"`
	Segments      []SegmentDefinition `yaml:"segments"`
}

// Catalog is the immutable segment and content angle configuration.
// It is built once at startup and shared by every classification; all
// accessors return copies.
type Catalog struct {
	segments []SegmentDefinition
	index    map[SegmentID]int
	angles   []ContentAngle
	angleIdx map[ContentAngleID]int
}

// DefaultCatalog parses the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(embeddedCatalog)
}

// LoadCatalog reads a catalog from path, or the embedded catalog when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes and validates a YAML catalog. The catalog must define
// exactly the four known segments, each with a confidence threshold in [0,1],
// and every content angle a segment maps to.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	c := &Catalog{
		index:    make(map[SegmentID]int, len(file.Segments)),
		angleIdx: make(map[ContentAngleID]int, len(file.ContentAngles)),
	}

	for _, a := range file.ContentAngles {
		if a.ID == "" {
			return nil, fmt.Errorf("content angle without id")
		}
		if _, dup := c.angleIdx[a.ID]; dup {
			return nil, fmt.Errorf("duplicate content angle %q", a.ID)
		}
		c.angleIdx[a.ID] = len(c.angles)
		c.angles = append(c.angles, a.clone())
	}

	for _, s := range file.Segments {
		v, ok := variantFor(s.ID)
		if !ok {
			return nil, fmt.Errorf("%w: %q has no scoring model", ErrUnknownSegment, s.ID)
		}
		if _, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate segment %q", s.ID)
		}
		th, ok := s.Thresholds[thresholdConfidence]
		if !ok {
			return nil, fmt.Errorf("segment %q: missing %s threshold", s.ID, thresholdConfidence)
		}
		if th < 0 || th > 1 {
			return nil, fmt.Errorf("segment %q: %s threshold %v outside [0,1]", s.ID, thresholdConfidence, th)
		}
		for _, sig := range s.KeySignals {
			if !sig.Known() {
				return nil, fmt.Errorf("segment %q: unknown key signal %q", s.ID, sig)
			}
		}
		if _, ok := c.angleIdx[v.angle]; !ok {
			return nil, fmt.Errorf("segment %q: content angle %q not in catalog", s.ID, v.angle)
		}
		c.index[s.ID] = len(c.segments)
		c.segments = append(c.segments, s.clone())
	}

	for _, v := range variants {
		if _, ok := c.index[v.id]; !ok {
			return nil, fmt.Errorf("segment %q missing from catalog", v.id)
		}
	}
	if _, ok := c.angleIdx[AngleContemporaryIntegration]; !ok {
		return nil, fmt.Errorf("fallback content angle %q missing from catalog", AngleContemporaryIntegration)
	}

	return c, nil
}

// Segments returns the segment definitions in declaration order.
func (c *Catalog) Segments() []SegmentDefinition {
	out := make([]SegmentDefinition, len(c.segments))
	for i, s := range c.segments {
		out[i] = s.clone()
	}
	return out
}

// Segment looks up a segment definition by id.
func (c *Catalog) Segment(id SegmentID) (SegmentDefinition, error) {
	i, ok := c.index[id]
	if !ok {
		return SegmentDefinition{}, fmt.Errorf("%w: %q", ErrUnknownSegment, id)
	}
	return c.segments[i].clone(), nil
}

// Threshold returns the confidence threshold of a segment.
func (c *Catalog) Threshold(id SegmentID) (float64, error) {
	i, ok := c.index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSegment, id)
	}
	return c.segments[i].ConfidenceThreshold(), nil
}

// ContentAngles returns every content angle in declaration order.
func (c *Catalog) ContentAngles() []ContentAngle {
	out := make([]ContentAngle, len(c.angles))
	for i, a := range c.angles {
		out[i] = a.clone()
	}
	return out
}

// ContentAngle looks up a content angle by id.
func (c *Catalog) ContentAngle(id ContentAngleID) (ContentAngle, bool) {
	i, ok := c.angleIdx[id]
	if !ok {
		return ContentAngle{}, false
	}
	return c.angles[i].clone(), true
}
