package segment

import "math"

// factorThreshold is the cut-off most factor rules compare against.
const factorThreshold = 0.6

// term is one weighted input of a segment score.
type term struct {
	signal Signal
	weight float64
	// scale, when positive, soft-normalizes a magnitude signal to min(v/scale, 1).
	scale float64
}

func (t term) value(v SignalVector) float64 {
	raw := v[t.signal]
	switch {
	case t.signal.Kind() == KindFlag:
		return boolValue(raw)
	case t.scale > 0:
		return math.Min(raw/t.scale, 1)
	default:
		return raw
	}
}

// factorRule emits message when its signal is set (flags) or strictly
// exceeds above (numeric signals).
type factorRule struct {
	signal  Signal
	above   float64
	message string
}

func (r factorRule) passes(v SignalVector) bool {
	if r.signal.Kind() == KindFlag {
		return v.Flag(r.signal)
	}
	return v[r.signal] > r.above
}

// variant is the scoring model of one segment: its weighted terms, the
// factors reported when it wins, the readiness multiplier and the content
// angle it maps to.
type variant struct {
	id         SegmentID
	terms      [3]term
	factors    [3]factorRule
	multiplier float64
	angle      ContentAngleID
}

func (m variant) score(v SignalVector) float64 {
	var sum float64
	for _, t := range m.terms {
		sum += t.weight * t.value(v)
	}
	return clamp01(sum)
}

func (m variant) classificationFactors(v SignalVector) []string {
	out := make([]string, 0, len(m.factors))
	for _, r := range m.factors {
		if r.passes(v) {
			out = append(out, r.message)
		}
	}
	return out
}

// variants is the closed set of segment models. ParseCatalog rejects any
// catalog that does not define exactly these segments.
var variants = [...]variant{
	{
		id: ItalianHeritageAdvocate,
		terms: [3]term{
			{signal: DesignerStoryEngagement, weight: 0.4},
			{signal: CraftsmanshipContentFocus, weight: 0.3},
			{signal: HeritageContentTime, weight: 0.3, scale: 120},
		},
		factors: [3]factorRule{
			{signal: DesignerStoryEngagement, above: factorThreshold, message: "High engagement with designer stories"},
			{signal: CraftsmanshipContentFocus, above: factorThreshold, message: "Strong focus on craftsmanship content"},
			{signal: HeritageContentTime, above: 90, message: "Extended time on heritage content"},
		},
		multiplier: 1.1,
		angle:      AngleItalianHeritage,
	},
	{
		id: LuxuryProjectPlanner,
		terms: [3]term{
			{signal: MultiRoomNavigation, weight: 0.35},
			{signal: CompleteProjectInterest, weight: 0.35},
			{signal: BudgetPremiumIndicators, weight: 0.3},
		},
		factors: [3]factorRule{
			{signal: MultiRoomNavigation, message: "Browsing across multiple rooms"},
			{signal: CompleteProjectInterest, above: factorThreshold, message: "Interest in complete project solutions"},
			{signal: BudgetPremiumIndicators, above: factorThreshold, message: "Premium budget indicators"},
		},
		multiplier: 1.5,
		angle:      AngleLuxuryTransformation,
	},
	{
		id: InternationalMinimalist,
		terms: [3]term{
			{signal: CleanAestheticPreference, weight: 0.4},
			{signal: IntegrationContentFocus, weight: 0.35},
			{signal: ContemporaryBrowsingPattern, weight: 0.25},
		},
		factors: [3]factorRule{
			{signal: CleanAestheticPreference, above: factorThreshold, message: "Preference for clean aesthetics"},
			{signal: IntegrationContentFocus, above: factorThreshold, message: "Focus on architectural integration"},
			{signal: ContemporaryBrowsingPattern, above: factorThreshold, message: "Contemporary browsing pattern"},
		},
		multiplier: 0.8,
		angle:      AngleContemporaryIntegration,
	},
	{
		id: HospitalityProfessional,
		terms: [3]term{
			{signal: CommercialScaleIndicators, weight: 0.4},
			{signal: DurabilitySpecsInterest, weight: 0.3},
			{signal: TechnicalDocumentationFocus, weight: 0.3},
		},
		factors: [3]factorRule{
			{signal: CommercialScaleIndicators, above: factorThreshold, message: "Commercial scale indicators"},
			{signal: DurabilitySpecsInterest, above: factorThreshold, message: "Interest in durability specifications"},
			{signal: TechnicalDocumentationFocus, above: factorThreshold, message: "Focus on technical documentation"},
		},
		multiplier: 1.3,
		angle:      AngleCommercialExcellence,
	},
}

func variantFor(id SegmentID) (variant, bool) {
	for _, v := range variants {
		if v.id == id {
			return v, true
		}
	}
	return variant{}, false
}

// ContentAngleFor maps a segment to its content angle. Ids outside the
// catalog map to contemporary_integration.
func ContentAngleFor(id SegmentID) ContentAngleID {
	if v, ok := variantFor(id); ok {
		return v.angle
	}
	return AngleContemporaryIntegration
}

// readinessMultiplier scales consultation readiness per segment; 1.0 for ids
// outside the catalog.
func readinessMultiplier(id SegmentID) float64 {
	if v, ok := variantFor(id); ok {
		return v.multiplier
	}
	return 1.0
}
