package detection

import "github.com/opengovlab/docucert/internal/core/domain"

// DetectionWeights gathers every load-bearing constant of the consensus
// pipeline in one tunable value object. The defaults are calibrated against
// report expectations; changing them changes externally observable scores.
type DetectionWeights struct {
	// Detector weights, must sum to 1.0. Iterated via DetectorOrder so the
	// consensus is deterministic.
	Detector map[string]float64

	// MinTextLength short-circuits the whole pipeline below this many bytes.
	MinTextLength int

	// Spread thresholds. Above Inconclusive the result is marked
	// inconclusive and confidence is multiplied by InconclusiveFactor;
	// above Disagreement a softer warning applies confidence *= (1 - spread/2).
	SpreadInconclusive float64
	SpreadDisagreement float64
	InconclusiveFactor float64

	// Model attribution decision rule.
	AttributionFloor    float64
	AttributionMargin   float64
	AttributionOverride float64
	HighConfidenceScore float64

	// Flagged-section surfacing.
	SectionScoreGate   float64
	SentenceFlagLevel  float64
	MaxFlaggedSections int
}

// DetectorOrder fixes detector iteration for deterministic output.
var DetectorOrder = []string{
	domain.DetectorBurstiness,
	domain.DetectorStatistical,
	domain.DetectorPhraseFingerprint,
	domain.DetectorGPTStyle,
	domain.DetectorGeminiStyle,
	domain.DetectorClaudeStyle,
	domain.DetectorDeepSeekStyle,
	domain.DetectorLlamaStyle,
}

// ModelBuckets are the detectors eligible for model attribution, in
// tie-break order. The three commercial-detector-style heuristics are
// excluded on purpose.
var ModelBuckets = []string{
	domain.DetectorGPTStyle,
	domain.DetectorGeminiStyle,
	domain.DetectorClaudeStyle,
	domain.DetectorDeepSeekStyle,
	domain.DetectorLlamaStyle,
}

func DefaultWeights() DetectionWeights {
	return DetectionWeights{
		Detector: map[string]float64{
			domain.DetectorBurstiness:        0.20,
			domain.DetectorStatistical:       0.20,
			domain.DetectorPhraseFingerprint: 0.10,
			domain.DetectorGPTStyle:          0.15,
			domain.DetectorGeminiStyle:       0.10,
			domain.DetectorClaudeStyle:       0.10,
			domain.DetectorDeepSeekStyle:     0.08,
			domain.DetectorLlamaStyle:        0.07,
		},

		MinTextLength: 100,

		SpreadInconclusive: 0.50,
		SpreadDisagreement: 0.40,
		InconclusiveFactor: 0.30,

		AttributionFloor:    0.40,
		AttributionMargin:   0.10,
		AttributionOverride: 0.70,
		HighConfidenceScore: 0.60,

		SectionScoreGate:   0.30,
		SentenceFlagLevel:  0.60,
		MaxFlaggedSections: 5,
	}
}
