package detection

import (
	"fmt"
	"math"
	"time"

	"github.com/opengovlab/docucert/internal/core/domain"
)

// Options tunes one analysis call. ConfidenceThreshold is accepted for
// interface parity with older callers but does not influence any branch.
type Options struct {
	ConfidenceThreshold float64
	DocumentTypeHint    string
}

// Engine runs the eight sub-detectors and combines them into one consensus
// verdict. A nil calibrator means no genre calibration is applied; the
// engine degrades rather than fails.
type Engine struct {
	weights    DetectionWeights
	calibrator *Calibrator
	detectors  map[string]detectorFunc
}

func NewEngine(weights DetectionWeights, calibrator *Calibrator) *Engine {
	return &Engine{
		weights:    weights,
		calibrator: calibrator,
		detectors:  builtinDetectors(),
	}
}

// AnalyzeText is the consensus pipeline. Order matters: genre calibration is
// applied before the spread check, so a specialized document whose detectors
// also disagree receives both corrections stacked.
func (e *Engine) AnalyzeText(text string, opts Options) *domain.ConsensusResult {
	now := time.Now().UTC()

	if len(text) < e.weights.MinTextLength {
		return shortTextResult(now)
	}

	scores := e.runDetectors(text)

	weighted := 0.0
	for _, name := range DetectorOrder {
		weighted += scores[name] * e.weights.Detector[name]
	}

	values := make([]float64, 0, len(DetectorOrder))
	for _, name := range DetectorOrder {
		values = append(values, scores[name])
	}
	confidence := 1 - math.Min(stdev(values), 1)

	result := &domain.ConsensusResult{
		AIDetectionScore:     weighted,
		Confidence:           confidence,
		ModelScores:          scores,
		Methods:              append([]string(nil), DetectorOrder...),
		Timestamp:            now,
		DetectedDocumentType: domain.TypeReport,
		FlaggedSections:      []domain.FlaggedSection{},
	}

	if e.calibrator != nil {
		baseline := e.calibrator.Analyze(text, opts.DocumentTypeHint)
		result.DocumentBaseline = baseline
		result.DetectedDocumentType = baseline.DocumentType
		result.AIDetectionScore = math.Max(0, result.AIDetectionScore+baseline.AIScoreAdjustment)
		result.Confidence *= 1 - baseline.ConfidencePenalty
		result.DomainWarnings = append(result.DomainWarnings, baseline.Warnings...)
	}

	spread := maxScore(values) - minScore(values)
	result.DetectionSpread = spread
	switch {
	case spread > e.weights.SpreadInconclusive:
		reason := fmt.Sprintf(
			"detector disagreement too high (spread %.2f > %.2f): no single score can be trusted",
			spread, e.weights.SpreadInconclusive,
		)
		result.DetectionInconclusive = true
		result.InconclusiveReason = &reason
		result.Confidence *= e.weights.InconclusiveFactor
		result.DomainWarnings = append(result.DomainWarnings, reason)
	case spread > e.weights.SpreadDisagreement:
		result.DomainWarnings = append(result.DomainWarnings, fmt.Sprintf(
			"notable detector disagreement (spread %.2f); treat the consensus score with caution", spread,
		))
		result.Confidence *= 1 - spread*0.5
	}

	result.Confidence = clampScore(result.Confidence)
	result.Detected = result.AIDetectionScore > 0.5

	// Attribution works on the raw per-detector scores, not the calibrated
	// consensus.
	result.LikelyAIModel = attributeModel(scores, e.weights)

	if !result.DetectionInconclusive && result.AIDetectionScore > e.weights.SectionScoreGate {
		result.FlaggedSections = flagSections(text, e.weights)
	}

	result.ScoreConfidenceInterval = confidenceInterval(result.AIDetectionScore, result.Confidence)
	result.Interpretation, result.Recommendation = interpret(result)

	return result
}

func (e *Engine) runDetectors(text string) map[string]float64 {
	scores := make(map[string]float64, len(DetectorOrder))
	for _, name := range DetectorOrder {
		scores[name] = e.detectors[name](text)
	}
	return scores
}

// rawWeightedScore reruns the detector battery without the length guard or
// calibration. The deep analyzer uses it for per-sentence scoring.
func (e *Engine) rawWeightedScore(text string) float64 {
	scores := e.runDetectors(text)
	weighted := 0.0
	for _, name := range DetectorOrder {
		weighted += scores[name] * e.weights.Detector[name]
	}
	return weighted
}

func shortTextResult(now time.Time) *domain.ConsensusResult {
	return &domain.ConsensusResult{
		AIDetectionScore:     0.0,
		Confidence:           1.0,
		Detected:             false,
		FlaggedSections:      []domain.FlaggedSection{},
		Methods:              []string{},
		ModelScores:          map[string]float64{},
		Timestamp:            now,
		DetectedDocumentType: domain.TypeReport,
		Interpretation:       "Text too short for reliable analysis (minimum 100 characters).",
		Recommendation:       "Provide a longer sample.",
		ScoreConfidenceInterval: domain.ConfidenceInterval{
			Low: 0, High: 0, Display: "0%–0%",
		},
	}
}

func maxScore(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func minScore(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// confidenceInterval widens around the score as confidence drops. Display is
// the only place percentages appear in this package.
func confidenceInterval(score, confidence float64) domain.ConfidenceInterval {
	halfWidth := 0.05 + 0.25*(1-confidence)
	low := math.Max(0, score-halfWidth)
	high := math.Min(1, score+halfWidth)
	return domain.ConfidenceInterval{
		Low:     low,
		High:    high,
		Display: fmt.Sprintf("%.0f%%–%.0f%%", low*100, high*100),
	}
}

func interpret(result *domain.ConsensusResult) (string, string) {
	if result.DetectionInconclusive {
		return "INCONCLUSIVE: the detection methods disagree too strongly for any verdict.",
			"Do not rely on the consensus score. Obtain provenance evidence or a longer sample and re-run the analysis."
	}

	switch score := result.AIDetectionScore; {
	case score < 0.2:
		return "The text shows predominantly human writing patterns.",
			"No action needed; stylistic variation is consistent with human authorship."
	case score < 0.4:
		return "The text shows mostly human patterns with some machine-like regularity.",
			"Spot-check the flagged passages if full provenance is required."
	case score < 0.6:
		return "The text mixes human and AI-typical patterns in comparable measure.",
			"Review flagged sections and request drafting history before certifying."
	case score < 0.8:
		return "The text shows substantial AI-typical patterning.",
			"Treat as likely AI-assisted; require the author to document their drafting process."
	default:
		return "The text shows strong AI-generation signatures across multiple methods.",
			"Treat as machine-generated pending contrary evidence."
	}
}
