package detection

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/opengovlab/docucert/internal/core/domain"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultWeights(), NewCalibrator())
}

func TestShortTextShortCircuit(t *testing.T) {
	engine := newTestEngine()
	result := engine.AnalyzeText("way too short", Options{})

	if result.AIDetectionScore != 0.0 {
		t.Fatalf("expected score 0.0, got %.2f", result.AIDetectionScore)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %.2f", result.Confidence)
	}
	if result.Detected {
		t.Fatalf("expected detected=false")
	}
	if len(result.FlaggedSections) != 0 || len(result.Methods) != 0 {
		t.Fatalf("expected empty sections and methods for short text")
	}
}

func TestScoresStayInRange(t *testing.T) {
	engine := newTestEngine()
	samples := []string{
		strings.Repeat("This is a simple sentence. ", 100),
		syntheticLegislation(60),
		strings.Repeat("Furthermore, it is important to note that we delve into the rich tapestry of policy. ", 40),
		strings.Repeat("The committee met on Tuesday. Rain was forecast. Nobody attended, oddly. ", 30),
	}
	for i, text := range samples {
		result := engine.AnalyzeText(text, Options{})
		if result.AIDetectionScore < 0 || result.AIDetectionScore > 1 {
			t.Fatalf("sample %d: score out of range: %.4f", i, result.AIDetectionScore)
		}
		if result.Confidence < 0 || result.Confidence > 1 {
			t.Fatalf("sample %d: confidence out of range: %.4f", i, result.Confidence)
		}
	}
}

func TestSpreadMatchesModelScores(t *testing.T) {
	engine := newTestEngine()
	result := engine.AnalyzeText(strings.Repeat("This is a simple sentence. ", 100), Options{})

	max, min := -1.0, 2.0
	for _, s := range result.ModelScores {
		if s > max {
			max = s
		}
		if s < min {
			min = s
		}
	}
	if got, want := result.DetectionSpread, max-min; got != want {
		t.Fatalf("spread %.4f != max-min %.4f", got, want)
	}
}

func TestInconclusiveSuppressesSections(t *testing.T) {
	engine := newTestEngine()
	// Self-identification pins claude_style high while varied human prose
	// keeps the other detectors low, forcing a wide spread.
	text := "I'm Claude. I think the ethical considerations here matter. I believe the moral framing is hard. " +
		"I should note my understanding is partial. To be honest, I'm not sure. I want to be careful here. " +
		"It's important to consider the ethical implications and the moral weight and the competing interests involved now."
	result := engine.AnalyzeText(text, Options{})

	if result.DetectionSpread <= 0.5 {
		t.Skipf("constructed text no longer produces spread > 0.5 (got %.2f)", result.DetectionSpread)
	}
	if !result.DetectionInconclusive {
		t.Fatalf("expected inconclusive for spread %.2f", result.DetectionSpread)
	}
	if result.InconclusiveReason == nil {
		t.Fatalf("expected an inconclusive reason")
	}
	if len(result.FlaggedSections) != 0 {
		t.Fatalf("inconclusive result must suppress flagged sections, got %d", len(result.FlaggedSections))
	}
}

func TestCalibrationOnlyLowersScore(t *testing.T) {
	calibrated := NewEngine(DefaultWeights(), NewCalibrator())
	uncalibrated := NewEngine(DefaultWeights(), nil)

	text := syntheticLegislation(60)
	withCal := calibrated.AnalyzeText(text, Options{DocumentTypeHint: "legislation"})
	withoutCal := uncalibrated.AnalyzeText(text, Options{})

	if withCal.AIDetectionScore > withoutCal.AIDetectionScore {
		t.Fatalf("calibration raised the score: %.4f > %.4f", withCal.AIDetectionScore, withoutCal.AIDetectionScore)
	}
	if withCal.AIDetectionScore < 0 {
		t.Fatalf("calibrated score below floor: %.4f", withCal.AIDetectionScore)
	}
	if withCal.DocumentBaseline == nil {
		t.Fatalf("expected baseline attached")
	}
	if withoutCal.DocumentBaseline != nil {
		t.Fatalf("nil calibrator must not attach a baseline")
	}
}

func TestEngineDegradesWithoutCalibrator(t *testing.T) {
	engine := NewEngine(DefaultWeights(), nil)
	result := engine.AnalyzeText(strings.Repeat("Ordinary prose for the degraded path check. ", 10), Options{})
	if result.DetectedDocumentType != domain.TypeReport {
		t.Fatalf("expected default type without calibrator, got %s", result.DetectedDocumentType)
	}
}

func TestDeterminismIgnoringTimestamp(t *testing.T) {
	engine := newTestEngine()
	text := syntheticLegislation(30)

	first := engine.AnalyzeText(text, Options{})
	second := engine.AnalyzeText(text, Options{})
	first.Timestamp = time.Time{}
	second.Timestamp = time.Time{}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("same input produced different output:\n%s\n%s", a, b)
	}
}

func TestConfidenceThresholdIsInert(t *testing.T) {
	engine := newTestEngine()
	text := syntheticLegislation(30)

	def := engine.AnalyzeText(text, Options{})
	tuned := engine.AnalyzeText(text, Options{ConfidenceThreshold: 0.5})
	if def.AIDetectionScore != tuned.AIDetectionScore || def.Confidence != tuned.Confidence {
		t.Fatalf("confidence_threshold must not influence results")
	}
}

func TestDetectorWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	sum := 0.0
	for _, name := range DetectorOrder {
		weight, ok := w.Detector[name]
		if !ok {
			t.Fatalf("missing weight for %s", name)
		}
		sum += weight
	}
	if sum < 0.9999 || sum > 1.0001 {
		t.Fatalf("weights sum to %.4f, want 1.0", sum)
	}
}
