package detection

import (
	"math"
	"strings"
	"testing"
)

func deepFixtureText() string {
	var b strings.Builder
	b.WriteString("EXECUTIVE SUMMARY\n")
	b.WriteString(strings.Repeat("It is important to note that the policy delivers comprehensive outcomes. Furthermore, the approach is sound. ", 8))
	b.WriteString("\nBACKGROUND AND CONTEXT\n")
	b.WriteString(strings.Repeat("The committee reviewed the evidence over several months. Attendance varied wildly between sessions. ", 8))
	b.WriteString("\nRECOMMENDATIONS\n")
	b.WriteString(strings.Repeat("Moreover, stakeholders should leverage the actionable roadmap. In conclusion, adoption is advised. ", 8))
	return b.String()
}

func TestDeepAnalysisStructure(t *testing.T) {
	analyzer := NewDeepAnalyzer(newTestEngine(), 10)
	result := analyzer.Analyze(deepFixtureText(), Options{})

	if result.Level1 == nil || result.Sections == nil || result.Fingerprint == nil ||
		result.Sentences == nil || result.Models == nil || result.Stylometry == nil {
		t.Fatalf("expected all six levels populated")
	}
	if len(result.Sections.Sections) < 2 {
		t.Fatalf("expected heading-based sections, got %d", len(result.Sections.Sections))
	}
	for name, score := range result.Consensus.LevelScores {
		if score < 0 || score > 1 {
			t.Fatalf("level %s score out of canonical range: %.4f", name, score)
		}
	}
	if ts := result.Consensus.TransparencyScore; ts < 0 || ts > 100 {
		t.Fatalf("transparency out of range: %.2f", ts)
	}
}

func TestDeepConsensusWeighting(t *testing.T) {
	analyzer := NewDeepAnalyzer(newTestEngine(), 10)
	result := analyzer.Analyze(deepFixtureText(), Options{})

	ls := result.Consensus.LevelScores
	expected := (0.30*ls["consensus"] + 0.25*ls["sections"] + 0.20*ls["sentences"] + 0.15*ls["stylometry"]) / 0.90
	if math.Abs(result.Consensus.Score-clampScore(expected)) > 1e-9 {
		t.Fatalf("consensus score %.6f != recomputed %.6f", result.Consensus.Score, expected)
	}

	// Levels 3 and 5 must not move the numeric consensus.
	if _, ok := ls["fingerprint"]; !ok {
		t.Fatalf("fingerprint level score missing from the ledger")
	}
}

func TestFingerprintLevelKeepsRawCount(t *testing.T) {
	text := strings.Repeat("It is important to note this. ", 30)
	level := analyzeFingerprints(text)
	if level.RawPatternCount != 30 {
		t.Fatalf("expected raw count 30, got %d", level.RawPatternCount)
	}
	if level.Score < 0 || level.Score > 1 {
		t.Fatalf("normalized score out of range: %.2f", level.Score)
	}
}

func TestSentenceLevelCountsAddUp(t *testing.T) {
	analyzer := NewDeepAnalyzer(newTestEngine(), 10)
	result := analyzer.analyzeSentences(deepFixtureText())
	if result.AICount+result.HumanCount != result.Total {
		t.Fatalf("sentence counts do not add up: %d + %d != %d", result.AICount, result.HumanCount, result.Total)
	}
	if result.Total == 0 {
		t.Fatalf("expected sentences to be scored")
	}
	if f := result.AIFraction; f < 0 || f > 1 {
		t.Fatalf("ai fraction out of range: %.4f", f)
	}
}

func TestFallbackChunkingWhenNoHeadings(t *testing.T) {
	analyzer := NewDeepAnalyzer(newTestEngine(), 10)
	flat := strings.Repeat("Plain narrative text without any headings to split on, flowing continuously. ", 60)
	result := analyzer.analyzeSections(flat, Options{})
	if len(result.Sections) < 2 {
		t.Fatalf("expected fallback chunking to produce sections, got %d", len(result.Sections))
	}
}

func TestModelFingerprintDensityConfidence(t *testing.T) {
	heavy := strings.Repeat("We delve into the rich tapestry of the multifaceted landscape of policy. ", 20)
	sparse := strings.Repeat("The meeting happened on a rainy Tuesday afternoon without incident. ", 20)

	heavyResult := analyzeModelFingerprints(heavy)
	sparseResult := analyzeModelFingerprints(sparse)

	if heavyResult.BestModel != "GPT" {
		t.Fatalf("expected GPT fingerprint to dominate, got %q", heavyResult.BestModel)
	}
	if heavyResult.Confidence <= sparseResult.Confidence {
		t.Fatalf("expected higher density to mean higher confidence: %.3f vs %.3f", heavyResult.Confidence, sparseResult.Confidence)
	}
}

func TestStylometryLabelBands(t *testing.T) {
	uniform := strings.Repeat("The policy framework delivers consistent outcomes for all the communities involved today. ", 40)
	result := analyzeStylometry(uniform)
	if result.Score < 0 || result.Score > 1 {
		t.Fatalf("stylometry score out of range: %.2f", result.Score)
	}
	switch result.Label {
	case "LOW", "MEDIUM", "HIGH":
	default:
		t.Fatalf("unexpected label %q", result.Label)
	}
	if len(result.Indicators) > 5 {
		t.Fatalf("at most 5 indicators, got %d", len(result.Indicators))
	}
}
