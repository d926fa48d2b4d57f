package detection

import (
	"strings"
	"testing"
)

func TestBurstinessHighOnRepetitiveText(t *testing.T) {
	text := strings.Repeat("This is a simple sentence. ", 100)
	score := detectBurstiness(text)
	if score < 0.9 {
		t.Fatalf("expected burstiness >= 0.9 for zero-variance repetitive text, got %.2f", score)
	}
}

func TestBurstinessLowOnVariedText(t *testing.T) {
	text := "No. I refused outright. The committee, after three contentious sessions spanning the better part of a month, reached an entirely different conclusion about the budget. Why? Nobody could say. Short bursts followed long meandering passages, and that was fine."
	score := detectBurstiness(text)
	if score > 0.5 {
		t.Fatalf("expected low burstiness score for varied sentence lengths, got %.2f", score)
	}
}

func TestClaudeStyleSelfIdentificationFloor(t *testing.T) {
	text := "Hello there. I'm Claude, and this response was produced for a routine weather question with no other notable content at all."
	score := detectClaudeStyle(text)
	if score < 0.40 {
		t.Fatalf("expected claude_style >= 0.40 from self-identification alone, got %.2f", score)
	}
}

func TestPhraseFingerprintNormalizedByFixedDivisor(t *testing.T) {
	text := strings.Repeat("It is important to note that things happen. ", 5)
	score := detectPhraseFingerprint(text)
	if score != 0.5 {
		t.Fatalf("expected 5 matches / divisor 10 = 0.5, got %.2f", score)
	}
}

func TestPhraseFingerprintCapsAtOne(t *testing.T) {
	text := strings.Repeat("In conclusion, it is important to note this. ", 30)
	if score := detectPhraseFingerprint(text); score != 1.0 {
		t.Fatalf("expected capped score 1.0, got %.2f", score)
	}
}

func TestAllDetectorsStayInRange(t *testing.T) {
	samples := []string{
		"",
		"short",
		strings.Repeat("This is a simple sentence. ", 200),
		strings.Repeat("# Header\n- bullet one\n- bullet two\n**bold** text.\n\n", 40),
		strings.Repeat("Furthermore, it is important to note that, in conclusion, we delve into the rich tapestry. ", 50),
		strings.Repeat("😀 Great question! Let's dive in. 1. First step. | a | b | c |\n", 30),
		strings.Repeat("The colour of the behaviour whilst we optimise the algorithm parameter complexity. ", 30),
	}

	for name, fn := range builtinDetectors() {
		for i, sample := range samples {
			score := fn(sample)
			if score < 0 || score > 1 {
				t.Fatalf("detector %s sample %d out of range: %.4f", name, i, score)
			}
		}
	}
}

func TestDetectorsArePure(t *testing.T) {
	text := strings.Repeat("Furthermore, we delve into the topic. It is important to note the outcome. ", 20)
	for name, fn := range builtinDetectors() {
		first := fn(text)
		second := fn(text)
		if first != second {
			t.Fatalf("detector %s not deterministic: %.6f vs %.6f", name, first, second)
		}
	}
}

func TestGPTStyleMarkdownDensityBands(t *testing.T) {
	// 25 structural matches clears the >20 band.
	structured := strings.Repeat("# Title\n- item\n", 13)
	score := detectGPTStyle(structured)
	if score < 0.30 {
		t.Fatalf("expected at least the 0.30 structural bonus, got %.2f", score)
	}
}

func TestLlamaStyleInvertedHedgeDensity(t *testing.T) {
	// Confident business prose with no hedge words at all.
	confident := strings.Repeat("The stakeholder roadmap is actionable and the deliverable meets the baseline metric for the dataset. ", 10)
	hedged := strings.Repeat("The plan may possibly work and perhaps seems likely to maybe help, though it could appear unclear. ", 10)

	if cs, hs := detectLlamaStyle(confident), detectLlamaStyle(hedged); cs <= hs {
		t.Fatalf("expected hedge-free business prose to outscore hedged prose: %.2f vs %.2f", cs, hs)
	}
}
