package detection

import (
	"fmt"
	"strings"

	"github.com/opengovlab/docucert/internal/core/domain"
)

var bucketModelNames = map[string]string{
	domain.DetectorGPTStyle:      "GPT",
	domain.DetectorGeminiStyle:   "Gemini",
	domain.DetectorClaudeStyle:   "Claude",
	domain.DetectorDeepSeekStyle: "DeepSeek",
	domain.DetectorLlamaStyle:    "Llama",
}

// attributeModel is an arg-max-with-margin rule over the five model-specific
// buckets, not a classifier. Below the floor nothing is attributed; within
// the margin (unless the top score clears the override) the result is
// Mixed/Uncertain.
func attributeModel(scores map[string]float64, w DetectionWeights) domain.ModelAttribution {
	bucketScores := make(map[string]float64, len(ModelBuckets))
	best, second := "", ""
	for _, bucket := range ModelBuckets {
		s := scores[bucket]
		bucketScores[bucketModelNames[bucket]] = s
		if best == "" || s > scores[best] {
			second = best
			best = bucket
		} else if second == "" || s > scores[second] {
			second = bucket
		}
	}

	result := domain.ModelAttribution{ModelScores: bucketScores}

	maxScore := scores[best]
	if maxScore < w.AttributionFloor {
		result.Analysis = fmt.Sprintf(
			"no model fingerprint above the %.2f attribution floor (best %.2f)",
			w.AttributionFloor, maxScore,
		)
		return result
	}

	margin := maxScore - scores[second]
	if margin < w.AttributionMargin && maxScore < w.AttributionOverride {
		mixed := domain.MixedModel
		result.Model = &mixed
		result.Confidence = maxScore
		result.Analysis = fmt.Sprintf(
			"top fingerprints within %.2f of each other (%s %.2f vs %s %.2f); attribution ambiguous",
			w.AttributionMargin, bucketModelNames[best], maxScore, bucketModelNames[second], scores[second],
		)
		return result
	}

	name := bucketModelNames[best]
	level := "moderate"
	if maxScore > w.HighConfidenceScore {
		level = "high"
	}
	result.Model = &name
	result.Confidence = maxScore
	result.Analysis = fmt.Sprintf(
		"%s-style fingerprint dominates (%.2f, margin %.2f over %s): %s confidence",
		name, maxScore, margin, bucketModelNames[second], level,
	)
	return result
}

// flagSections re-scores individual sentences with a cheap phrase-and-
// structure heuristic and surfaces the worst offenders for human review.
func flagSections(text string, w DetectionWeights) []domain.FlaggedSection {
	sentences := splitSentences(text)
	flagged := make([]domain.FlaggedSection, 0, w.MaxFlaggedSections)

	for i, sentence := range sentences {
		if countWords(sentence) < 5 {
			continue
		}
		likelihood := quickSentenceScore(sentence)
		if likelihood < w.SentenceFlagLevel {
			continue
		}
		flagged = append(flagged, domain.FlaggedSection{
			Section:      i + 1,
			Text:         truncateSection(sentence),
			AILikelihood: likelihood,
		})
		if len(flagged) == w.MaxFlaggedSections {
			break
		}
	}
	return flagged
}

// quickSentenceScore is deliberately cheaper than the full detector battery:
// stock phrases, connectives and hedges only.
func quickSentenceScore(sentence string) float64 {
	score := 0.0
	score += 0.35 * float64(min(countOccurrences(sentence, fingerprintPhrases), 2))
	score += 0.20 * float64(min(countOccurrences(sentence, connectivePhrases), 2))
	score += 0.15 * float64(min(countOccurrences(sentence, hedgingPhrases), 2))
	if countOccurrences(sentence, selfIDPhrases) > 0 {
		score += 0.60
	}
	return clampScore(score)
}

func truncateSection(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= 100 {
		return s
	}
	return string(runes[:100]) + "..."
}
