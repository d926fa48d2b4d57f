package detection

import (
	"math"
	"strings"

	"github.com/opengovlab/docucert/internal/core/domain"
)

// Level weights of the deep consensus. Fingerprint (level 3) and model
// fingerprints (level 5) carry no numeric weight: they vote on the primary
// model only. This asymmetry is part of the published methodology.
const (
	levelWeightConsensus  = 0.30
	levelWeightSections   = 0.25
	levelWeightSentences  = 0.20
	levelWeightStylometry = 0.15
)

// fallbackChunkSize splits unstructured documents when no headers are found.
const fallbackChunkSize = 2000

// DeepAnalyzer reruns the consensus engine at section and sentence
// granularity and folds five independent levels into a second consensus.
// Analyzing an N-sentence document costs O(N) full detector passes.
type DeepAnalyzer struct {
	engine      *Engine
	maxSections int
}

func NewDeepAnalyzer(engine *Engine, maxSections int) *DeepAnalyzer {
	if maxSections <= 0 {
		maxSections = 10
	}
	return &DeepAnalyzer{engine: engine, maxSections: maxSections}
}

func (d *DeepAnalyzer) Analyze(text string, opts Options) *domain.DeepAnalysisResult {
	level1 := d.engine.AnalyzeText(text, opts)
	sections := d.analyzeSections(text, opts)
	fingerprint := analyzeFingerprints(text)
	sentences := d.analyzeSentences(text)
	models := analyzeModelFingerprints(text)
	stylometry := analyzeStylometry(text)

	result := &domain.DeepAnalysisResult{
		Level1:      level1,
		Sections:    sections,
		Fingerprint: fingerprint,
		Sentences:   sentences,
		Models:      models,
		Stylometry:  stylometry,
	}
	result.Consensus = d.combine(result)
	return result
}

// analyzeSections is level 2: the full consensus pipeline per document
// section, averaged. Sections come from ALL-CAPS headings, with fixed-size
// chunking as the fallback for unstructured text.
func (d *DeepAnalyzer) analyzeSections(text string, opts Options) *domain.SectionLevelResult {
	parts := splitByHeadings(text)
	if len(parts) < 2 {
		parts = chunkText(text, fallbackChunkSize)
	}
	if len(parts) > d.maxSections {
		parts = parts[:d.maxSections]
	}

	result := &domain.SectionLevelResult{Sections: []domain.SectionScore{}}
	var sum float64
	scored := 0
	for i, part := range parts {
		sectionResult := d.engine.AnalyzeText(part.body, opts)
		result.Sections = append(result.Sections, domain.SectionScore{
			Index:        i + 1,
			Heading:      part.heading,
			Score:        sectionResult.AIDetectionScore,
			Confidence:   sectionResult.Confidence,
			Inconclusive: sectionResult.DetectionInconclusive,
		})
		sum += sectionResult.AIDetectionScore
		scored++
	}
	if scored > 0 {
		result.AverageScore = sum / float64(scored)
	}
	return result
}

type sectionPart struct {
	heading string
	body    string
}

func splitByHeadings(text string) []sectionPart {
	lines := strings.Split(text, "\n")
	var parts []sectionPart
	current := sectionPart{}
	var body strings.Builder

	flush := func() {
		current.body = strings.TrimSpace(body.String())
		if current.body != "" {
			parts = append(parts, current)
		}
		body.Reset()
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isMostlyUpper(trimmed) && countWords(trimmed) <= 12 {
			flush()
			current = sectionPart{heading: trimmed}
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	flush()
	return parts
}

// chunkText is the page-break-style fallback: fixed-size rune chunks with no
// overlap.
func chunkText(text string, size int) []sectionPart {
	runes := []rune(text)
	var parts []sectionPart
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			parts = append(parts, sectionPart{body: chunk})
		}
	}
	return parts
}

// analyzeFingerprints is level 3: the raw phrase-dictionary total with its
// explicit normalization to the canonical scale.
func analyzeFingerprints(text string) *domain.FingerprintLevelResult {
	count := countOccurrences(text, fingerprintPhrases)
	return &domain.FingerprintLevelResult{
		RawPatternCount: count,
		Score:           clampScore(float64(count) / fingerprintNormalizer),
	}
}

// analyzeSentences is level 4: the detector battery applied per sentence,
// aggregated into AI/human counts. The document-level length guard does not
// apply at sentence granularity.
func (d *DeepAnalyzer) analyzeSentences(text string) *domain.SentenceLevelResult {
	sentences := splitSentences(text)
	result := &domain.SentenceLevelResult{}
	for _, sentence := range sentences {
		if countWords(sentence) < 5 {
			continue
		}
		result.Total++
		if d.engine.rawWeightedScore(sentence) > 0.5 {
			result.AICount++
		} else {
			result.HumanCount++
		}
	}
	if result.Total > 0 {
		result.AIFraction = float64(result.AICount) / float64(result.Total)
	}
	return result
}

// analyzeModelFingerprints is level 5: per-model keyword counts with
// confidence from match density per 1000 characters.
func analyzeModelFingerprints(text string) *domain.ModelFingerprintResult {
	lower := strings.ToLower(text)
	matches := make(map[string]int, len(fingerprintOrder))
	best, bestCount, total := "", 0, 0
	for _, model := range fingerprintOrder {
		n := 0
		for _, kw := range modelKeywordFingerprints[model] {
			n += strings.Count(lower, kw)
		}
		matches[model] = n
		total += n
		if n > bestCount {
			best, bestCount = model, n
		}
	}

	confidence := 0.0
	if len(text) > 0 {
		perThousand := float64(total) / (float64(len(text)) / 1000.0)
		confidence = clampScore(perThousand / 10.0)
	}

	return &domain.ModelFingerprintResult{
		Matches:    matches,
		BestModel:  best,
		Confidence: confidence,
	}
}

func (d *DeepAnalyzer) combine(r *domain.DeepAnalysisResult) domain.DeepConsensus {
	levelScores := map[string]float64{
		"consensus":   r.Level1.AIDetectionScore,
		"sections":    r.Sections.AverageScore,
		"fingerprint": r.Fingerprint.Score,
		"sentences":   r.Sentences.AIFraction,
		"stylometry":  r.Stylometry.Score,
	}

	weighted := levelWeightConsensus*levelScores["consensus"] +
		levelWeightSections*levelScores["sections"] +
		levelWeightSentences*levelScores["sentences"] +
		levelWeightStylometry*levelScores["stylometry"]
	totalWeight := levelWeightConsensus + levelWeightSections + levelWeightSentences + levelWeightStylometry

	votes := map[string]int{}
	if r.Level1.LikelyAIModel.Model != nil && *r.Level1.LikelyAIModel.Model != domain.MixedModel {
		votes[*r.Level1.LikelyAIModel.Model]++
	}
	if r.Models.BestModel != "" {
		votes[r.Models.BestModel]++
	}
	primary := ""
	for _, model := range fingerprintOrder {
		if best, ok := votes[primary]; !ok || votes[model] > best {
			if votes[model] > 0 {
				primary = model
			}
		}
	}

	// Transparency measures inter-level agreement on the percent scale, not
	// detection certainty.
	percents := make([]float64, 0, len(levelScores))
	for _, name := range []string{"consensus", "sections", "fingerprint", "sentences", "stylometry"} {
		percents = append(percents, levelScores[name]*100)
	}
	transparency := math.Max(0, 100-2*stdev(percents))

	return domain.DeepConsensus{
		Score:             clampScore(weighted / totalWeight),
		LevelScores:       levelScores,
		PrimaryModel:      primary,
		ModelVotes:        votes,
		TransparencyScore: transparency,
	}
}
