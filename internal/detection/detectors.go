package detection

import (
	"regexp"
	"strings"

	"github.com/opengovlab/docucert/internal/core/domain"
)

// A detectorFunc maps document text to a score in [0,1]. Every detector is a
// pure function: stepped bonuses summed and capped at 1.0, no cross-detector
// normalization. Detectors saturate independently on long structured text;
// the genre calibrator compensates downstream.
type detectorFunc func(text string) float64

func builtinDetectors() map[string]detectorFunc {
	return map[string]detectorFunc{
		domain.DetectorBurstiness:        detectBurstiness,
		domain.DetectorStatistical:       detectStatistical,
		domain.DetectorPhraseFingerprint: detectPhraseFingerprint,
		domain.DetectorGPTStyle:          detectGPTStyle,
		domain.DetectorGeminiStyle:       detectGeminiStyle,
		domain.DetectorClaudeStyle:       detectClaudeStyle,
		domain.DetectorDeepSeekStyle:     detectDeepSeekStyle,
		domain.DetectorLlamaStyle:        detectLlamaStyle,
	}
}

var (
	headerRe     = regexp.MustCompile(`^\s{0,3}#{1,6}\s`)
	bulletRe     = regexp.MustCompile(`^\s*[-*+]\s`)
	numberedRe   = regexp.MustCompile(`^\s*\d+[.)]\s`)
	boldRe       = regexp.MustCompile(`\*\*[^*]+\*\*`)
	codeFenceRe  = regexp.MustCompile("(?m)^```")
	inlineCodeRe = regexp.MustCompile("`[^`\n]+`")
	tableRowRe   = regexp.MustCompile(`\|.*\|.*\|`)
	emojiRe      = regexp.MustCompile(`[\x{1F300}-\x{1FAFF}\x{2600}-\x{27BF}]`)
	mathSymbolRe = regexp.MustCompile(`[∑∫≈≤≥±×÷√∞Δσπ]|\^2|\^3`)
)

var fingerprintPhrases = []string{
	"it is important to note",
	"it's important to note",
	"it is worth noting",
	"it's worth noting",
	"in conclusion",
	"in summary",
	"to summarize",
	"delve into",
	"delving into",
	"plays a crucial role",
	"plays a vital role",
	"a testament to",
	"in today's rapidly evolving",
	"in the ever-evolving",
	"navigate the complexities",
	"rich tapestry",
	"multifaceted",
	"furthermore",
	"moreover",
	"additionally",
	"ultimately",
	"comprehensive overview",
	"let's explore",
	"as we can see",
	"at the end of the day",
}

var hedgingPhrases = []string{
	"may ", "might ", "could potentially", "can potentially", "generally",
	"typically", "often ", "in many cases", "tends to", "it is possible",
}

var connectivePhrases = []string{
	"additionally", "furthermore", "moreover", "in addition", "overall",
	"on the other hand", "as a result", "consequently",
}

// detectBurstiness mimics sentence-length-variance detectors: human prose is
// bursty, machine prose keeps an even cadence. Low variance and repeated
// sentences both push the score up.
func detectBurstiness(text string) float64 {
	sentences := splitSentences(text)
	score := 0.0

	if len(sentences) >= 3 {
		lengths := make([]float64, len(sentences))
		for i, s := range sentences {
			lengths[i] = float64(countWords(s))
		}
		m := mean(lengths)
		if m > 0 {
			cv := stdev(lengths) / m
			switch {
			case cv < 0.15:
				score += 0.75
			case cv < 0.30:
				score += 0.50
			case cv < 0.45:
				score += 0.30
			case cv < 0.60:
				score += 0.15
			}
		}
	}

	score += repetitionBonus(sentences)
	score += repetitionBonus(nonEmptyLines(text))

	return clampScore(score)
}

func repetitionBonus(units []string) float64 {
	if len(units) < 4 {
		return 0
	}
	seen := make(map[string]struct{}, len(units))
	for _, u := range units {
		seen[strings.ToLower(strings.TrimSpace(u))] = struct{}{}
	}
	ratio := 1 - float64(len(seen))/float64(len(units))
	switch {
	case ratio > 0.50:
		return 0.40
	case ratio > 0.30:
		return 0.25
	case ratio > 0.10:
		return 0.10
	default:
		return 0
	}
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

var commonWords = map[string]struct{}{
	"the": {}, "of": {}, "and": {}, "a": {}, "to": {}, "in": {}, "is": {},
	"that": {}, "it": {}, "for": {}, "on": {}, "with": {}, "as": {}, "are": {},
	"this": {}, "be": {}, "by": {}, "an": {}, "or": {}, "at": {},
}

// detectStatistical combines common-word frequency with vowel-group
// ("syllable") regularity. Machine text keeps both unnervingly steady.
func detectStatistical(text string) float64 {
	ws := words(text)
	if len(ws) < 20 {
		return 0
	}

	common := 0
	sylls := make([]float64, len(ws))
	for i, w := range ws {
		if _, ok := commonWords[w]; ok {
			common++
		}
		sylls[i] = float64(syllables(w))
	}

	score := 0.0
	ratio := float64(common) / float64(len(ws))
	switch {
	case ratio >= 0.35 && ratio <= 0.50:
		score += 0.45
	case ratio >= 0.28 && ratio <= 0.58:
		score += 0.25
	case ratio >= 0.20:
		score += 0.10
	}

	switch sd := stdev(sylls); {
	case sd < 0.70:
		score += 0.40
	case sd < 0.90:
		score += 0.25
	case sd < 1.20:
		score += 0.10
	}

	return clampScore(score)
}

// detectPhraseFingerprint counts stock AI phrases, normalized by a fixed
// divisor of 10 rather than document length.
func detectPhraseFingerprint(text string) float64 {
	count := countOccurrences(text, fingerprintPhrases)
	return clampScore(float64(count) / 10.0)
}

// detectGPTStyle: markdown structural density, hedging, paragraph-length
// uniformity and "comprehensive coverage" connectives.
func detectGPTStyle(text string) float64 {
	score := 0.0

	structural := countLinesMatching(text, headerRe) +
		countLinesMatching(text, bulletRe) +
		len(boldRe.FindAllString(text, -1))
	switch {
	case structural > 20:
		score += 0.30
	case structural > 10:
		score += 0.20
	case structural > 5:
		score += 0.10
	}

	switch hedges := countOccurrences(text, hedgingPhrases); {
	case hedges > 15:
		score += 0.20
	case hedges > 8:
		score += 0.10
	}

	paragraphs := splitParagraphs(text)
	if len(paragraphs) >= 3 {
		lengths := make([]float64, len(paragraphs))
		for i, p := range paragraphs {
			lengths[i] = float64(countWords(p))
		}
		switch sd := stdev(lengths); {
		case sd < 10:
			score += 0.25
		case sd < 20:
			score += 0.15
		case sd < 30:
			score += 0.05
		}
	}

	switch connectives := countOccurrences(text, connectivePhrases); {
	case connectives > 10:
		score += 0.25
	case connectives > 5:
		score += 0.15
	case connectives > 2:
		score += 0.05
	}

	return clampScore(score)
}

var greetingPhrases = []string{
	"great question", "happy to help", "i'd be happy to", "let's dive in",
	"let's break it down", "absolutely!",
}

var analogyPhrases = []string{
	"think of it like", "think of it as", "it's like", "imagine ",
	"analogous to", "similar to how",
}

var summaryPhrases = []string{
	"in short", "to summarize", "in a nutshell", "the bottom line",
	"to recap", "key takeaway",
}

// detectGeminiStyle: emoji, greetings, numbered steps, tables, analogies and
// summary phrasing.
func detectGeminiStyle(text string) float64 {
	score := 0.0

	switch emoji := len(emojiRe.FindAllString(text, -1)); {
	case emoji > 10:
		score += 0.30
	case emoji > 5:
		score += 0.20
	case emoji > 0:
		score += 0.10
	}

	switch greets := countOccurrences(text, greetingPhrases); {
	case greets > 2:
		score += 0.25
	case greets > 0:
		score += 0.15
	}

	switch steps := countLinesMatching(text, numberedRe); {
	case steps > 10:
		score += 0.20
	case steps > 5:
		score += 0.10
	}

	switch tables := len(tableRowRe.FindAllString(text, -1)); {
	case tables > 5:
		score += 0.15
	case tables > 0:
		score += 0.05
	}

	switch analogies := countOccurrences(text, analogyPhrases); {
	case analogies > 3:
		score += 0.20
	case analogies > 0:
		score += 0.10
	}

	switch summaries := countOccurrences(text, summaryPhrases); {
	case summaries > 2:
		score += 0.15
	case summaries > 0:
		score += 0.05
	}

	return clampScore(score)
}

var selfIDPhrases = []string{"i'm claude", "i am claude", "as claude"}

var ethicsPhrases = []string{
	"ethical considerations", "ethical implications", "moral ",
	"it's important to consider", "values at stake", "competing interests",
}

var metacognitivePhrases = []string{
	"i think", "i believe", "my understanding", "i should note",
	"to be honest", "i want to be careful", "i'm not sure",
}

var softHedges = []string{
	"perhaps", "arguably", "it seems", "likely", "somewhat", "to some extent",
}

var ethicsVocabulary = []string{
	"fairness", "harm", "wellbeing", "well-being", "autonomy",
	"transparency", "accountability", "dignity",
}

// detectClaudeStyle: self-identification dominates; the remaining bonuses
// cover ethics framing, brackets, metacognition and long measured paragraphs.
func detectClaudeStyle(text string) float64 {
	score := 0.0

	if countOccurrences(text, selfIDPhrases) > 0 {
		score += 0.40
	}

	switch ethics := countOccurrences(text, ethicsPhrases); {
	case ethics > 5:
		score += 0.20
	case ethics > 2:
		score += 0.10
	}

	switch brackets := strings.Count(text, "[") + strings.Count(text, "]"); {
	case brackets > 20:
		score += 0.10
	case brackets > 10:
		score += 0.05
	}

	switch meta := countOccurrences(text, metacognitivePhrases); {
	case meta > 5:
		score += 0.15
	case meta > 2:
		score += 0.08
	}

	switch hedges := countOccurrences(text, softHedges); {
	case hedges > 10:
		score += 0.15
	case hedges > 5:
		score += 0.08
	}

	if paragraphs := splitParagraphs(text); len(paragraphs) > 0 {
		total := 0
		for _, p := range paragraphs {
			total += countWords(p)
		}
		switch avg := float64(total) / float64(len(paragraphs)); {
		case avg > 120:
			score += 0.10
		case avg > 80:
			score += 0.05
		}
	}

	switch vocab := countOccurrences(text, ethicsVocabulary); {
	case vocab > 8:
		score += 0.10
	case vocab > 3:
		score += 0.05
	}

	return clampScore(score)
}

var britishSpellings = []string{
	"colour", "behaviour", "optimise", "optimisation", "analyse", "centre",
	"favour", "utilise", "organise", "realise", "whilst",
}

var technicalTerms = []string{
	"algorithm", "parameter", "optimization", "gradient", "matrix",
	"function", "variable", "complexity", "iteration", "coefficient",
}

// detectDeepSeekStyle: code/math density, British spellings, long even
// sentences and technical vocabulary.
func detectDeepSeekStyle(text string) float64 {
	score := 0.0

	switch fences := len(codeFenceRe.FindAllString(text, -1)); {
	case fences > 4:
		score += 0.25
	case fences > 0:
		score += 0.15
	}

	switch inline := len(inlineCodeRe.FindAllString(text, -1)); {
	case inline > 10:
		score += 0.10
	case inline > 3:
		score += 0.05
	}

	switch maths := len(mathSymbolRe.FindAllString(text, -1)); {
	case maths > 15:
		score += 0.20
	case maths > 5:
		score += 0.10
	}

	switch british := countOccurrences(text, britishSpellings); {
	case british > 5:
		score += 0.20
	case british > 2:
		score += 0.10
	}

	sentences := splitSentences(text)
	if len(sentences) >= 3 {
		total := 0
		for _, s := range sentences {
			total += countWords(s)
		}
		switch avg := float64(total) / float64(len(sentences)); {
		case avg >= 18 && avg <= 30:
			score += 0.15
		case avg >= 14 && avg <= 34:
			score += 0.08
		}
	}

	if wordCount := countWords(text); wordCount > 0 {
		density := float64(countOccurrences(text, technicalTerms)) / float64(wordCount)
		switch {
		case density > 0.010:
			score += 0.20
		case density > 0.005:
			score += 0.10
		}
	}

	if lines := nonEmptyLines(text); len(lines) > 0 {
		bullets := countLinesMatching(text, bulletRe)
		switch ratio := float64(bullets) / float64(len(lines)); {
		case ratio > 0.40:
			score += 0.10
		case ratio > 0.20:
			score += 0.05
		}
	}

	return clampScore(score)
}

var businessVocabulary = []string{
	"stakeholder", "leverage", "synergy", "roadmap", "deliverable",
	"alignment", "actionable", "best practices", "value proposition",
	"key performance",
}

var citationPhrases = []string{
	"according to", "studies show", "research indicates", "research shows",
	"et al", "as reported by",
}

var keyFindingsPhrases = []string{"key findings", "key takeaways", "main findings"}

var hedgeWords = []string{
	"may", "might", "could", "possibly", "perhaps", "probably", "seems",
	"appears", "suggests", "unclear",
}

var dataVocabulary = []string{
	"percent", "dataset", "figure", "table", "metric", "baseline",
	"survey", "respondents",
}

// detectLlamaStyle: business/report diction with conspicuously few hedges.
// The hedge-density bonus is inverted on purpose.
func detectLlamaStyle(text string) float64 {
	score := 0.0

	switch business := countOccurrences(text, businessVocabulary); {
	case business > 8:
		score += 0.25
	case business > 3:
		score += 0.15
	case business > 0:
		score += 0.05
	}

	switch citations := countOccurrences(text, citationPhrases); {
	case citations > 5:
		score += 0.20
	case citations > 2:
		score += 0.10
	}

	switch findings := countOccurrences(text, keyFindingsPhrases); {
	case findings > 2:
		score += 0.15
	case findings > 0:
		score += 0.08
	}

	ws := words(text)
	if len(ws) >= 50 {
		hedges := 0
		for _, w := range ws {
			for _, h := range hedgeWords {
				if w == h {
					hedges++
					break
				}
			}
		}
		switch density := float64(hedges) / float64(len(ws)); {
		case density < 0.005:
			score += 0.20
		case density < 0.010:
			score += 0.10
		}
	}

	switch headers := countLinesMatching(text, headerRe); {
	case headers > 10:
		score += 0.10
	case headers > 5:
		score += 0.05
	}

	switch data := countOccurrences(text, dataVocabulary); {
	case data > 8:
		score += 0.15
	case data > 3:
		score += 0.08
	}

	return clampScore(score)
}
