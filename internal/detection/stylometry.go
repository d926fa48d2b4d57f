package detection

import "github.com/opengovlab/docucert/internal/core/domain"

// stylometryIndicator is one classic metric compared against a fixed
// threshold. Weights feed the level score; the count of firing indicators
// (1–5) sets the discrete confidence label.
type stylometryIndicator struct {
	name   string
	weight float64
	fired  func(m stylometryMetrics) bool
}

type stylometryMetrics struct {
	avgSentenceLength float64
	perplexityProxy   float64
	burstiness        float64
	lexicalDiversity  float64
	readability       float64
}

var stylometryIndicators = []stylometryIndicator{
	{"low_burstiness", 0.30, func(m stylometryMetrics) bool { return m.burstiness < 0.25 }},
	{"low_perplexity", 0.25, func(m stylometryMetrics) bool { return m.perplexityProxy < 0.45 }},
	{"low_lexical_diversity", 0.20, func(m stylometryMetrics) bool { return m.lexicalDiversity < 0.35 }},
	{"uniform_sentence_length", 0.15, func(m stylometryMetrics) bool {
		return m.avgSentenceLength >= 15 && m.avgSentenceLength <= 25
	}},
	{"mid_band_readability", 0.10, func(m stylometryMetrics) bool {
		return m.readability >= 40 && m.readability <= 60
	}},
}

// analyzeStylometry is deep-analysis level 6: readability, a perplexity
// proxy, burstiness and lexical diversity against fixed thresholds.
func analyzeStylometry(text string) *domain.StylometryResult {
	m := computeStylometryMetrics(text)

	score := 0.0
	var fired []string
	for _, ind := range stylometryIndicators {
		if ind.fired(m) {
			score += ind.weight
			fired = append(fired, ind.name)
		}
	}

	label := "LOW"
	switch {
	case len(fired) >= 4:
		label = "HIGH"
	case len(fired) >= 2:
		label = "MEDIUM"
	}

	return &domain.StylometryResult{
		AvgSentenceLength: m.avgSentenceLength,
		PerplexityProxy:   m.perplexityProxy,
		Burstiness:        m.burstiness,
		LexicalDiversity:  m.lexicalDiversity,
		Readability:       m.readability,
		Indicators:        fired,
		Score:             clampScore(score),
		Label:             label,
	}
}

func computeStylometryMetrics(text string) stylometryMetrics {
	sentences := splitSentences(text)
	ws := words(text)
	if len(sentences) == 0 || len(ws) == 0 {
		return stylometryMetrics{}
	}

	lengths := make([]float64, len(sentences))
	for i, s := range sentences {
		lengths[i] = float64(countWords(s))
	}
	avgLen := mean(lengths)

	burstiness := 0.0
	if avgLen > 0 {
		burstiness = stdev(lengths) / avgLen
	}

	unique := make(map[string]struct{}, len(ws))
	totalSyllables := 0
	for _, w := range ws {
		unique[w] = struct{}{}
		totalSyllables += syllables(w)
	}
	diversity := float64(len(unique)) / float64(len(ws))

	// Bigram novelty as a cheap stand-in for perplexity: machine text
	// recycles word pairs.
	bigrams := make(map[[2]string]struct{})
	for i := 0; i+1 < len(ws); i++ {
		bigrams[[2]string{ws[i], ws[i+1]}] = struct{}{}
	}
	perplexityProxy := 0.0
	if len(ws) > 1 {
		perplexityProxy = float64(len(bigrams)) / float64(len(ws)-1)
	}

	// Flesch reading ease, clamped to [0,100].
	syllablesPerWord := float64(totalSyllables) / float64(len(ws))
	readability := 206.835 - 1.015*avgLen - 84.6*syllablesPerWord
	if readability < 0 {
		readability = 0
	}
	if readability > 100 {
		readability = 100
	}

	return stylometryMetrics{
		avgSentenceLength: avgLen,
		perplexityProxy:   perplexityProxy,
		burstiness:        burstiness,
		lexicalDiversity:  diversity,
		readability:       readability,
	}
}
