package detection

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

var (
	sentenceSplitRe  = regexp.MustCompile(`[.!?]+[\s"')\]]+|[.!?]+$`)
	wordRe           = regexp.MustCompile(`[A-Za-z']+`)
	vowelGroupRe     = regexp.MustCompile(`(?i)[aeiouy]+`)
	paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)
)

func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitParagraphs(text string) []string {
	parts := paragraphSplitRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func words(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

func countWords(text string) int {
	return len(wordRe.FindAllString(text, -1))
}

// syllables approximates syllable count as the number of vowel groups.
func syllables(word string) int {
	n := len(vowelGroupRe.FindAllString(word, -1))
	if n == 0 {
		return 1
	}
	return n
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// countOccurrences counts non-overlapping case-insensitive occurrences of
// each phrase in text.
func countOccurrences(text string, phrases []string) int {
	lower := strings.ToLower(text)
	total := 0
	for _, p := range phrases {
		total += strings.Count(lower, p)
	}
	return total
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func countLinesMatching(text string, re *regexp.Regexp) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if re.MatchString(line) {
			n++
		}
	}
	return n
}

func isMostlyUpper(s string) bool {
	letters, upper := 0, 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters >= 3 && upper == letters
}
