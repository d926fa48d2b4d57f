package rubric

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScoreRewardsRubricEvidence(t *testing.T) {
	scorer, err := NewScorer(DefaultCriteria())
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}

	strong := strings.Repeat("The evidence from the survey data supports the implementation timeline with a budget and milestone plan. Stakeholder consultation and public comment shaped the target metric and baseline outcome, with equity and inclusion for underserved groups. ", 3)
	weak := "Nothing specific is said here at all."

	strongResult := scorer.Score(strong)
	weakResult := scorer.Score(weak)

	if strongResult.TotalScore <= weakResult.TotalScore {
		t.Fatalf("expected strong text to outscore weak: %.2f vs %.2f", strongResult.TotalScore, weakResult.TotalScore)
	}
	if strongResult.TotalScore < 0 || strongResult.TotalScore > 1 {
		t.Fatalf("total score out of range: %.2f", strongResult.TotalScore)
	}
	if weakResult.Grade != "F" {
		t.Fatalf("expected F for empty evidence, got %s", weakResult.Grade)
	}
}

func TestScoreClampsPerCriterion(t *testing.T) {
	scorer, err := NewScorer([]Criterion{{
		Name: "only", Weight: 1, Keywords: []string{"evidence"}, MinMatches: 2,
	}})
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}
	result := scorer.Score(strings.Repeat("evidence ", 50))
	if result.Criteria[0].Score != 1 {
		t.Fatalf("expected clamped criterion score 1, got %.2f", result.Criteria[0].Score)
	}
	if result.Grade != "A" {
		t.Fatalf("expected grade A, got %s", result.Grade)
	}
}

func TestLoadFileParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	raw := `criteria:
  - name: clarity
    weight: 0.6
    keywords: ["plain language", "glossary"]
  - name: citations
    weight: 0.4
    keywords: ["source", "reference"]
    min_matches: 2
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	scorer, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	result := scorer.Score("The glossary uses plain language and cites a source reference.")
	if len(result.Criteria) != 2 {
		t.Fatalf("expected 2 criteria, got %d", len(result.Criteria))
	}
	if result.TotalScore == 0 {
		t.Fatalf("expected non-zero score")
	}
}

func TestLoadFileRejectsInvalidDefinitions(t *testing.T) {
	cases := map[string]string{
		"no criteria":  `criteria: []`,
		"zero weight":  "criteria:\n  - name: x\n    weight: 0\n    keywords: [a]",
		"no keywords":  "criteria:\n  - name: x\n    weight: 1\n    keywords: []",
		"missing name": "criteria:\n  - weight: 1\n    keywords: [a]",
	}
	for label, raw := range cases {
		path := filepath.Join(t.TempDir(), "rubric.yaml")
		if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Fatalf("%s: expected error", label)
		}
	}
}

func TestEmptyPathUsesDefaults(t *testing.T) {
	scorer, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile(\"\"): %v", err)
	}
	if len(scorer.criteria) != len(DefaultCriteria()) {
		t.Fatalf("expected default criteria")
	}
}
