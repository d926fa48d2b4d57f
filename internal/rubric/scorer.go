// Package rubric grades policy documents against weighted keyword-evidence
// criteria. Criteria definitions are plain YAML so policy teams can tune
// them without a rebuild.
package rubric

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opengovlab/docucert/internal/core/domain"
)

type Criterion struct {
	Name       string   `yaml:"name"`
	Weight     float64  `yaml:"weight"`
	Keywords   []string `yaml:"keywords"`
	MinMatches int      `yaml:"min_matches"`
}

type definition struct {
	Criteria []Criterion `yaml:"criteria"`
}

type Scorer struct {
	criteria []Criterion
}

// NewScorer validates the criteria and normalizes defaults. Weights must be
// positive; MinMatches defaults to 3.
func NewScorer(criteria []Criterion) (*Scorer, error) {
	if len(criteria) == 0 {
		return nil, fmt.Errorf("rubric: no criteria defined")
	}
	out := make([]Criterion, len(criteria))
	copy(out, criteria)
	for i := range out {
		if out[i].Name == "" {
			return nil, fmt.Errorf("rubric: criterion %d has no name", i)
		}
		if out[i].Weight <= 0 {
			return nil, fmt.Errorf("rubric: criterion %q has non-positive weight %.2f", out[i].Name, out[i].Weight)
		}
		if len(out[i].Keywords) == 0 {
			return nil, fmt.Errorf("rubric: criterion %q has no keywords", out[i].Name)
		}
		if out[i].MinMatches <= 0 {
			out[i].MinMatches = 3
		}
	}
	return &Scorer{criteria: out}, nil
}

// LoadFile reads a YAML rubric definition. An empty path loads the built-in
// default rubric.
func LoadFile(path string) (*Scorer, error) {
	if path == "" {
		return NewScorer(DefaultCriteria())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rubric file: %w", err)
	}
	var def definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse rubric yaml: %w", err)
	}
	return NewScorer(def.Criteria)
}

// DefaultCriteria is the built-in policy-quality rubric.
func DefaultCriteria() []Criterion {
	return []Criterion{
		{
			Name:   "evidence_base",
			Weight: 0.30,
			Keywords: []string{
				"evidence", "data", "study", "survey", "evaluation",
				"research", "analysis shows",
			},
		},
		{
			Name:   "implementation_plan",
			Weight: 0.25,
			Keywords: []string{
				"implementation", "timeline", "milestone", "responsible",
				"phase", "deadline", "budget",
			},
		},
		{
			Name:   "stakeholder_consultation",
			Weight: 0.20,
			Keywords: []string{
				"consultation", "stakeholder", "public comment", "hearing",
				"engagement", "feedback",
			},
		},
		{
			Name:   "measurable_outcomes",
			Weight: 0.15,
			Keywords: []string{
				"target", "indicator", "metric", "percent", "baseline",
				"outcome", "measure",
			},
		},
		{
			Name:   "equity_considerations",
			Weight: 0.10,
			Keywords: []string{
				"equity", "accessibility", "disadvantaged", "inclusion",
				"disparit", "underserved",
			},
		},
	}
}

func (s *Scorer) Score(text string) *domain.RubricResult {
	lower := strings.ToLower(text)

	result := &domain.RubricResult{}
	var weightedSum, totalWeight float64
	for _, c := range s.criteria {
		matches := 0
		var evidence []string
		for _, kw := range c.Keywords {
			if n := strings.Count(lower, kw); n > 0 {
				matches += n
				evidence = append(evidence, kw)
			}
		}
		score := float64(matches) / float64(c.MinMatches)
		if score > 1 {
			score = 1
		}
		result.Criteria = append(result.Criteria, domain.CriterionScore{
			Name:     c.Name,
			Weight:   c.Weight,
			Score:    score,
			Evidence: evidence,
		})
		weightedSum += score * c.Weight
		totalWeight += c.Weight
	}

	if totalWeight > 0 {
		result.TotalScore = weightedSum / totalWeight
	}
	result.Grade = grade(result.TotalScore)
	return result
}

func grade(score float64) string {
	switch {
	case score >= 0.9:
		return "A"
	case score >= 0.75:
		return "B"
	case score >= 0.6:
		return "C"
	case score >= 0.4:
		return "D"
	default:
		return "F"
	}
}
