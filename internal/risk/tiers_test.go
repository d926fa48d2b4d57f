package risk

import (
	"testing"

	"github.com/opengovlab/docucert/internal/core/domain"
)

func TestAssessScoreBands(t *testing.T) {
	cases := []struct {
		score float64
		tier  int
	}{
		{0.10, 1},
		{0.30, 2},
		{0.60, 3},
		{0.90, 4},
	}
	m := NewMapper()
	for _, tc := range cases {
		got := m.Assess(&domain.ConsensusResult{AIDetectionScore: tc.score}, domain.TypeNewsArticle)
		if got.Tier != tc.tier {
			t.Fatalf("score %.2f: tier = %d, want %d", tc.score, got.Tier, tc.tier)
		}
		if got.Label != tierLabels[tc.tier] {
			t.Fatalf("score %.2f: label = %q, want %q", tc.score, got.Label, tierLabels[tc.tier])
		}
		if len(got.Obligations) == 0 {
			t.Fatalf("score %.2f: no obligations", tc.score)
		}
	}
}

func TestAssessBumpsSensitiveTypes(t *testing.T) {
	m := NewMapper()
	got := m.Assess(&domain.ConsensusResult{AIDetectionScore: 0.30}, domain.TypeLegislation)
	if got.Tier != 3 {
		t.Fatalf("legislation at 0.30: tier = %d, want 3", got.Tier)
	}
	// Already critical: no bump past 4.
	got = m.Assess(&domain.ConsensusResult{AIDetectionScore: 0.90}, domain.TypeBudget)
	if got.Tier != 4 {
		t.Fatalf("budget at 0.90: tier = %d, want 4", got.Tier)
	}
}

func TestAssessInconclusiveFloorsAtTierThree(t *testing.T) {
	m := NewMapper()
	got := m.Assess(&domain.ConsensusResult{
		AIDetectionScore:      0.10,
		DetectionInconclusive: true,
	}, domain.TypeReport)
	if got.Tier != 3 {
		t.Fatalf("inconclusive low score: tier = %d, want 3", got.Tier)
	}
}
