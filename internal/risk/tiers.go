// Package risk maps a detection verdict and document genre to a review
// tier with procedural obligations, loosely following risk-management
// framework tiering for automated content in public-sector workflows.
package risk

import (
	"fmt"

	"github.com/opengovlab/docucert/internal/core/domain"
)

var tierLabels = map[int]string{
	1: "minimal",
	2: "limited",
	3: "elevated",
	4: "critical",
}

var tierObligations = map[int][]string{
	1: {
		"no additional review required",
	},
	2: {
		"spot-check citations and quoted figures",
		"record reviewer sign-off",
	},
	3: {
		"full editorial review before publication",
		"verify authorship with the submitting office",
		"attach the detection report to the document record",
	},
	4: {
		"withhold certification pending human authorship attestation",
		"escalate to the supervising editor",
		"retain the document and report for audit",
	},
}

// sensitiveTypes are genres where machine-generated text carries legal or
// fiscal consequence; the tier is bumped by one for them.
var sensitiveTypes = map[domain.DocumentType]bool{
	domain.TypeLegislation:   true,
	domain.TypeBudget:        true,
	domain.TypeLegalJudgment: true,
}

type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// Assess derives the tier from the calibrated AI score band, bumps it for
// sensitive genres and caps it at 4. Inconclusive detections land at tier 3
// regardless of score since the verdict cannot be relied on either way.
func (m *Mapper) Assess(det *domain.ConsensusResult, docType domain.DocumentType) *domain.RiskAssessment {
	tier := scoreTier(det.AIDetectionScore)
	rationale := fmt.Sprintf("AI likelihood %.0f%% places the document at the %s tier",
		det.AIDetectionScore*100, tierLabels[tier])

	if det.DetectionInconclusive && tier < 3 {
		tier = 3
		rationale = "detector disagreement prevents a reliable verdict"
	}
	if sensitiveTypes[docType] && tier < 4 {
		tier++
		rationale += fmt.Sprintf("; elevated one tier for %s content", docType)
	}

	return &domain.RiskAssessment{
		Tier:        tier,
		Label:       tierLabels[tier],
		Rationale:   rationale,
		Obligations: tierObligations[tier],
	}
}

func scoreTier(score float64) int {
	switch {
	case score >= 0.75:
		return 4
	case score >= 0.50:
		return 3
	case score >= 0.25:
		return 2
	default:
		return 1
	}
}
