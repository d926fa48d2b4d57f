package ollama

import (
	"fmt"
	"strings"

	"github.com/opengovlab/docucert/internal/core/domain"
)

func buildNarrativePrompt(report *domain.CertificationReport, tone string) string {
	if tone == "" {
		tone = "plain"
	}

	var b strings.Builder
	b.WriteString("You are writing a short summary of an automated document certification for a general audience. ")
	fmt.Fprintf(&b, "Use a %s tone, at most three paragraphs, no markdown. Facts:\n\n", tone)

	fmt.Fprintf(&b, "Document: %s\n", report.Filename)
	if det := report.Detection; det != nil {
		fmt.Fprintf(&b, "AI likelihood: %.0f%% (confidence %.0f%%)\n", det.AIDetectionScore*100, det.Confidence*100)
		fmt.Fprintf(&b, "Verdict: %s\n", det.Interpretation)
		if det.DetectionInconclusive {
			b.WriteString("The detectors disagreed; the verdict is inconclusive.\n")
		}
		if det.LikelyAIModel.Model != nil {
			fmt.Fprintf(&b, "Most similar model family: %s\n", *det.LikelyAIModel.Model)
		}
		fmt.Fprintf(&b, "Document genre: %s\n", det.DetectedDocumentType)
	}
	if rub := report.Rubric; rub != nil {
		fmt.Fprintf(&b, "Policy quality grade: %s (%.0f%%)\n", rub.Grade, rub.TotalScore*100)
	}
	if risk := report.Risk; risk != nil {
		fmt.Fprintf(&b, "Review tier: %d (%s). %s\n", risk.Tier, risk.Label, risk.Rationale)
	}
	if bias := report.Bias; bias != nil && len(bias.Warnings) > 0 {
		fmt.Fprintf(&b, "Representation warnings: %s\n", strings.Join(bias.Warnings, "; "))
	}

	b.WriteString("\nDo not invent facts beyond the list above. State clearly that the scores are heuristic estimates, not proof.")
	return b.String()
}
