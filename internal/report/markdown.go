// Package report renders a certification report into reader-facing formats.
// All internal scores are on the [0,1] scale; the percent conversion happens
// here and nowhere else.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/opengovlab/docucert/internal/core/domain"
)

func pct(v float64) float64 { return v * 100 }

// RenderJSON emits the canonical machine-readable report.
func RenderJSON(r *domain.CertificationReport) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// RenderMarkdown emits the reviewer-facing summary.
func RenderMarkdown(r *domain.CertificationReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Certification Report: %s\n\n", r.Filename)
	fmt.Fprintf(&b, "Document ID: `%s`  \nGenerated: %s\n\n", r.DocumentID, r.GeneratedAt.Format("2006-01-02 15:04 MST"))

	if det := r.Detection; det != nil {
		b.WriteString("## AI Detection\n\n")
		fmt.Fprintf(&b, "- **AI likelihood:** %.1f%% (%s)\n", pct(det.AIDetectionScore), det.ScoreConfidenceInterval.Display)
		fmt.Fprintf(&b, "- **Confidence:** %.1f%%\n", pct(det.Confidence))
		fmt.Fprintf(&b, "- **Verdict:** %s\n", det.Interpretation)
		if det.DetectionInconclusive && det.InconclusiveReason != nil {
			fmt.Fprintf(&b, "- **Inconclusive:** %s\n", *det.InconclusiveReason)
		}
		if det.LikelyAIModel.Model != nil {
			fmt.Fprintf(&b, "- **Likely model:** %s (%.1f%% attribution confidence)\n",
				*det.LikelyAIModel.Model, pct(det.LikelyAIModel.Confidence))
		}
		fmt.Fprintf(&b, "- **Document type:** %s\n", det.DetectedDocumentType)
		for _, w := range det.DomainWarnings {
			fmt.Fprintf(&b, "- ⚠ %s\n", w)
		}
		b.WriteString("\n")

		if len(det.FlaggedSections) > 0 {
			b.WriteString("### Flagged Passages\n\n")
			for _, s := range det.FlaggedSections {
				fmt.Fprintf(&b, "%d. (%.0f%%) %s\n", s.Section, pct(s.AILikelihood), s.Text)
			}
			b.WriteString("\n")
		}
	}

	if deep := r.DeepAnalysis; deep != nil {
		b.WriteString("## Deep Analysis\n\n")
		fmt.Fprintf(&b, "- **Consensus score:** %.1f%%\n", pct(deep.Consensus.Score))
		fmt.Fprintf(&b, "- **Transparency:** %.0f/100\n", deep.Consensus.TransparencyScore)
		if deep.Consensus.PrimaryModel != "" {
			fmt.Fprintf(&b, "- **Primary model:** %s\n", deep.Consensus.PrimaryModel)
		}
		if deep.Sentences != nil && deep.Sentences.Total > 0 {
			fmt.Fprintf(&b, "- **Sentences flagged:** %d of %d (%.1f%%)\n",
				deep.Sentences.AICount, deep.Sentences.Total, pct(deep.Sentences.AIFraction))
		}
		if deep.Stylometry != nil {
			fmt.Fprintf(&b, "- **Stylometric signal:** %s (%d indicators)\n",
				deep.Stylometry.Label, len(deep.Stylometry.Indicators))
		}
		b.WriteString("\n")
	}

	if rub := r.Rubric; rub != nil {
		b.WriteString("## Policy Quality Rubric\n\n")
		fmt.Fprintf(&b, "**Grade: %s** (%.1f%%)\n\n", rub.Grade, pct(rub.TotalScore))
		b.WriteString("| Criterion | Weight | Score |\n|---|---|---|\n")
		for _, c := range rub.Criteria {
			fmt.Fprintf(&b, "| %s | %.0f%% | %.1f%% |\n", c.Name, pct(c.Weight), pct(c.Score))
		}
		b.WriteString("\n")
	}

	if bias := r.Bias; bias != nil {
		b.WriteString("## Representation Audit\n\n")
		fmt.Fprintf(&b, "Parity gap: %.1f%%\n\n", pct(bias.ParityGap))
		for _, w := range bias.Warnings {
			fmt.Fprintf(&b, "- ⚠ %s\n", w)
		}
		b.WriteString("\n")
	}

	if risk := r.Risk; risk != nil {
		b.WriteString("## Review Tier\n\n")
		fmt.Fprintf(&b, "**Tier %d (%s).** %s\n\n", risk.Tier, risk.Label, risk.Rationale)
		for _, o := range risk.Obligations {
			fmt.Fprintf(&b, "- %s\n", o)
		}
		b.WriteString("\n")
	}

	if prov := r.Provenance; prov != nil {
		b.WriteString("## Provenance\n\n")
		fmt.Fprintf(&b, "- SHA-256: `%s`\n- Size: %d bytes\n", prov.SHA256, prov.SizeBytes)
		if prov.ModifiedAt != nil {
			fmt.Fprintf(&b, "- Modified: %s\n", prov.ModifiedAt.Format("2006-01-02 15:04:05"))
		}
		b.WriteString("\n")
	}

	if r.Narrative != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(r.Narrative)
		b.WriteString("\n")
	}
	return b.String()
}
