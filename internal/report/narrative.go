package report

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/opengovlab/docucert/internal/core/domain"
)

var narrativeTemplate = template.Must(template.New("narrative").Funcs(template.FuncMap{
	"pct": func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
}).Parse(`The document "{{.Filename}}" was analyzed by eight independent heuristic detectors.
{{- with .Detection}}
{{- if .DetectionInconclusive}} The detectors disagreed strongly and no reliable verdict could be reached; human review is required.
{{- else if .Detected}} The weighted consensus places AI likelihood at {{pct .AIDetectionScore}} with {{pct .Confidence}} confidence{{if .LikelyAIModel.Model}}, and the stylistic profile most resembles {{.LikelyAIModel.Model}}{{end}}.
{{- else}} The weighted consensus places AI likelihood at {{pct .AIDetectionScore}}, consistent with human authorship.
{{- end}}
{{- end}}
{{- with .Risk}} The document falls in review tier {{.Tier}} ({{.Label}}): {{.Rationale}}.{{end}}
{{- with .Rubric}} Against the policy quality rubric it earns grade {{.Grade}} at {{pct .TotalScore}}.{{end}}`))

var formalNarrativeTemplate = template.Must(template.New("narrative_formal").Funcs(template.FuncMap{
	"pct": func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
}).Parse(`Certification summary for "{{.Filename}}". Eight independent heuristic detectors were applied to the extracted text.
{{- with .Detection}}
{{- if .DetectionInconclusive}} Detector agreement was insufficient to support a verdict; the document is referred for human review.
{{- else if .Detected}} The weighted consensus assigns an AI-generation likelihood of {{pct .AIDetectionScore}} at {{pct .Confidence}} confidence{{if .LikelyAIModel.Model}}; stylistic markers are most consistent with {{.LikelyAIModel.Model}}{{end}}.
{{- else}} The weighted consensus assigns an AI-generation likelihood of {{pct .AIDetectionScore}}, consistent with human authorship.
{{- end}}
{{- end}}
{{- with .Risk}} Review tier {{.Tier}} ({{.Label}}) applies: {{.Rationale}}.{{end}}
{{- with .Rubric}} Rubric assessment: grade {{.Grade}} at {{pct .TotalScore}}.{{end}}`))

// DefaultNarrative is the template fallback used when no language model is
// configured or the generation call fails.
func DefaultNarrative(r *domain.CertificationReport) string {
	return renderNarrative(r, "plain")
}

func renderNarrative(r *domain.CertificationReport, tone string) string {
	tmpl := narrativeTemplate
	if tone == "formal" {
		tmpl = formalNarrativeTemplate
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r); err != nil {
		return fmt.Sprintf("The document %q was analyzed; see the attached detection report.", r.Filename)
	}
	return buf.String()
}

// TemplateNarrator satisfies the narrative-generator port with the template
// fallback. Wired when no language model endpoint is configured; unknown
// tones fall back to the plain register.
type TemplateNarrator struct{}

func (TemplateNarrator) Narrative(_ context.Context, r *domain.CertificationReport, tone string) (string, error) {
	return renderNarrative(r, tone), nil
}
