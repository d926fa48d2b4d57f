package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/opengovlab/docucert/internal/core/domain"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Certification Report: {{.Filename}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; color: #1a1a1a; }
h1 { border-bottom: 2px solid #2c5282; padding-bottom: .3rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #cbd5e0; padding: .4rem .6rem; text-align: left; }
.warn { color: #9b2c2c; }
.meta { color: #4a5568; font-size: .9rem; }
.flagged { background: #fffaf0; border-left: 3px solid #dd6b20; padding: .4rem .8rem; margin: .4rem 0; }
</style>
</head>
<body>
<h1>Certification Report: {{.Filename}}</h1>
<p class="meta">Document {{.DocumentID}} · generated {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}</p>

{{with .Detection}}
<h2>AI Detection</h2>
<ul>
<li><strong>AI likelihood:</strong> {{pct .AIDetectionScore}} ({{.ScoreConfidenceInterval.Display}})</li>
<li><strong>Confidence:</strong> {{pct .Confidence}}</li>
<li><strong>Verdict:</strong> {{.Interpretation}}</li>
{{if .LikelyAIModel.Model}}<li><strong>Likely model:</strong> {{.LikelyAIModel.Model}}</li>{{end}}
<li><strong>Document type:</strong> {{.DetectedDocumentType}}</li>
</ul>
{{range .DomainWarnings}}<p class="warn">{{.}}</p>{{end}}
{{range .FlaggedSections}}<div class="flagged">{{.Text}} <span class="meta">({{pct .AILikelihood}})</span></div>{{end}}
{{end}}

{{with .DeepAnalysis}}
<h2>Deep Analysis</h2>
<ul>
<li><strong>Consensus score:</strong> {{pct .Consensus.Score}}</li>
<li><strong>Transparency:</strong> {{printf "%.0f" .Consensus.TransparencyScore}}/100</li>
{{if .Consensus.PrimaryModel}}<li><strong>Primary model:</strong> {{.Consensus.PrimaryModel}}</li>{{end}}
</ul>
{{end}}

{{with .Rubric}}
<h2>Policy Quality Rubric</h2>
<p><strong>Grade {{.Grade}}</strong> ({{pct .TotalScore}})</p>
<table>
<tr><th>Criterion</th><th>Weight</th><th>Score</th></tr>
{{range .Criteria}}<tr><td>{{.Name}}</td><td>{{pct .Weight}}</td><td>{{pct .Score}}</td></tr>{{end}}
</table>
{{end}}

{{with .Bias}}
<h2>Representation Audit</h2>
<p>Parity gap: {{pct .ParityGap}}</p>
{{range .Warnings}}<p class="warn">{{.}}</p>{{end}}
{{end}}

{{with .Risk}}
<h2>Review Tier</h2>
<p><strong>Tier {{.Tier}} ({{.Label}}).</strong> {{.Rationale}}</p>
<ul>{{range .Obligations}}<li>{{.}}</li>{{end}}</ul>
{{end}}

{{with .Provenance}}
<h2>Provenance</h2>
<p class="meta">SHA-256 <code>{{.SHA256}}</code> · {{.SizeBytes}} bytes</p>
{{end}}

{{if .Narrative}}
<h2>Summary</h2>
<p>{{.Narrative}}</p>
{{end}}
</body>
</html>
`))

// RenderHTML emits a standalone page for in-browser review.
func RenderHTML(r *domain.CertificationReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}
	return buf.Bytes(), nil
}
