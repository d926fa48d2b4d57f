package domain

import "time"

type CriterionScore struct {
	Name     string   `json:"name"`
	Weight   float64  `json:"weight"`
	Score    float64  `json:"score"`
	Evidence []string `json:"evidence,omitempty"`
}

type RubricResult struct {
	TotalScore float64          `json:"total_score"`
	Grade      string           `json:"grade"`
	Criteria   []CriterionScore `json:"criteria"`
}

type GroupStat struct {
	Group            string  `json:"group"`
	Mentions         int     `json:"mentions"`
	Share            float64 `json:"share"`
	PositiveTerms    int     `json:"positive_terms"`
	NegativeTerms    int     `json:"negative_terms"`
	SentimentRatio   float64 `json:"sentiment_ratio"`
	Underrepresented bool    `json:"underrepresented"`
}

type BiasAudit struct {
	Groups    []GroupStat `json:"groups"`
	ParityGap float64     `json:"parity_gap"`
	Warnings  []string    `json:"warnings,omitempty"`
}

type RiskAssessment struct {
	Tier        int      `json:"tier"`
	Label       string   `json:"label"`
	Rationale   string   `json:"rationale"`
	Obligations []string `json:"obligations"`
}

// CertificationReport is the full per-document artifact persisted by the
// worker and rendered by the report package.
type CertificationReport struct {
	DocumentID   string              `json:"document_id"`
	Filename     string              `json:"filename"`
	Detection    *ConsensusResult    `json:"detection"`
	DeepAnalysis *DeepAnalysisResult `json:"deep_analysis,omitempty"`
	Rubric       *RubricResult       `json:"rubric,omitempty"`
	Bias         *BiasAudit          `json:"bias,omitempty"`
	Risk         *RiskAssessment     `json:"risk,omitempty"`
	Provenance   *Provenance         `json:"provenance,omitempty"`
	Narrative    string              `json:"narrative,omitempty"`
	GeneratedAt  time.Time           `json:"generated_at"`
}
