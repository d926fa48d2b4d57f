package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusCertified  DocumentStatus = "certified"
	StatusFailed     DocumentStatus = "failed"
)

// DocumentType is the detected (or hinted) genre of a policy document.
// The calibrator only knows this fixed set; anything unrecognized falls
// back to TypeReport.
type DocumentType string

const (
	TypeLegislation   DocumentType = "legislation"
	TypeBudget        DocumentType = "budget"
	TypeLegalJudgment DocumentType = "legal_judgment"
	TypePolicyBrief   DocumentType = "policy_brief"
	TypeResearch      DocumentType = "research_report"
	TypeNewsArticle   DocumentType = "news_article"
	TypeAnalysis      DocumentType = "analysis"
	TypeReport        DocumentType = "report"
)

type Document struct {
	ID           string         `json:"id"`
	Filename     string         `json:"filename"`
	MimeType     string         `json:"mime_type"`
	StoragePath  string         `json:"storage_path"`
	TypeHint     string         `json:"type_hint,omitempty"`
	DetectedType DocumentType   `json:"detected_type,omitempty"`
	SHA256       string         `json:"sha256,omitempty"`
	Status       DocumentStatus `json:"status"`
	Error        string         `json:"error,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Provenance carries source-file identity for the certification report.
// ModifiedAt is nil when the filesystem timestamp could not be read or
// parsed; a bad date never fails an analysis.
type Provenance struct {
	SHA256     string     `json:"sha256"`
	SizeBytes  int64      `json:"size_bytes"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
}
