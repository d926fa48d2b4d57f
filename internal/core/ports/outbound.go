package ports

import (
	"context"
	"io"
	"time"

	"github.com/opengovlab/docucert/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveCertification(ctx context.Context, id string, detectedType domain.DocumentType, sha256 string) error
}

// ReportRepository persists finished certification reports.
type ReportRepository interface {
	Save(ctx context.Context, report *domain.CertificationReport) error
	GetByDocumentID(ctx context.Context, documentID string) (*domain.CertificationReport, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Stat(ctx context.Context, key string) (size int64, modTime *time.Time, err error)
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// DetectionAnalyzer runs the AI-detection consensus over extracted text.
// Analysis is pure computation and never fails; ambiguity is expressed in
// the result, not as an error.
type DetectionAnalyzer interface {
	Analyze(text, typeHint string) *domain.ConsensusResult
	DeepAnalyze(text, typeHint string) *domain.DeepAnalysisResult
}

// RubricScorer grades a policy document against rubric criteria.
type RubricScorer interface {
	Score(text string) *domain.RubricResult
}

// BiasAuditor computes demographic representation statistics.
type BiasAuditor interface {
	Audit(text string) *domain.BiasAudit
}

// RiskMapper assigns the governance risk tier for a finished analysis.
type RiskMapper interface {
	Assess(detection *domain.ConsensusResult, docType domain.DocumentType) *domain.RiskAssessment
}

// NarrativeGenerator expands a finished report into reader-facing prose.
// Optional collaborator: a nil generator degrades to template narrative.
type NarrativeGenerator interface {
	Narrative(ctx context.Context, report *domain.CertificationReport, tone string) (string, error)
}

// LineageRecorder writes provenance edges for a certified document.
// Optional collaborator: recording failures must not fail certification.
type LineageRecorder interface {
	RecordCertification(ctx context.Context, doc *domain.Document, report *domain.CertificationReport) error
}
