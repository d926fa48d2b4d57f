package ports

import (
	"context"
	"io"

	"github.com/opengovlab/docucert/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType, typeHint string, body io.Reader) (*domain.Document, error)
}

// DocumentCertifier is the inbound contract for asynchronous certification.
type DocumentCertifier interface {
	CertifyByID(ctx context.Context, documentID string) error
}

// DocumentReader is the inbound read model for document metadata/state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// ReportReader serves persisted certification reports.
type ReportReader interface {
	GetReport(ctx context.Context, documentID string) (*domain.CertificationReport, error)
}
