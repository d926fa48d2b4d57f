package usecase

import (
	"context"
	"fmt"

	"github.com/opengovlab/docucert/internal/core/domain"
	"github.com/opengovlab/docucert/internal/core/ports"
)

// QueryUseCase serves document metadata and finished reports.
type QueryUseCase struct {
	repo    ports.DocumentRepository
	reports ports.ReportRepository
}

func NewQueryUseCase(repo ports.DocumentRepository, reports ports.ReportRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo, reports: reports}
}

func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	return doc, nil
}

func (uc *QueryUseCase) GetReport(ctx context.Context, documentID string) (*domain.CertificationReport, error) {
	report, err := uc.reports.GetByDocumentID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}
	return report, nil
}
