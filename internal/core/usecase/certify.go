package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/opengovlab/docucert/internal/core/domain"
	"github.com/opengovlab/docucert/internal/core/ports"
	"github.com/opengovlab/docucert/internal/provenance"
)

// CertifyDocumentUseCase runs the full certification pipeline for one
// uploaded document. Narrative generation and lineage recording are
// optional collaborators: nil means the step is skipped, and lineage
// failures never fail the certification.
type CertifyDocumentUseCase struct {
	repo      ports.DocumentRepository
	reports   ports.ReportRepository
	storage   ports.ObjectStorage
	extractor ports.TextExtractor
	analyzer  ports.DetectionAnalyzer
	rubric    ports.RubricScorer
	bias      ports.BiasAuditor
	risk      ports.RiskMapper
	narrative ports.NarrativeGenerator
	lineage   ports.LineageRecorder

	tone string
}

func NewCertifyDocumentUseCase(
	repo ports.DocumentRepository,
	reports ports.ReportRepository,
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	analyzer ports.DetectionAnalyzer,
	rubric ports.RubricScorer,
	bias ports.BiasAuditor,
	risk ports.RiskMapper,
	narrative ports.NarrativeGenerator,
	lineage ports.LineageRecorder,
) *CertifyDocumentUseCase {
	return &CertifyDocumentUseCase{
		repo:      repo,
		reports:   reports,
		storage:   storage,
		extractor: extractor,
		analyzer:  analyzer,
		rubric:    rubric,
		bias:      bias,
		risk:      risk,
		narrative: narrative,
		lineage:   lineage,
		tone:      "plain",
	}
}

// SetNarrativeTone overrides the tone requested from the narrative generator.
func (uc *CertifyDocumentUseCase) SetNarrativeTone(tone string) {
	if tone != "" {
		uc.tone = tone
	}
}

func (uc *CertifyDocumentUseCase) CertifyByID(ctx context.Context, documentID string) error {
	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	doc, report, err := uc.certifyPipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.reports.Save(ctx, report); err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save report: %w", err)
	}

	if err := uc.repo.SaveCertification(ctx, doc.ID, report.Detection.DetectedDocumentType, doc.SHA256); err != nil {
		return fmt.Errorf("save certification metadata: %w", err)
	}

	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusCertified, ""); err != nil {
		return fmt.Errorf("set status=certified: %w", err)
	}

	uc.recordLineage(ctx, doc, report)
	return nil
}

func (uc *CertifyDocumentUseCase) certifyPipeline(ctx context.Context, documentID string) (*domain.Document, *domain.CertificationReport, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch document by id: %w", err)
	}

	text, err := uc.extractText(ctx, doc)
	if err != nil {
		return nil, nil, err
	}

	prov, err := uc.computeProvenance(ctx, doc)
	if err != nil {
		return nil, nil, err
	}
	doc.SHA256 = prov.SHA256

	detection := uc.analyzer.Analyze(text, doc.TypeHint)
	deep := uc.analyzer.DeepAnalyze(text, doc.TypeHint)

	report := &domain.CertificationReport{
		DocumentID:   doc.ID,
		Filename:     doc.Filename,
		Detection:    detection,
		DeepAnalysis: deep,
		Rubric:       uc.rubric.Score(text),
		Bias:         uc.bias.Audit(text),
		Risk:         uc.risk.Assess(detection, detection.DetectedDocumentType),
		Provenance:   prov,
		GeneratedAt:  time.Now().UTC(),
	}

	uc.expandNarrative(ctx, report)
	return doc, report, nil
}

func (uc *CertifyDocumentUseCase) extractText(ctx context.Context, doc *domain.Document) (string, error) {
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	if text == "" {
		return "", domain.WrapError(domain.ErrUnprocessableDocument, "extract text", errors.New("empty extracted text"))
	}
	return text, nil
}

func (uc *CertifyDocumentUseCase) computeProvenance(ctx context.Context, doc *domain.Document) (*domain.Provenance, error) {
	reader, err := uc.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open source for provenance: %w", err)
	}
	defer reader.Close()

	prov, err := provenance.FromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("hash source document: %w", err)
	}

	// Best effort: a missing or malformed file timestamp is recorded as nil.
	if size, modTime, statErr := uc.storage.Stat(ctx, doc.StoragePath); statErr == nil {
		prov.SizeBytes = size
		prov.ModifiedAt = modTime
	}
	return prov, nil
}

func (uc *CertifyDocumentUseCase) expandNarrative(ctx context.Context, report *domain.CertificationReport) {
	if uc.narrative == nil {
		return
	}
	text, err := uc.narrative.Narrative(ctx, report, uc.tone)
	if err != nil {
		slog.Warn("narrative_generation_skipped", "document_id", report.DocumentID, "error", err)
		return
	}
	report.Narrative = text
}

func (uc *CertifyDocumentUseCase) recordLineage(ctx context.Context, doc *domain.Document, report *domain.CertificationReport) {
	if uc.lineage == nil {
		return
	}
	if err := uc.lineage.RecordCertification(ctx, doc, report); err != nil {
		slog.Warn("lineage_record_failed", "document_id", doc.ID, "error", err)
	}
}

func (uc *CertifyDocumentUseCase) markFailed(ctx context.Context, documentID string, certErr error) error {
	if certErr == nil {
		return nil
	}
	return uc.repo.UpdateStatus(ctx, documentID, domain.StatusFailed, certErr.Error())
}
