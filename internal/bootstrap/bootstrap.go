package bootstrap

import (
	"context"
	"fmt"

	"github.com/opengovlab/docucert/internal/bias"
	"github.com/opengovlab/docucert/internal/config"
	"github.com/opengovlab/docucert/internal/core/ports"
	"github.com/opengovlab/docucert/internal/core/usecase"
	"github.com/opengovlab/docucert/internal/detection"
	"github.com/opengovlab/docucert/internal/infrastructure/extractor"
	"github.com/opengovlab/docucert/internal/infrastructure/extractor/pdfex"
	"github.com/opengovlab/docucert/internal/infrastructure/extractor/plaintext"
	"github.com/opengovlab/docucert/internal/infrastructure/graph/neo4j"
	"github.com/opengovlab/docucert/internal/infrastructure/llm/ollama"
	"github.com/opengovlab/docucert/internal/infrastructure/queue/nats"
	"github.com/opengovlab/docucert/internal/infrastructure/repository/postgres"
	"github.com/opengovlab/docucert/internal/infrastructure/resilience"
	"github.com/opengovlab/docucert/internal/infrastructure/storage/localfs"
	"github.com/opengovlab/docucert/internal/report"
	"github.com/opengovlab/docucert/internal/risk"
	"github.com/opengovlab/docucert/internal/rubric"
)

type App struct {
	Config config.Config

	Queue    ports.MessageQueue
	Repo     ports.DocumentRepository
	Analyzer ports.DetectionAnalyzer

	IngestUC  ports.DocumentIngestor
	CertifyUC ports.DocumentCertifier
	QueryUC   *usecase.QueryUseCase

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure documents schema: %w", err)
	}
	reports := postgres.NewReportRepository(db)
	if err := reports.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure reports schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queueRunner := resilience.NewRunner(resilience.DefaultPolicy(), nats.ClassifyError)
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{Runner: queueRunner})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	texts := extractor.NewRouter(
		plaintext.NewExtractor(storage),
		pdfex.NewExtractor(storage),
	)

	engine := detection.NewEngine(detection.DefaultWeights(), detection.NewCalibrator())
	deep := detection.NewDeepAnalyzer(engine, 0)
	analyzer := detection.NewService(engine, deep)

	scorer, err := rubric.LoadFile(cfg.RubricPath)
	if err != nil {
		return nil, fmt.Errorf("load rubric: %w", err)
	}

	var narrator ports.NarrativeGenerator = report.TemplateNarrator{}
	if cfg.OllamaURL != "" {
		narrator = ollama.New(cfg.OllamaURL, cfg.OllamaGenModel).
			WithRunner(resilience.NewRunner(resilience.DefaultPolicy(), ollama.ClassifyError))
	}

	var lineage ports.LineageRecorder
	var lineageClose func()
	if cfg.Neo4jURI != "" {
		recorder, err := neo4j.New(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			return nil, fmt.Errorf("init lineage recorder: %w", err)
		}
		lineage = recorder
		lineageClose = func() { _ = recorder.Close(context.Background()) }
	}

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	certifyUC := usecase.NewCertifyDocumentUseCase(
		repo, reports, storage, texts, analyzer,
		scorer, bias.NewAuditor(), risk.NewMapper(),
		narrator, lineage,
	)
	certifyUC.SetNarrativeTone(cfg.NarrativeTone)
	queryUC := usecase.NewQueryUseCase(repo, reports)

	return &App{
		Config: cfg,

		Queue:    queue,
		Repo:     repo,
		Analyzer: analyzer,

		IngestUC:  ingestUC,
		CertifyUC: certifyUC,
		QueryUC:   queryUC,

		closeFn: func() {
			queue.Close()
			if lineageClose != nil {
				lineageClose()
			}
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
