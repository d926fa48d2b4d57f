package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opengovlab/docucert/internal/bootstrap"
	"github.com/opengovlab/docucert/internal/config"
	"github.com/opengovlab/docucert/internal/observability/logging"
	"github.com/opengovlab/docucert/internal/observability/metrics"
)

const serviceName = "docucert-worker"

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger(serviceName, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics_server_error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeDocumentIngested(ctx, func(handlerCtx context.Context, documentID string) error {
		certifyCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		if doc, err := app.Repo.GetByID(certifyCtx, documentID); err == nil {
			workerMetrics.ObserveQueueLag(serviceName, time.Since(doc.CreatedAt))
		}

		workerMetrics.StartCertification()
		started := time.Now()
		err := app.CertifyUC.CertifyByID(certifyCtx, documentID)
		workerMetrics.FinishCertification(serviceName, time.Since(started), err)
		if err != nil {
			return err
		}

		if rep, repErr := app.QueryUC.GetReport(certifyCtx, documentID); repErr == nil && rep.Detection != nil {
			verdict := "human"
			if rep.Detection.Detected {
				verdict = "ai"
			}
			workerMetrics.RecordVerdict(serviceName, verdict,
				string(rep.Detection.DetectedDocumentType), rep.Detection.DetectionInconclusive)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
