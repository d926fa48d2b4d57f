// Package httpadapter exposes the certification service over REST:
// document upload, status, report retrieval in several formats, and a
// synchronous text-analysis endpoint.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/opengovlab/docucert/internal/core/ports"
	"github.com/opengovlab/docucert/internal/report"
)

// maxUploadBytes bounds multipart parsing; larger documents are rejected
// before they reach storage.
const maxUploadBytes = 64 << 20

type TrafficPolicy struct {
	RateLimitRPS     float64
	RateLimitBurst   int
	MaxInFlight      int
	BackpressureWait time.Duration
}

// UsageRecorder receives business-level counters from the handlers. A nil
// recorder disables instrumentation.
type UsageRecorder interface {
	RecordAnalyze(service, mode string, score float64)
	RecordUploadSize(service string, bytes int64)
}

type Router struct {
	ingestor ports.DocumentIngestor
	docs     ports.DocumentReader
	reports  ports.ReportReader
	analyzer ports.DetectionAnalyzer
	traffic  TrafficPolicy

	usage   UsageRecorder
	service string
}

func NewRouter(
	ingestor ports.DocumentIngestor,
	docs ports.DocumentReader,
	reports ports.ReportReader,
	analyzer ports.DetectionAnalyzer,
	traffic TrafficPolicy,
) *Router {
	return &Router{
		ingestor: ingestor,
		docs:     docs,
		reports:  reports,
		analyzer: analyzer,
		traffic:  traffic,
	}
}

// WithUsageRecorder attaches business metrics recording to the handlers.
func (rt *Router) WithUsageRecorder(rec UsageRecorder, service string) *Router {
	rt.usage = rec
	rt.service = service
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)
	mux.HandleFunc("/v1/reports/", rt.getReport)
	mux.HandleFunc("/v1/analyze", rt.analyzeText)

	var handler http.Handler = mux
	if rt.traffic.MaxInFlight > 0 {
		handler = backpressureMiddleware(handler, rt.traffic.MaxInFlight, rt.traffic.BackpressureWait)
	}
	if rt.traffic.RateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.traffic.RateLimitRPS, rt.traffic.RateLimitBurst)
	}
	return withRequestID(withAccessLog(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	doc, err := rt.ingestor.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		r.FormValue("document_type"),
		file,
	)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	if rt.usage != nil {
		rt.usage.RecordUploadSize(rt.service, fileHeader.Size)
	}
	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	doc, err := rt.docs.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) getReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/reports/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	rep, err := rt.reports.GetReport(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		data, err := report.RenderJSON(rep)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(report.RenderMarkdown(rep)))
	case "html":
		data, err := report.RenderHTML(rep)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(data)
	case "xlsx":
		data, err := report.RenderXLSX(rep)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="certification_report.xlsx"`)
		_, _ = w.Write(data)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown format: " + format})
	}
}

func (rt *Router) analyzeText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Text         string `json:"text"`
		DocumentType string `json:"document_type"`
		Deep         bool   `json:"deep"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	if req.Deep {
		result := rt.analyzer.DeepAnalyze(req.Text, req.DocumentType)
		if rt.usage != nil {
			rt.usage.RecordAnalyze(rt.service, "deep", result.Consensus.Score)
		}
		writeJSON(w, http.StatusOK, result)
		return
	}
	result := rt.analyzer.Analyze(req.Text, req.DocumentType)
	if rt.usage != nil {
		rt.usage.RecordAnalyze(rt.service, "standard", result.AIDetectionScore)
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
