package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/opengovlab/docucert/internal/core/domain"
)

type ingestFake struct {
	err error
}

func (f ingestFake) Upload(_ context.Context, filename, mimeType, typeHint string, body io.Reader) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := io.ReadAll(body); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &domain.Document{
		ID:          "doc-1",
		Filename:    filename,
		MimeType:    mimeType,
		TypeHint:    typeHint,
		StoragePath: "doc-1_file.txt",
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

type docsFake struct {
	doc *domain.Document
	err error
}

func (f docsFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

type reportsFake struct {
	report *domain.CertificationReport
	err    error
}

func (f reportsFake) GetReport(context.Context, string) (*domain.CertificationReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

type analyzerStub struct{}

func (analyzerStub) Analyze(string, string) *domain.ConsensusResult {
	return &domain.ConsensusResult{AIDetectionScore: 0.2, Confidence: 0.9}
}

func (analyzerStub) DeepAnalyze(string, string) *domain.DeepAnalysisResult {
	return &domain.DeepAnalysisResult{Consensus: domain.DeepConsensus{Score: 0.25}}
}

func fixtureReport() *domain.CertificationReport {
	return &domain.CertificationReport{
		DocumentID:  "doc-1",
		Filename:    "brief.pdf",
		Detection:   &domain.ConsensusResult{AIDetectionScore: 0.4, Interpretation: "POSSIBLY AI-ASSISTED"},
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestHandler() http.Handler {
	return NewRouter(
		ingestFake{},
		docsFake{doc: &domain.Document{ID: "doc-1", Status: domain.StatusCertified}},
		reportsFake{report: fixtureReport()},
		analyzerStub{},
		TrafficPolicy{},
	).Handler()
}

func TestHealthzEndpoint(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if res.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected request id header")
	}
}

func TestUploadDocumentSuccess(t *testing.T) {
	handler := newTestHandler()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("document_type", "budget"); err != nil {
		t.Fatalf("WriteField() error = %v", err)
	}
	part, err := writer.CreateFormFile("file", "budget.pdf")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte("fiscal year totals")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", res.Code, res.Body.String())
	}

	var docResp map[string]any
	if err := json.NewDecoder(res.Body).Decode(&docResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if docResp["id"] != "doc-1" {
		t.Fatalf("unexpected response: %+v", docResp)
	}
}

func TestUploadDocumentMissingMultipartField(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", bytes.NewBufferString("plain-text"))
	req.Header.Set("Content-Type", "text/plain")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestGetReportFormats(t *testing.T) {
	handler := newTestHandler()
	cases := []struct {
		format      string
		contentType string
	}{
		{"", "application/json"},
		{"json", "application/json"},
		{"markdown", "text/markdown; charset=utf-8"},
		{"html", "text/html; charset=utf-8"},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	}
	for _, tc := range cases {
		url := "/v1/reports/doc-1"
		if tc.format != "" {
			url += "?format=" + tc.format
		}
		req := httptest.NewRequest(http.MethodGet, url, nil)
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		if res.Code != http.StatusOK {
			t.Fatalf("format %q: expected 200, got %d", tc.format, res.Code)
		}
		if got := res.Header().Get("Content-Type"); got != tc.contentType {
			t.Fatalf("format %q: content type = %q, want %q", tc.format, got, tc.contentType)
		}
	}
}

func TestGetReportUnknownFormat(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/doc-1?format=docx", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestGetReportNotFoundMapsTo404(t *testing.T) {
	handler := NewRouter(
		ingestFake{},
		docsFake{},
		reportsFake{err: domain.WrapError(domain.ErrReportNotFound, "get report", io.EOF)},
		analyzerStub{},
		TrafficPolicy{},
	).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestAnalyzeTextEndpoint(t *testing.T) {
	handler := newTestHandler()

	body := strings.NewReader(`{"text":"Some policy text to score.","document_type":"policy_brief"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", body)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := resp["ai_detection_score"]; !ok {
		t.Fatalf("missing ai_detection_score in response: %+v", resp)
	}
}

func TestAnalyzeTextDeepFlag(t *testing.T) {
	handler := newTestHandler()

	body := strings.NewReader(`{"text":"Some policy text to score.","deep":true}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", body)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := resp["consensus"]; !ok {
		t.Fatalf("missing consensus in deep response: %+v", resp)
	}
}

func TestAnalyzeTextRequiresText(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(`{"text":"  "}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}
