package mcptools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/opengovlab/docucert/internal/core/domain"
)

func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

type analyzerStub struct{}

func (analyzerStub) Analyze(string, string) *domain.ConsensusResult {
	model := "GPT (OpenAI)"
	return &domain.ConsensusResult{
		AIDetectionScore: 0.72,
		Confidence:       0.85,
		Interpretation:   "LIKELY AI-GENERATED",
		LikelyAIModel: domain.ModelAttribution{
			Model:      &model,
			Confidence: 0.5,
		},
		DetectedDocumentType: domain.TypeReport,
	}
}

func (analyzerStub) DeepAnalyze(string, string) *domain.DeepAnalysisResult {
	return &domain.DeepAnalysisResult{
		Consensus: domain.DeepConsensus{
			Score:             0.68,
			TransparencyScore: 90,
			PrimaryModel:      "GPT (OpenAI)",
			LevelScores:       map[string]float64{"full_document": 0.72},
		},
	}
}

type reportReaderStub struct {
	report *domain.CertificationReport
	err    error
}

func (s reportReaderStub) GetReport(context.Context, string) (*domain.CertificationReport, error) {
	return s.report, s.err
}

func TestAnalyzeToolDefinition(t *testing.T) {
	def := NewAnalyzeTool(analyzerStub{}).Definition()
	if def.Name != "analyze_text" {
		t.Fatalf("tool name = %q, want analyze_text", def.Name)
	}
	if _, ok := def.InputSchema.Properties["text"]; !ok {
		t.Fatal("missing 'text' parameter")
	}
	required := false
	for _, r := range def.InputSchema.Required {
		if r == "text" {
			required = true
		}
	}
	if !required {
		t.Fatal("'text' should be required")
	}
}

func TestAnalyzeToolHandle(t *testing.T) {
	tool := NewAnalyzeTool(analyzerStub{})
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"text": "A long enough piece of policy text.",
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	text := resultText(res)
	if !strings.Contains(text, "72.0%") || !strings.Contains(text, "GPT (OpenAI)") {
		t.Fatalf("unexpected result text: %s", text)
	}
}

func TestAnalyzeToolHandleDeep(t *testing.T) {
	tool := NewAnalyzeTool(analyzerStub{})
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"text": "A long enough piece of policy text.",
		"deep": true,
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	text := resultText(res)
	if !strings.Contains(text, "Deep Analysis") || !strings.Contains(text, "full_document") {
		t.Fatalf("unexpected deep result text: %s", text)
	}
}

func TestAnalyzeToolRequiresText(t *testing.T) {
	tool := NewAnalyzeTool(analyzerStub{})
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result for missing text")
	}
}

func TestGetReportToolHandle(t *testing.T) {
	rep := &domain.CertificationReport{
		DocumentID:  "doc-1",
		Filename:    "brief.pdf",
		Detection:   &domain.ConsensusResult{AIDetectionScore: 0.3, Interpretation: "LIKELY HUMAN-WRITTEN"},
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	tool := NewGetReportTool(reportReaderStub{report: rep})
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"document_id": "doc-1",
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	text := resultText(res)
	if !strings.Contains(text, "brief.pdf") || !strings.Contains(text, "30.0%") {
		t.Fatalf("unexpected report text: %s", text)
	}
}

func TestGetReportToolRequiresID(t *testing.T) {
	tool := NewGetReportTool(reportReaderStub{})
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result for missing document_id")
	}
}
