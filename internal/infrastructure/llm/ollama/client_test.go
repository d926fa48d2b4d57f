package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/opengovlab/docucert/internal/core/domain"
)

func sampleNarrativeReport() *domain.CertificationReport {
	return &domain.CertificationReport{
		Filename: "water_policy.pdf",
		Detection: &domain.ConsensusResult{
			AIDetectionScore:     0.45,
			Confidence:           0.7,
			Interpretation:       "POSSIBLY AI-ASSISTED",
			DetectedDocumentType: domain.TypePolicyBrief,
		},
		Risk: &domain.RiskAssessment{Tier: 2, Label: "limited", Rationale: "moderate AI likelihood"},
	}
}

func TestNarrativeBuildsFactPrompt(t *testing.T) {
	var capturedPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		capturedPrompt, _ = payload["prompt"].(string)
		_, _ = w.Write([]byte(`{"response":"The document appears largely human-written."}`))
	}))
	defer server.Close()

	client := New(server.URL, "llama3")
	text, err := client.Narrative(context.Background(), sampleNarrativeReport(), "plain")
	if err != nil {
		t.Fatalf("Narrative() error = %v", err)
	}
	if text != "The document appears largely human-written." {
		t.Fatalf("unexpected narrative: %q", text)
	}
	if !strings.Contains(capturedPrompt, "water_policy.pdf") || !strings.Contains(capturedPrompt, "45%") {
		t.Fatalf("unexpected prompt: %s", capturedPrompt)
	}
}

func TestNarrativeIncludesHTTPBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(server.URL, "llama3")
	_, err := client.Narrative(context.Background(), sampleNarrativeReport(), "plain")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("expected response body in error, got %v", err)
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("bad gateway should be wrapped temporary, got %v", err)
	}
}

func TestClassifyErrorStatusCodes(t *testing.T) {
	retryable := &HTTPStatusError{Operation: "generate", StatusCode: http.StatusServiceUnavailable}
	if v := ClassifyError(retryable); !v.Retryable {
		t.Fatal("503 should be retryable")
	}
	permanent := &HTTPStatusError{Operation: "generate", StatusCode: http.StatusBadRequest}
	if v := ClassifyError(permanent); v.Retryable {
		t.Fatal("400 should not be retryable")
	}
	if v := ClassifyError(context.Canceled); v.Retryable || v.RecordFailure {
		t.Fatal("cancellation must not retry or trip the breaker")
	}
	if v := ClassifyError(errors.New("opaque")); v.Retryable {
		t.Fatal("unknown errors should not retry")
	}
}
