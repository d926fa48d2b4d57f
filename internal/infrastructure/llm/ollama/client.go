// Package ollama generates reader-facing narrative summaries of finished
// certification reports through a local Ollama endpoint.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/opengovlab/docucert/internal/core/domain"
	"github.com/opengovlab/docucert/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	runner     *resilience.Runner
}

func New(baseURL, model string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// WithRunner attaches a retry/breaker runner; without one each call is a
// single attempt.
func (c *Client) WithRunner(r *resilience.Runner) *Client {
	c.runner = r
	return c
}

// Narrative satisfies the narrative-generator port.
func (c *Client) Narrative(ctx context.Context, report *domain.CertificationReport, tone string) (string, error) {
	prompt := buildNarrativePrompt(report, tone)

	var text string
	call := func(ctx context.Context) error {
		var err error
		text, err = c.generateText(ctx, prompt)
		return err
	}

	var err error
	if c.runner != nil {
		err = c.runner.Do(ctx, "ollama.generate", call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", wrapTemporaryIfNeeded("generate narrative", err)
	}
	if text == "" {
		return "", fmt.Errorf("empty narrative response")
	}
	return text, nil
}

func (c *Client) generateText(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]any{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "/api/generate", reqBody, &response, "generate"); err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Response), nil
}
