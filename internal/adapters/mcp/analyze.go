// Package mcptools exposes the detection engine to MCP clients so editors
// and agent frameworks can score text without going through the REST API.
package mcptools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/opengovlab/docucert/internal/core/domain"
	"github.com/opengovlab/docucert/internal/core/ports"
)

// AnalyzeTool handles the analyze_text MCP tool.
type AnalyzeTool struct {
	analyzer ports.DetectionAnalyzer
}

func NewAnalyzeTool(analyzer ports.DetectionAnalyzer) *AnalyzeTool {
	return &AnalyzeTool{analyzer: analyzer}
}

// Definition returns the MCP tool definition for analyze_text.
func (t *AnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_text",
		mcp.WithDescription(
			"Estimate how likely a text was machine-generated. Runs eight heuristic "+
				"detectors and reports the weighted consensus, confidence, and the most "+
				"similar model family. Scores are estimates, not proof.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to analyze (at least 100 characters for a scored verdict)"),
		),
		mcp.WithString("document_type",
			mcp.Description("Optional genre hint: legislation, budget, legal_judgment, policy_brief, research_report, news_article, analysis, report"),
		),
		mcp.WithBoolean("deep",
			mcp.Description("Run the multi-level deep analysis instead of the single-pass consensus"),
		),
	)
}

// Handle processes the analyze_text tool call.
func (t *AnalyzeTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}
	docType := req.GetString("document_type", "")

	if boolArg(req, "deep", false) {
		return mcp.NewToolResultText(formatDeepResult(t.analyzer.DeepAnalyze(text, docType))), nil
	}
	return mcp.NewToolResultText(formatConsensus(t.analyzer.Analyze(text, docType))), nil
}

func formatConsensus(result *domain.ConsensusResult) string {
	var sb strings.Builder
	sb.WriteString("## AI Detection\n\n")
	fmt.Fprintf(&sb, "- **AI likelihood**: %.1f%% (%s)\n", result.AIDetectionScore*100, result.ScoreConfidenceInterval.Display)
	fmt.Fprintf(&sb, "- **Confidence**: %.1f%%\n", result.Confidence*100)
	fmt.Fprintf(&sb, "- **Verdict**: %s\n", result.Interpretation)
	if result.DetectionInconclusive && result.InconclusiveReason != nil {
		fmt.Fprintf(&sb, "- **Inconclusive**: %s\n", *result.InconclusiveReason)
	}
	if result.LikelyAIModel.Model != nil {
		fmt.Fprintf(&sb, "- **Likely model**: %s (%.1f%% attribution confidence)\n",
			*result.LikelyAIModel.Model, result.LikelyAIModel.Confidence*100)
	}
	fmt.Fprintf(&sb, "- **Document type**: %s\n", result.DetectedDocumentType)
	for _, w := range result.DomainWarnings {
		fmt.Fprintf(&sb, "- Warning: %s\n", w)
	}
	if len(result.FlaggedSections) > 0 {
		sb.WriteString("\n### Flagged passages\n\n")
		for _, s := range result.FlaggedSections {
			fmt.Fprintf(&sb, "%d. (%.0f%%) %s\n", s.Section, s.AILikelihood*100, s.Text)
		}
	}
	return sb.String()
}

func formatDeepResult(result *domain.DeepAnalysisResult) string {
	var sb strings.Builder
	sb.WriteString("## Deep Analysis\n\n")
	fmt.Fprintf(&sb, "- **Consensus score**: %.1f%%\n", result.Consensus.Score*100)
	fmt.Fprintf(&sb, "- **Transparency**: %.0f/100\n", result.Consensus.TransparencyScore)
	if result.Consensus.PrimaryModel != "" {
		fmt.Fprintf(&sb, "- **Primary model**: %s\n", result.Consensus.PrimaryModel)
	}
	levels := make([]string, 0, len(result.Consensus.LevelScores))
	for level := range result.Consensus.LevelScores {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	for _, level := range levels {
		fmt.Fprintf(&sb, "- %s: %.1f%%\n", level, result.Consensus.LevelScores[level]*100)
	}
	if result.Sentences != nil && result.Sentences.Total > 0 {
		fmt.Fprintf(&sb, "- **Sentences flagged**: %d of %d\n", result.Sentences.AICount, result.Sentences.Total)
	}
	if result.Stylometry != nil {
		fmt.Fprintf(&sb, "- **Stylometric signal**: %s (%d indicators)\n",
			result.Stylometry.Label, len(result.Stylometry.Indicators))
	}
	return sb.String()
}
