package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/opengovlab/docucert/internal/core/ports"
	"github.com/opengovlab/docucert/internal/report"
)

// GetReportTool handles the get_report MCP tool.
type GetReportTool struct {
	reports ports.ReportReader
}

func NewGetReportTool(reports ports.ReportReader) *GetReportTool {
	return &GetReportTool{reports: reports}
}

// Definition returns the MCP tool definition for get_report.
func (t *GetReportTool) Definition() mcp.Tool {
	return mcp.NewTool("get_report",
		mcp.WithDescription(
			"Fetch the certification report for a previously uploaded document, "+
				"rendered as markdown: detection verdict, rubric grade, representation "+
				"audit, risk tier, and provenance.",
		),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("The document id returned by the upload endpoint"),
		),
	)
}

// Handle processes the get_report tool call.
func (t *GetReportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID := req.GetString("document_id", "")
	if documentID == "" {
		return mcp.NewToolResultError("'document_id' is required"), nil
	}

	rep, err := t.reports.GetReport(ctx, documentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch report: %v", err)), nil
	}
	return mcp.NewToolResultText(report.RenderMarkdown(rep)), nil
}
