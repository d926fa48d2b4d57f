// MCP server exposing document certification over stdio: AI-detection
// analysis of raw text and retrieval of finished certification reports.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	mcptools "github.com/opengovlab/docucert/internal/adapters/mcp"
	"github.com/opengovlab/docucert/internal/bootstrap"
	"github.com/opengovlab/docucert/internal/config"
	"github.com/opengovlab/docucert/internal/observability/logging"
)

const serverVersion = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	// Logs go to stdout as JSON by default, which would corrupt the MCP
	// stdio transport. Route them to stderr instead.
	slog.SetDefault(logging.NewJSONLoggerTo(os.Stderr, "docucert-mcp", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer app.Close()

	s := server.NewMCPServer(
		"docucert",
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	analyzeTool := mcptools.NewAnalyzeTool(app.Analyzer)
	s.AddTool(analyzeTool.Definition(), analyzeTool.Handle)

	reportTool := mcptools.NewGetReportTool(app.QueryUC)
	s.AddTool(reportTool.Definition(), reportTool.Handle)

	return server.ServeStdio(s)
}
