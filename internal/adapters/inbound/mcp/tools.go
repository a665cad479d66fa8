package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/integrity/internal/adapters/outbound/config"
	"github.com/abdidvp/integrity/internal/adapters/outbound/htmlreport"
	"github.com/abdidvp/integrity/internal/adapters/outbound/tui"
	"github.com/abdidvp/integrity/internal/application"
	"github.com/abdidvp/integrity/internal/domain"
)

// registerTools registers all integrity MCP tools on the given server.
func registerTools(s *server.MCPServer, d handlerDeps) {
	// 1. integrity_list_checks
	s.AddTool(
		mcplib.NewTool("integrity_list_checks",
			mcplib.WithDescription("Returns the configured check registry in execution order"),
		),
		handleListChecks(d),
	)

	// 2. integrity_run_checks
	s.AddTool(
		mcplib.NewTool("integrity_run_checks",
			mcplib.WithDescription("Runs the checks against the database and returns outcomes and run severity. The report is never mailed."),
			mcplib.WithArray("checks",
				mcplib.Description("Names of the checks to run (default: all)"),
				mcplib.WithStringItems(),
			),
			mcplib.WithString("format", mcplib.Description("Output format: json or text (default: json)")),
		),
		handleRunChecks(d),
	)

	// 3. integrity_run_check
	s.AddTool(
		mcplib.NewTool("integrity_run_check",
			mcplib.WithDescription("Runs a single check and returns its outcome"),
			mcplib.WithString("name",
				mcplib.Required(),
				mcplib.Description("Name of the check to run"),
			),
		),
		handleRunCheck(d),
	)
}

type runChecksArgs struct {
	Checks []string `mapstructure:"checks"`
	Format string   `mapstructure:"format"`
}

// runView is the JSON shape returned by the run tools.
type runView struct {
	Severity domain.Severity       `json:"severity"`
	Subject  string                `json:"subject"`
	Fatal    string                `json:"fatal,omitempty"`
	Summary  string                `json:"summary,omitempty"`
	Outcomes []domain.CheckOutcome `json:"outcomes"`
}

func handleListChecks(d handlerDeps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := config.New().Load(d.configPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}
		return jsonResult(cfg.Checks)
	}
}

func handleRunChecks(d handlerDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		var args runChecksArgs
		if err := mapstructure.Decode(request.GetArguments(), &args); err != nil {
			return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		res, err := d.run(ctx, args.Checks)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if args.Format == "text" {
			return textResult(tui.RenderDocument(res.Document)), nil
		}
		return jsonResult(newRunView(res))
	}
}

func handleRunCheck(d handlerDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		res, err := d.run(ctx, []string{name})
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if res.Fatal != nil {
			return errorResult(res.Fatal.Error()), nil
		}
		return jsonResult(res.Outcomes[0])
	}
}

// run executes a dry run: the report is compiled but never sent.
func (d handlerDeps) run(ctx context.Context, only []string) (*application.RunResult, error) {
	cfg, err := config.New().Load(d.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	svc := application.NewValidationService(d.connector, nil, htmlreport.New(), d.logger)
	res, err := svc.Run(ctx, cfg, application.RunOptions{DryRun: true, Only: only, ConfigPath: d.configPath})
	if err != nil {
		return nil, fmt.Errorf("run failed: %w", err)
	}
	return res, nil
}

func newRunView(res *application.RunResult) runView {
	v := runView{
		Severity: res.Severity,
		Subject:  res.Subject,
		Outcomes: res.Outcomes,
	}
	if v.Outcomes == nil {
		v.Outcomes = []domain.CheckOutcome{}
	}
	if res.Fatal != nil {
		v.Fatal = res.Fatal.Error()
	}
	if res.Document != nil {
		v.Summary = res.Document.Summary.Text
	}
	return v
}

// jsonResult marshals v to indented JSON and wraps it in a CallToolResult.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
