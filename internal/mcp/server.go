package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `worklog records what coding agents did and retrieves it later.

Use log_work after completing a meaningful unit of work. Use search_log to
find prior entries by title text, tags, or date range, then get_context to
read one entry in full. Summaries are computed lazily on first read.`

// Services contains all domain services needed by the tool surface.
type Services struct {
	Entries  EntryService
	Projects ProjectService
	Context  ContextService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools registered.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "worklog",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	tools := &Tools{
		Entries:  cfg.Services.Entries,
		Projects: cfg.Services.Projects,
		Context:  cfg.Services.Context,
	}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "log_work",
		Description: "Record a completed unit of agent work. Creates the project on first use.",
	}, tools.LogWork)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_context",
		Description: "Fetch one entry with its summary, computing the summary on first read",
	}, tools.GetContext)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_log",
		Description: "Search a project's entries by title substring, tags (AND), and date range",
	}, tools.SearchLog)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with entry counts",
	}, tools.ListProjects)

	return server
}
