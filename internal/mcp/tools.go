package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sabren/worklog/internal/domain/entry"
	"github.com/sabren/worklog/internal/domain/project"
	"github.com/sabren/worklog/internal/redact"
	"github.com/sabren/worklog/internal/summary"
)

// EntryService defines entry operations needed by the tool surface.
type EntryService interface {
	Create(ctx context.Context, req entry.CreateRequest) (*entry.Entry, error)
	Search(ctx context.Context, opts entry.SearchOptions) (*entry.SearchResult, error)
}

// ProjectService defines project operations needed by the tool surface.
type ProjectService interface {
	List(ctx context.Context) ([]project.ProjectSummary, error)
}

// ContextService defines summary coordination needed by the tool surface.
type ContextService interface {
	GetContext(ctx context.Context, projectID, id string, includeContent bool) (*summary.Context, error)
}

// Tools holds the domain services behind the MCP tool handlers.
type Tools struct {
	Entries  EntryService
	Projects ProjectService
	Context  ContextService
}

// --- Input types ---

type LogWorkInput struct {
	ProjectID string   `json:"project_id" jsonschema:"Project identifier, conventionally the repository name. Created on first use."`
	Title     string   `json:"title" jsonschema:"Short label for the work done"`
	Content   string   `json:"content" jsonschema:"Full description of the work"`
	Tags      []string `json:"tags,omitempty" jsonschema:"Optional tags for later filtering"`
	AgentID   string   `json:"agent_id,omitempty" jsonschema:"Optional identifier of the producing agent"`
}

type GetContextInput struct {
	ProjectID      string `json:"project_id" jsonschema:"Project identifier"`
	ID             string `json:"id" jsonschema:"Entry identifier"`
	IncludeContent bool   `json:"include_content,omitempty" jsonschema:"Also return the full content body"`
}

type SearchLogInput struct {
	ProjectID string   `json:"project_id" jsonschema:"Project identifier"`
	Query     string   `json:"query,omitempty" jsonschema:"Case-insensitive substring matched against titles"`
	Tags      []string `json:"tags,omitempty" jsonschema:"Entries must carry all of these tags"`
	StartDate string   `json:"start_date,omitempty" jsonschema:"Inclusive lower bound, YYYY-MM-DD or RFC 3339"`
	EndDate   string   `json:"end_date,omitempty" jsonschema:"Inclusive upper bound, YYYY-MM-DD or RFC 3339"`
	Limit     int      `json:"limit,omitempty" jsonschema:"Maximum results to return (default 20, max 100)"`
}

// --- Output types ---

type LogWorkOutput struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// --- Handlers ---

func (t *Tools) LogWork(ctx context.Context, _ *sdkmcp.CallToolRequest, input LogWorkInput) (*sdkmcp.CallToolResult, any, error) {
	var agentID *string
	if input.AgentID != "" {
		agentID = &input.AgentID
	}

	ent, err := t.Entries.Create(ctx, entry.CreateRequest{
		ProjectID: input.ProjectID,
		Title:     redact.Text(input.Title),
		Content:   redact.Text(input.Content),
		Tags:      input.Tags,
		AgentID:   agentID,
	})
	if err != nil {
		return toolError(err), nil, nil
	}

	return toolJSON(LogWorkOutput{
		ID:        ent.ID,
		ProjectID: ent.ProjectID,
		Title:     ent.Title,
		CreatedAt: ent.CreatedAt,
	})
}

func (t *Tools) GetContext(ctx context.Context, _ *sdkmcp.CallToolRequest, input GetContextInput) (*sdkmcp.CallToolResult, any, error) {
	result, err := t.Context.GetContext(ctx, input.ProjectID, input.ID, input.IncludeContent)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(result)
}

func (t *Tools) SearchLog(ctx context.Context, _ *sdkmcp.CallToolRequest, input SearchLogInput) (*sdkmcp.CallToolResult, any, error) {
	result, err := t.Entries.Search(ctx, entry.SearchOptions{
		ProjectID: input.ProjectID,
		Query:     input.Query,
		Tags:      input.Tags,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Limit:     input.Limit,
	})
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(result)
}

func (t *Tools) ListProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
	projects, err := t.Projects.List(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	if projects == nil {
		projects = []project.ProjectSummary{}
	}
	return toolJSON(projects)
}

// --- Helpers ---

func toolError(err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	data, marshalErr := json.Marshal(apiErr)
	if marshalErr != nil {
		data = []byte(fmt.Sprintf(`{"code":"INTERNAL","message":%q}`, apiErr.Error()))
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: true,
	}
}

func toolJSON(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(fmt.Errorf("marshaling result: %w", err)), nil, nil
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
