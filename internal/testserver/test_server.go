// Package testserver wires a full service stack over an in-memory database
// for tests that exercise the tool surface end to end.
package testserver

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sabren/worklog/internal/domain/entry"
	"github.com/sabren/worklog/internal/domain/project"
	"github.com/sabren/worklog/internal/mcp"
	"github.com/sabren/worklog/internal/sqlite"
	"github.com/sabren/worklog/internal/summary"
)

// SummarizeFunc adapts a function to the summary.Summarizer interface.
type SummarizeFunc func(ctx context.Context, title, content string) (string, error)

func (f SummarizeFunc) Summarize(ctx context.Context, title, content string) (string, error) {
	return f(ctx, title, content)
}

// TestServer is an in-process stack: SQLite store, domain services, and the
// tool handlers, with a swappable summarizer.
type TestServer struct {
	DB      *sqlite.DB
	Tools   *mcp.Tools
	Entries *entry.Service
	Summary *summary.Service
}

// New builds a TestServer backed by a per-test in-memory database. The
// summarizer defaults to a deterministic stub when nil.
func New(t *testing.T, summarizer summary.Summarizer) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	if summarizer == nil {
		summarizer = SummarizeFunc(func(_ context.Context, title, _ string) (string, error) {
			return "summary of " + title, nil
		})
	}

	projectRepo := sqlite.NewProjectRepository(db)
	entryRepo := sqlite.NewEntryRepository(db)
	tagRepo := sqlite.NewTagRepository(db)
	searchRepo := sqlite.NewSearchRepository(db)

	projectSvc := project.NewService(projectRepo, nil)
	entrySvc := entry.NewService(entryRepo, tagRepo, projectRepo, searchRepo, nil)
	summarySvc := summary.NewService(entryRepo, summarizer, 0, nil)

	return &TestServer{
		DB:      db,
		Entries: entrySvc,
		Summary: summarySvc,
		Tools: &mcp.Tools{
			Entries:  entrySvc,
			Projects: projectSvc,
			Context:  summarySvc,
		},
	}
}
