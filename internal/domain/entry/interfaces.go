package entry

import (
	"context"

	"github.com/sabren/worklog/internal/domain/project"
)

// EntryRepository provides persistence for entries.
type EntryRepository interface {
	Create(ctx context.Context, ent *Entry) error
	Get(ctx context.Context, projectID, id string) (*Entry, error)
	UpdateSummary(ctx context.Context, id, summary string) error
}

// TagRepository maintains the normalized entry-to-tag index.
type TagRepository interface {
	AddTags(ctx context.Context, entryID string, tags []string) error
	GetTags(ctx context.Context, entryID string) ([]string, error)
}

// ProjectRepository provides the project operations entries depend on.
type ProjectRepository interface {
	Ensure(ctx context.Context, proj *project.Project) error
	Exists(ctx context.Context, id string) (bool, error)
}

// SearchRepository answers discovery queries over one project's entries.
type SearchRepository interface {
	Search(ctx context.Context, opts SearchOptions) ([]Ref, int, error)
}
