package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/sabren/worklog/internal/domain/project"
	"github.com/sabren/worklog/internal/repository"
)

// Service handles entry business logic.
type Service struct {
	entries  EntryRepository
	tags     TagRepository
	projects ProjectRepository
	search   SearchRepository
	logger   *slog.Logger
}

// NewService creates a new entry service.
func NewService(
	entries EntryRepository,
	tags TagRepository,
	projects ProjectRepository,
	search SearchRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		entries:  entries,
		tags:     tags,
		projects: projects,
		search:   search,
		logger:   logger,
	}
}

// CreateRequest describes an entry creation request. ID is optional; when
// supplied it must already have the exact required length.
type CreateRequest struct {
	ID        string
	ProjectID string
	Title     string
	Content   string
	Tags      []string
	AgentID   *string
}

// Create validates the request, ensures the owning project exists, and
// persists the entry plus its tag-index rows. The returned entry carries a
// null summary.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Entry, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	projectID := strings.TrimSpace(req.ProjectID)
	if err := s.projects.Ensure(ctx, &project.Project{ID: projectID, Name: projectID}); err != nil {
		return nil, fmt.Errorf("ensuring project %q: %w", projectID, err)
	}

	id := req.ID
	if id == "" {
		id = NewID()
	}

	ent := &Entry{
		ID:        id,
		ProjectID: projectID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: Now(),
		Tags:      dedupeTags(req.Tags),
		AgentID:   req.AgentID,
	}

	if err := s.entries.Create(ctx, ent); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateID
		}
		return nil, fmt.Errorf("creating entry %q: %w", id, err)
	}

	if len(ent.Tags) > 0 {
		if err := s.tags.AddTags(ctx, ent.ID, ent.Tags); err != nil {
			return nil, fmt.Errorf("indexing tags for entry %q: %w", id, err)
		}
	}

	return ent, nil
}

// Get returns the entry with both keys matching.
func (s *Service) Get(ctx context.Context, projectID, id string) (*Entry, error) {
	ent, err := s.entries.Get(ctx, projectID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("getting entry %q: %w", id, err)
	}
	return ent, nil
}

// Search answers a discovery query, distinguishing "project doesn't exist"
// from "project exists but nothing matched".
func (s *Service) Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	if err := NormalizeSearchInput(&opts); err != nil {
		return nil, err
	}

	exists, err := s.projects.Exists(ctx, opts.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("checking project %q: %w", opts.ProjectID, err)
	}
	if !exists {
		return nil, ErrProjectNotFound
	}

	refs, total, err := s.search.Search(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("searching project %q: %w", opts.ProjectID, err)
	}
	if refs == nil {
		refs = []Ref{}
	}
	return &SearchResult{Results: refs, Total: total}, nil
}

// dedupeTags drops duplicates and returns tags in lexical order. Tag order
// is not meaningful, so a stable order keeps reads deterministic.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if _, dup := seen[tag]; dup || tag == "" {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
