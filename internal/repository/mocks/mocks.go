package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sabren/worklog/internal/domain/entry"
	"github.com/sabren/worklog/internal/domain/project"
)

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Ensure(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.ProjectSummary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.ProjectSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// EntryRepository is a mock for repository.EntryRepository.
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) Create(ctx context.Context, ent *entry.Entry) error {
	args := m.Called(ctx, ent)
	return args.Error(0)
}

func (m *EntryRepository) Get(ctx context.Context, projectID, id string) (*entry.Entry, error) {
	args := m.Called(ctx, projectID, id)
	if ent, ok := args.Get(0).(*entry.Entry); ok {
		return ent, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) UpdateSummary(ctx context.Context, id, summary string) error {
	args := m.Called(ctx, id, summary)
	return args.Error(0)
}

// TagRepository is a mock for repository.TagRepository.
type TagRepository struct {
	mock.Mock
}

func (m *TagRepository) AddTags(ctx context.Context, entryID string, tags []string) error {
	args := m.Called(ctx, entryID, tags)
	return args.Error(0)
}

func (m *TagRepository) GetTags(ctx context.Context, entryID string) ([]string, error) {
	args := m.Called(ctx, entryID)
	if tags, ok := args.Get(0).([]string); ok {
		return tags, args.Error(1)
	}
	return nil, args.Error(1)
}

// SearchRepository is a mock for repository.SearchRepository.
type SearchRepository struct {
	mock.Mock
}

func (m *SearchRepository) Search(ctx context.Context, opts entry.SearchOptions) ([]entry.Ref, int, error) {
	args := m.Called(ctx, opts)
	if refs, ok := args.Get(0).([]entry.Ref); ok {
		return refs, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}
