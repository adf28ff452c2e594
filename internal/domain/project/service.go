package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sabren/worklog/internal/repository"
)

// MaxIDLen bounds the caller-supplied project identifier.
const MaxIDLen = 128

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Ensure creates the project if it doesn't exist yet. Repeat calls with the
// same identifier are no-ops.
func (s *Service) Ensure(ctx context.Context, id, name string) error {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > MaxIDLen {
		return ErrInvalidInput
	}
	if strings.TrimSpace(name) == "" {
		name = id
	}

	if err := s.repo.Ensure(ctx, &Project{ID: id, Name: name}); err != nil {
		return fmt.Errorf("ensuring project %q: %w", id, err)
	}
	return nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns project summaries with entry counts.
func (s *Service) List(ctx context.Context) ([]ProjectSummary, error) {
	return s.repo.List(ctx)
}
