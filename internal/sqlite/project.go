package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sabren/worklog/internal/domain/entry"
	"github.com/sabren/worklog/internal/domain/project"
	"github.com/sabren/worklog/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Ensure inserts the project if absent. An existing row is left untouched,
// so created_at is set exactly once.
func (r *ProjectRepository) Ensure(ctx context.Context, proj *project.Project) error {
	createdAt := proj.CreatedAt
	if createdAt == "" {
		createdAt = entry.Now()
	}

	query := `
		INSERT OR IGNORE INTO projects (id, name, created_at)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, proj.ID, proj.Name, createdAt)
	if err != nil {
		return fmt.Errorf("failed to ensure project %s: %w", proj.ID, err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT id, name, created_at
		FROM projects
		WHERE id = ?
	`

	var proj project.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&proj.ID,
		&proj.Name,
		&proj.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", id, err)
	}

	return &proj, nil
}

// Exists reports whether the project has ever been created
func (r *ProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE id = ?)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check project %s: %w", id, err)
	}
	return exists, nil
}

// List returns all projects with entry counts, newest first
func (r *ProjectRepository) List(ctx context.Context) ([]project.ProjectSummary, error) {
	query := `
		SELECT
			p.id,
			p.name,
			p.created_at,
			COUNT(e.id) as entry_count
		FROM projects p
		LEFT JOIN entries e ON e.project_id = p.id
		GROUP BY p.id, p.name, p.created_at
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.ProjectSummary
	for rows.Next() {
		var summary project.ProjectSummary
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.CreatedAt,
			&summary.EntryCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return summaries, nil
}
