package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sabren/worklog/internal/domain/entry"
	"github.com/sabren/worklog/internal/repository"
)

// EntryRepository implements repository.EntryRepository for SQLite
type EntryRepository struct {
	db *DB
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create inserts a new entry. Summary is always stored as NULL; it only
// gains a value through UpdateSummary.
func (r *EntryRepository) Create(ctx context.Context, ent *entry.Entry) error {
	if ent.CreatedAt == "" {
		ent.CreatedAt = entry.Now()
	}
	encoded, err := encodeTags(ent.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO entries (id, project_id, title, content, summary, created_at, tags, agent_id)
		VALUES (?, ?, ?, ?, NULL, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		ent.ID,
		ent.ProjectID,
		ent.Title,
		ent.Content,
		ent.CreatedAt,
		encoded,
		ent.AgentID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create entry %s: %w", ent.ID, err)
	}

	ent.Summary = nil
	return nil
}

// Get retrieves an entry by (project, id)
func (r *EntryRepository) Get(ctx context.Context, projectID, id string) (*entry.Entry, error) {
	query := `
		SELECT id, project_id, title, content, summary, created_at, tags, agent_id
		FROM entries
		WHERE id = ? AND project_id = ?
	`

	var ent entry.Entry
	var summary sql.NullString
	var agentID sql.NullString
	var encoded string
	err := r.db.QueryRowContext(ctx, query, id, projectID).Scan(
		&ent.ID,
		&ent.ProjectID,
		&ent.Title,
		&ent.Content,
		&summary,
		&ent.CreatedAt,
		&encoded,
		&agentID,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %s: %w", id, err)
	}

	if summary.Valid {
		ent.Summary = &summary.String
	}
	if agentID.Valid {
		ent.AgentID = &agentID.String
	}
	ent.Tags, err = decodeTags(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tags for entry %s: %w", id, err)
	}

	return &ent, nil
}

// UpdateSummary sets the summary column for an entry. Matching zero rows is
// not an error; only genuine I/O failure surfaces.
func (r *EntryRepository) UpdateSummary(ctx context.Context, id, summary string) error {
	query := `UPDATE entries SET summary = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, summary, id)
	if err != nil {
		return fmt.Errorf("failed to update summary for entry %s: %w", id, err)
	}

	return nil
}
