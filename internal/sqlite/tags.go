package sqlite

import (
	"context"
	"fmt"
)

// TagRepository implements repository.TagRepository for SQLite
type TagRepository struct {
	db *DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db}
}

// AddTags inserts (entry, tag) pairs, ignoring ones already present
func (r *TagRepository) AddTags(ctx context.Context, entryID string, tags []string) error {
	query := `INSERT OR IGNORE INTO entry_tags (entry_id, tag) VALUES (?, ?)`

	for _, tag := range tags {
		if _, err := r.db.ExecContext(ctx, query, entryID, tag); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("failed to tag unknown entry %s: %w", entryID, err)
			}
			return fmt.Errorf("failed to add tag %q to entry %s: %w", tag, entryID, err)
		}
	}

	return nil
}

// GetTags returns the full tag set for an entry in lexical order
func (r *TagRepository) GetTags(ctx context.Context, entryID string) ([]string, error) {
	query := `SELECT tag FROM entry_tags WHERE entry_id = ? ORDER BY tag ASC`

	rows, err := r.db.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}

	return tags, nil
}
