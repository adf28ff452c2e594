package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/sabren/worklog/internal/domain/entry"
)

// SearchRepository implements repository.SearchRepository for SQLite
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search returns one page of lightweight refs ordered by created_at
// descending, plus the total match count computed before the limit.
//
// Tag-filtered and plain searches use different join shapes, but every
// supplied filter applies on both paths: title and date conditions are part
// of the shared WHERE clause the tag join is layered on top of.
func (r *SearchRepository) Search(ctx context.Context, opts entry.SearchOptions) ([]entry.Ref, int, error) {
	conditions := []string{"e.project_id = ?"}
	args := []interface{}{opts.ProjectID}

	if opts.Query != "" {
		conditions = append(conditions, `LOWER(e.title) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(opts.Query))+"%")
	}
	if opts.StartDate != "" {
		conditions = append(conditions, "e.created_at >= ?")
		args = append(args, opts.StartDate)
	}
	if opts.EndDate != "" {
		conditions = append(conditions, "e.created_at <= ?")
		args = append(args, opts.EndDate)
	}

	where := strings.Join(conditions, " AND ")

	var matchQuery string
	if len(opts.Tags) > 0 {
		placeholders := make([]string, len(opts.Tags))
		for i, tag := range opts.Tags {
			placeholders[i] = "?"
			args = append(args, tag)
		}
		// AND semantics: the entry must carry every requested tag.
		matchQuery = fmt.Sprintf(`
			SELECT e.id, e.project_id, e.title, e.created_at, e.tags
			FROM entries e
			JOIN entry_tags t ON t.entry_id = e.id
			WHERE %s AND t.tag IN (%s)
			GROUP BY e.id, e.project_id, e.title, e.created_at, e.tags
			HAVING COUNT(DISTINCT t.tag) = %d
		`, where, strings.Join(placeholders, ","), len(opts.Tags))
	} else {
		matchQuery = fmt.Sprintf(`
			SELECT e.id, e.project_id, e.title, e.created_at, e.tags
			FROM entries e
			WHERE %s
		`, where)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM (%s)`, matchQuery)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count matches: %w", err)
	}

	pageQuery := matchQuery + " ORDER BY e.created_at DESC, e.id DESC"
	if opts.Limit > 0 {
		pageQuery += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search entries: %w", err)
	}
	defer rows.Close()

	var refs []entry.Ref
	for rows.Next() {
		var ref entry.Ref
		var encoded string
		err := rows.Scan(
			&ref.ID,
			&ref.ProjectID,
			&ref.Title,
			&ref.CreatedAt,
			&encoded,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan search result: %w", err)
		}
		ref.Tags, err = decodeTags(encoded)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode tags for entry %s: %w", ref.ID, err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating search results: %w", err)
	}

	return refs, total, nil
}

// escapeLike escapes LIKE wildcards so the query text matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
