package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection. WAL keeps readers from
// blocking on the single writer; the busy timeout covers brief lock
// contention between connections.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %s: %w", pragma, err)
		}
	}

	return &DB{db}, nil
}

// Migrate applies the base schema and the one-time tag-index backfill.
// Safe to run on every startup and against a pre-existing store.
func (db *DB) Migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    summary TEXT,
    created_at TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT '[]',
    agent_id TEXT,
    FOREIGN KEY (project_id) REFERENCES projects(id)
);
CREATE INDEX IF NOT EXISTS idx_entries_project ON entries(project_id);
CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(project_id, created_at);
`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return db.migrateTagIndex()
}

// migrateTagIndex creates the normalized entry_tags table and backfills it
// from the inline tag encoding. The sqlite_master check is the migration
// marker: once the table exists the backfill never runs again. The backfill
// itself uses INSERT OR IGNORE, so a concurrent or interrupted run cannot
// duplicate rows.
func (db *DB) migrateTagIndex() error {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'entry_tags'`,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check tag index: %w", err)
	}
	if count > 0 {
		return nil
	}

	createTable := `
CREATE TABLE IF NOT EXISTS entry_tags (
    entry_id TEXT NOT NULL,
    tag TEXT NOT NULL,
    PRIMARY KEY (entry_id, tag),
    FOREIGN KEY (entry_id) REFERENCES entries(id)
);
CREATE INDEX IF NOT EXISTS idx_entry_tags_tag ON entry_tags(tag);
`
	if _, err := db.Exec(createTable); err != nil {
		return fmt.Errorf("failed to create tag index: %w", err)
	}

	rows, err := db.Query(`SELECT id, tags FROM entries WHERE tags != '[]'`)
	if err != nil {
		return fmt.Errorf("failed to read entries for backfill: %w", err)
	}
	defer rows.Close()

	type entryTags struct {
		id   string
		tags []string
	}
	var pending []entryTags
	for rows.Next() {
		var id, encoded string
		if err := rows.Scan(&id, &encoded); err != nil {
			return fmt.Errorf("failed to scan entry tags: %w", err)
		}
		tags, err := decodeTags(encoded)
		if err != nil {
			return fmt.Errorf("failed to decode tags for entry %s: %w", id, err)
		}
		if len(tags) > 0 {
			pending = append(pending, entryTags{id: id, tags: tags})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating entries for backfill: %w", err)
	}

	for _, ent := range pending {
		for _, tag := range ent.tags {
			if _, err := db.Exec(
				`INSERT OR IGNORE INTO entry_tags (entry_id, tag) VALUES (?, ?)`,
				ent.id, tag,
			); err != nil {
				return fmt.Errorf("failed to backfill tag for entry %s: %w", ent.id, err)
			}
		}
	}

	return nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(data), nil
}

func decodeTags(encoded string) ([]string, error) {
	if encoded == "" || encoded == "[]" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(encoded), &tags); err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}
