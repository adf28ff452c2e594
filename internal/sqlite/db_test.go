package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	// A second pooled connection would see its own empty memory database.
	db.SetMaxOpenConns(1)

	err = db.Migrate()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func insertProject(t *testing.T, db *DB, id string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO projects (id, name, created_at) VALUES (?, ?, ?)`,
		id, id, "2024-01-01T00:00:00.000Z")
	require.NoError(t, err)
}

// TestMigrate verifies that migrations create every table
func TestMigrate(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{"projects", "entries", "entry_tags"}
	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestMigrate_Idempotent verifies a second run changes nothing
func TestMigrate_Idempotent(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	insertProject(t, db, "p1")
	_, err := db.ExecContext(ctx,
		`INSERT INTO entries (id, project_id, title, content, created_at, tags)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"e00000000001", "p1", "Title", "Content", "2024-01-02T00:00:00.000Z", `["auth"]`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO entry_tags (entry_id, tag) VALUES (?, ?)`, "e00000000001", "auth")
	require.NoError(t, err)

	require.NoError(t, db.Migrate())

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM entry_tags`).Scan(&count))
	require.Equal(t, 1, count, "re-running migrations must not duplicate tag rows")
}

// TestMigrate_TagBackfill verifies the one-time backfill from the inline
// tag encoding into the normalized index
func TestMigrate_TagBackfill(t *testing.T) {
	db, err := New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	// Simulate a legacy store: entries with inline tags, no entry_tags table.
	legacy := `
CREATE TABLE projects (id TEXT PRIMARY KEY, name TEXT NOT NULL, created_at TEXT NOT NULL);
CREATE TABLE entries (
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
INSERT INTO projects (id, name, created_at) VALUES ('p1', 'p1', '2024-01-01T00:00:00.000Z');
INSERT INTO entries (id, project_id, title, content, created_at, tags)
VALUES ('e00000000001', 'p1', 'A', 'body', '2024-01-02T00:00:00.000Z', '["auth","bugfix"]'),
       ('e00000000002', 'p1', 'B', 'body', '2024-01-03T00:00:00.000Z', '[]'),
       ('e00000000003', 'p1', 'C', 'body', '2024-01-04T00:00:00.000Z', '["auth"]');
`
	_, err = db.Exec(legacy)
	require.NoError(t, err)

	require.NoError(t, db.Migrate())

	rows, err := db.Query(`SELECT entry_id, tag FROM entry_tags ORDER BY entry_id, tag`)
	require.NoError(t, err)
	defer rows.Close()

	var pairs [][2]string
	for rows.Next() {
		var entryID, tag string
		require.NoError(t, rows.Scan(&entryID, &tag))
		pairs = append(pairs, [2]string{entryID, tag})
	}
	require.NoError(t, rows.Err())

	require.Equal(t, [][2]string{
		{"e00000000001", "auth"},
		{"e00000000001", "bugfix"},
		{"e00000000003", "auth"},
	}, pairs, "backfill must cover exactly the inline tags, skipping empty sets")
}
