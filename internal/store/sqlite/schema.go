package sqlite

import "database/sql"

// applySchema creates the tables if they do not exist. The SQLite dialect
// differs slightly from internal/store/schema.sql (no TIMESTAMPTZ, integer
// booleans), so the statements are kept here.
func applySchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            user_id       TEXT PRIMARY KEY,
            email         TEXT NOT NULL UNIQUE,
            display_name  TEXT,
            creation_time TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS folders (
            folder_id        TEXT PRIMARY KEY,
            owner_id         TEXT NOT NULL REFERENCES users(user_id),
            parent_folder_id TEXT REFERENCES folders(folder_id),
            title            TEXT NOT NULL,
            image_name       TEXT NOT NULL DEFAULT '',
            is_root          BOOLEAN NOT NULL DEFAULT 0,
            version          INTEGER NOT NULL DEFAULT 1,
            creation_time    TIMESTAMP NOT NULL
        );`,
		`CREATE UNIQUE INDEX IF NOT EXISTS folders_root_per_owner
            ON folders (owner_id) WHERE is_root;`,
		`CREATE INDEX IF NOT EXISTS folders_parent_idx ON folders (parent_folder_id);`,
		`CREATE INDEX IF NOT EXISTS folders_owner_idx ON folders (owner_id);`,
		`CREATE TABLE IF NOT EXISTS notes (
            note_id       TEXT PRIMARY KEY,
            folder_id     TEXT NOT NULL REFERENCES folders(folder_id),
            title         TEXT NOT NULL,
            body          TEXT NOT NULL,
            is_favourite  BOOLEAN NOT NULL DEFAULT 0,
            priority      INTEGER NOT NULL DEFAULT 0,
            version       INTEGER NOT NULL DEFAULT 1,
            creation_time TIMESTAMP NOT NULL,
            edit_time     TIMESTAMP NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS notes_folder_idx ON notes (folder_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
