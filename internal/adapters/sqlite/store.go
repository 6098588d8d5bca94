package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"nodedex/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store implements the node repository, search index and template source on
// a single SQLite database.
type Store struct {
	db         *sql.DB
	path       string
	ftsEnabled bool
	log        zerolog.Logger
}

// Ensure Store implements the storage ports
var (
	_ ports.NodeRepository = (*Store)(nil)
	_ ports.SearchIndex    = (*Store)(nil)
	_ ports.TemplateSource = (*Store)(nil)
	_ ports.StatsProvider  = (*Store)(nil)
)

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database. The full-text index is probed on open; when the build
// lacks FTS5 the store still works and reports FTSAvailable() == false.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if path != ":memory:" {
		// Expand ~ in path
		if len(path) > 0 && path[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			path = filepath.Join(home, path[1:])
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{db: db, path: path, log: log}

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS nodes (
			node_type     TEXT PRIMARY KEY,
			package_name  TEXT NOT NULL,
			display_name  TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			category      TEXT NOT NULL DEFAULT '',
			version       REAL NOT NULL DEFAULT 1,
			is_versioned  INTEGER NOT NULL DEFAULT 0,
			is_trigger    INTEGER NOT NULL DEFAULT 0,
			is_webhook    INTEGER NOT NULL DEFAULT 0,
			is_ai_tool    INTEGER NOT NULL DEFAULT 0,
			properties    TEXT NOT NULL DEFAULT '[]',
			operations    TEXT NOT NULL DEFAULT '[]',
			credentials   TEXT NOT NULL DEFAULT '[]',
			documentation TEXT NOT NULL DEFAULT '',
			community     TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_nodes_package ON nodes(package_name);
		CREATE INDEX IF NOT EXISTS idx_nodes_category ON nodes(category);

		CREATE TABLE IF NOT EXISTS templates (
			id              INTEGER PRIMARY KEY,
			name            TEXT NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			author_name     TEXT NOT NULL DEFAULT '',
			author_username TEXT NOT NULL DEFAULT '',
			author_verified INTEGER NOT NULL DEFAULT 0,
			nodes_used      TEXT NOT NULL DEFAULT '[]',
			workflow        TEXT NOT NULL DEFAULT '{}',
			views           INTEGER NOT NULL DEFAULT 0,
			url             TEXT NOT NULL DEFAULT '',
			created_at      TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_templates_views ON templates(views);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s.probeFTS()

	if err := s.SetMeta("schema_version", schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return s, nil
}

// probeFTS creates the full-text table and its sync triggers. A build
// without FTS5 fails here; the store then serves substring search only.
func (s *Store) probeFTS() {
	_, err := s.db.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS nodes_fts USING fts5(
			node_type, display_name, description, category,
			content='nodes', content_rowid='rowid'
		);
		CREATE TRIGGER IF NOT EXISTS nodes_fts_insert AFTER INSERT ON nodes BEGIN
			INSERT INTO nodes_fts(rowid, node_type, display_name, description, category)
			VALUES (new.rowid, new.node_type, new.display_name, new.description, new.category);
		END;
		CREATE TRIGGER IF NOT EXISTS nodes_fts_delete AFTER DELETE ON nodes BEGIN
			INSERT INTO nodes_fts(nodes_fts, rowid, node_type, display_name, description, category)
			VALUES ('delete', old.rowid, old.node_type, old.display_name, old.description, old.category);
		END;
		CREATE TRIGGER IF NOT EXISTS nodes_fts_update AFTER UPDATE ON nodes BEGIN
			INSERT INTO nodes_fts(nodes_fts, rowid, node_type, display_name, description, category)
			VALUES ('delete', old.rowid, old.node_type, old.display_name, old.description, old.category);
			INSERT INTO nodes_fts(rowid, node_type, display_name, description, category)
			VALUES (new.rowid, new.node_type, new.display_name, new.description, new.category);
		END;
	`)
	if err != nil {
		s.ftsEnabled = false
		s.log.Warn().Err(err).Msg("full-text index unavailable; search falls back to substring matching")
		return
	}
	s.ftsEnabled = true
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database location this store was opened with.
func (s *Store) Path() string { return s.path }

// GetMeta reads one metadata value; missing keys return "".
func (s *Store) GetMeta(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetMeta writes one metadata value.
func (s *Store) SetMeta(key, value string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", key, value)
	return err
}

// DefaultPath returns the XDG location for the node database.
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "nodedex", "nodes.db")
}
