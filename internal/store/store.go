package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite connection and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs auto-migration.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// Column order matches the ent/schema GenerationEvent definition.
var (
	generationColumns = []*entschema.Column{
		{Name: colSeq, Type: field.TypeInt64, Increment: true},
		{Name: colID, Type: field.TypeString, Unique: true},
		{Name: colCreatedAt, Type: field.TypeInt64},
		{Name: colProvider, Type: field.TypeString},
		{Name: colModel, Type: field.TypeString},
		{Name: colPurpose, Type: field.TypeString},
		{Name: colInputTokens, Type: field.TypeInt, Default: 0},
		{Name: colOutputTokens, Type: field.TypeInt, Default: 0},
		{Name: colLatencyMs, Type: field.TypeInt64, Default: 0},
		{Name: colSuccess, Type: field.TypeBool},
		{Name: colErrorMessage, Type: field.TypeString, Default: ""},
		{Name: colRequestBody, Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: colResponseBody, Type: field.TypeString, Size: 2147483647, Default: ""},
	}

	generationEventsTable = &entschema.Table{
		Name:       generationTable,
		Columns:    generationColumns,
		PrimaryKey: []*entschema.Column{generationColumns[0]},
		Indexes: []*entschema.Index{
			{Name: "generation_events_purpose", Columns: []*entschema.Column{generationColumns[5]}},
			{Name: "generation_events_model", Columns: []*entschema.Column{generationColumns[4]}},
		},
	}
)

// migrate creates or upgrades the tables through ent's migration engine.
func migrate(ctx context.Context, db *sql.DB) error {
	m, err := entschema.NewMigrate(entsql.OpenDB(dialect.SQLite, db))
	if err != nil {
		return err
	}
	return m.Create(ctx, generationEventsTable)
}

// DefaultDBPath resolves the database file path in priority order:
// 1. ASKFRAME_DB environment variable
// 2. $XDG_DATA_HOME/askframe/askframe.db
// 3. ~/.local/share/askframe/askframe.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("ASKFRAME_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "askframe", "askframe.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
