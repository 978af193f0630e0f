package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MainProgressKey is the row key for the single local player.
const MainProgressKey = "main_user"

// ResolveDBPath returns the database location: the KEYQUEST_DB environment
// override, or ~/.keyquest.db.
func ResolveDBPath() (string, error) {
	if path := os.Getenv("KEYQUEST_DB"); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".keyquest.db"), nil
}

// SQLiteStore keeps the progress snapshot as a JSON document in a single
// keyed row. The snapshot shape (not a relational schema) is what the
// hydration contract is defined over, so the database stores it verbatim.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (and creates if missing) the SQLite database at path and
// ensures the schema exists.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS progress (
		key TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (UserProgress, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM progress WHERE key = ?`, MainProgressKey)

	var data string
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return DefaultProgress(), nil
		}
		return DefaultProgress(), fmt.Errorf("progress load: %w", err)
	}
	return Hydrate([]byte(data)), nil
}

func (s *SQLiteStore) Save(ctx context.Context, p UserProgress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("progress encode: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO progress (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, MainProgressKey, string(data))
	if err != nil {
		return fmt.Errorf("progress save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
