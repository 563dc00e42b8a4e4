package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"bvox-ledger-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Compile-time check: *Store must satisfy store.ObjectStore.
var _ store.ObjectStore = (*Store)(nil)

const (
	querySelectDocument = `
		SELECT document
		FROM collections
		WHERE name = ?`

	queryUpsertDocument = `
		INSERT INTO collections (name, document, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			document = excluded.document,
			updated_at = CURRENT_TIMESTAMP`
)

// Store keeps each collection as a single JSON document row in SQLite.
// One collection, one row; a Save is one UPDATE, which SQLite applies
// atomically.
type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}

	zap.L().Info("Opening SQLite object store", zap.String("file", path))
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open database: %v", store.ErrStorage, err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: unable to initialize schema: %v", store.ErrStorage, err)
	}

	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Load(ctx context.Context, collection string, out any) error {
	var document string
	err := s.db.QueryRowContext(ctx, querySelectDocument, collection).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: unable to read collection %s: %v", store.ErrStorage, collection, err)
	}
	if err := json.Unmarshal([]byte(document), out); err != nil {
		return fmt.Errorf("%w: corrupt collection %s: %v", store.ErrStorage, collection, err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: unable to encode collection %s: %v", store.ErrStorage, collection, err)
	}
	if _, err := s.db.ExecContext(ctx, queryUpsertDocument, collection, string(data)); err != nil {
		return fmt.Errorf("%w: unable to write collection %s: %v", store.ErrStorage, collection, err)
	}
	return nil
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
		return err
	}
	return nil
}
