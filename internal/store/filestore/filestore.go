package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bvox-ledger-go/internal/store"

	"go.uber.org/zap"
)

// Compile-time check: *Store must satisfy store.ObjectStore.
var _ store.ObjectStore = (*Store)(nil)

// Store persists each collection as one pretty-printed JSON document in a
// directory, e.g. <dir>/topup_records.json. Writes go through a temp file
// and rename so a crash mid-write never leaves a truncated document.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: unable to create data directory %s: %v", store.ErrStorage, dir, err)
	}
	zap.L().Info("Using file object store", zap.String("dir", dir))
	return &Store{dir: dir}, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *Store) Load(_ context.Context, collection string, out any) error {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			// Absent collection reads as empty.
			return nil
		}
		return fmt.Errorf("%w: unable to read collection %s: %v", store.ErrStorage, collection, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: corrupt collection %s: %v", store.ErrStorage, collection, err)
	}
	return nil
}

func (s *Store) Save(_ context.Context, collection string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: unable to encode collection %s: %v", store.ErrStorage, collection, err)
	}

	tmp, err := os.CreateTemp(s.dir, collection+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: unable to create temp file for %s: %v", store.ErrStorage, collection, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: unable to write collection %s: %v", store.ErrStorage, collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: unable to close temp file for %s: %v", store.ErrStorage, collection, err)
	}
	if err := os.Rename(tmpName, s.path(collection)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: unable to replace collection %s: %v", store.ErrStorage, collection, err)
	}

	zap.L().Debug("Saved collection document",
		zap.String("collection", collection),
		zap.Int("bytes", len(data)))
	return nil
}

func (s *Store) Close() error {
	return nil
}
