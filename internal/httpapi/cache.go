package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/model"
)

// cacheKey identifies a cached model file: classify requests against the
// same path re-parse only when the file's size or mtime has changed.
type cacheKey struct {
	Path  string `json:"path"`
	Size  int64  `json:"size"`
	Mtime int64  `json:"mtime"`
}

func (k cacheKey) bytes() []byte {
	b, _ := json.Marshal(k)
	return b
}

// ModelCache is a read-through cache of parsed binary models keyed by
// (path, size, mtime), backed by badger so repeated classify requests
// against the same --model path don't re-parse the file.
type ModelCache struct {
	db *badger.DB

	// parsed holds the decoded *model.Model for keys badger has
	// confirmed are current; badger itself only ever stores the
	// serialized cacheKey as a marker of "this path was current as of
	// this size/mtime", since model.Model isn't trivially
	// JSON-serializable and re-parsing the already-open file handle is
	// cheap once the on-disk bytes are known not to have changed.
	parsed map[string]*model.Model
}

// OpenModelCache opens (or creates) a badger database at dir.
func OpenModelCache(dir string) (*ModelCache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("httpapi: opening model cache at %s: %w", dir, err)
	}
	return &ModelCache{db: db, parsed: make(map[string]*model.Model)}, nil
}

// Close releases the underlying badger database.
func (c *ModelCache) Close() error {
	return c.db.Close()
}

// Get returns the model at path, reusing a previously parsed copy if
// the file's size and mtime still match the cached marker.
func (c *ModelCache) Get(_ context.Context, path string, catalog *dataset.Catalog) (*model.Model, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("httpapi: stat %s: %w", path, err)
	}
	key := cacheKey{Path: path, Size: info.Size(), Mtime: info.ModTime().UnixNano()}

	var current bool
	err = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key.bytes())
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		current = item != nil
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("httpapi: reading cache: %w", err)
	}

	if current {
		if m, ok := c.parsed[path]; ok {
			return m, nil
		}
	}

	m, err := model.Load(path, catalog)
	if err != nil {
		return nil, fmt.Errorf("httpapi: loading model %s: %w", path, err)
	}

	c.parsed[path] = m
	if err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key.bytes(), []byte{1})
	}); err != nil {
		return nil, fmt.Errorf("httpapi: writing cache marker: %w", err)
	}
	return m, nil
}
