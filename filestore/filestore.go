// Package filestore keeps sitefilter values in a single JSON document on disk.
// The document is replaced atomically on every write, which makes it safe to keep in a
// folder synchronized between machines.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tfkr-ae/sitefilter/domain"
)

var _ domain.KeyValueStore = (*Store)(nil)

// ErrNotJSON is returned by Set when the value is not a JSON document.
var ErrNotJSON = errors.New("value is not valid JSON")

const fileMode os.FileMode = 0o600

// Store maps keys to JSON values inside one file.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a store for the document at path. The file is created on the first Set.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the document.
func (s *Store) Path() string { return s.path }

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, false, err
	}
	value, ok := doc[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Set stores value under key. value must be valid JSON since it is embedded in the document.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("setting %s: %w", key, ErrNotJSON)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc[key] = json.RawMessage(append([]byte(nil), value...))

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating directory for %s: %w", s.path, err)
	}
	if err := writeJSON(s.path, doc, fileMode); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) load() (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	if err := readJSON(s.path, &doc); err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}
	return doc, nil
}
