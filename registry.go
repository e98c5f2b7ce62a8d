package sitefilter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/tfkr-ae/sitefilter/domain"
)

// DefaultStorageKey is the key the exclusion list is stored under.
const DefaultStorageKey = "excludedSites"

// Registry owns the exclusion list of a session.
// Every operation re-reads the store before acting, so changes made by another process
// (or another device sharing the store) are picked up. Read-modify-write is not atomic
// across processes; the last writer wins.
type Registry struct {
	store domain.KeyValueStore
	key   string

	mu         sync.RWMutex
	exclusions domain.ExclusionList // mirror of the last value read or written
}

// NewRegistry binds a registry to store under key. An empty key selects DefaultStorageKey.
func NewRegistry(store domain.KeyValueStore, key string) *Registry {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Registry{
		store:      store,
		key:        key,
		exclusions: domain.ExclusionList{},
	}
}

// Key returns the storage key the registry reads and writes.
func (r *Registry) Key() string { return r.key }

// Load reads the persisted list and replaces the in-memory one.
// A missing value is an empty list.
func (r *Registry) Load(ctx context.Context) (domain.ExclusionList, error) {
	list, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	r.remember(list)
	return list.Clone(), nil
}

// List returns the persisted list. It is Load under the name callers expect for display.
func (r *Registry) List(ctx context.Context) (domain.ExclusionList, error) {
	return r.Load(ctx)
}

// Snapshot returns the last list read or written without touching the store.
func (r *Registry) Snapshot() domain.ExclusionList {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exclusions.Clone()
}

// Add appends d to the list and persists the result.
// d is trimmed but otherwise stored as given; membership is an exact match.
func (r *Registry) Add(ctx context.Context, d string) (domain.ExclusionList, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, ErrEmptyInput
	}

	list, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	r.remember(list)

	if list.Contains(d) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, d)
	}

	next := append(list.Clone(), d)
	if err := r.write(ctx, next); err != nil {
		return nil, err
	}
	r.remember(next)
	return next.Clone(), nil
}

// Remove drops every entry equal to d and persists the result.
// Removing a domain that is not listed still writes the unchanged list back.
func (r *Registry) Remove(ctx context.Context, d string) (domain.ExclusionList, error) {
	list, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	r.remember(list)

	next := make(domain.ExclusionList, 0, len(list))
	for _, entry := range list {
		if entry != d {
			next = append(next, entry)
		}
	}

	if err := r.write(ctx, next); err != nil {
		return nil, err
	}
	r.remember(next)
	return next.Clone(), nil
}

func (r *Registry) remember(list domain.ExclusionList) {
	r.mu.Lock()
	r.exclusions = list.Clone()
	r.mu.Unlock()
}

func (r *Registry) read(ctx context.Context) (domain.ExclusionList, error) {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, &StorageError{Op: "get", Key: r.key, Err: err}
	}
	if !ok {
		return domain.ExclusionList{}, nil
	}

	list, err := decodeExclusions(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: key %q: %v", ErrCorruptState, r.key, err)
	}
	return list, nil
}

func (r *Registry) write(ctx context.Context, list domain.ExclusionList) error {
	raw, err := encodeExclusions(list)
	if err != nil {
		return fmt.Errorf("encoding exclusions: %w", err)
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		return &StorageError{Op: "set", Key: r.key, Err: err}
	}
	return nil
}

// decodeExclusions accepts a JSON array of strings. An empty value or JSON null
// decodes to an empty list.
func decodeExclusions(raw []byte) (domain.ExclusionList, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return domain.ExclusionList{}, nil
	}

	var items []any
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("expected a list of strings: %w", err)
	}

	list := make(domain.ExclusionList, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("element %d is %T, not a string", i, item)
		}
		list = append(list, s)
	}
	return list, nil
}

func encodeExclusions(list domain.ExclusionList) ([]byte, error) {
	if list == nil {
		list = domain.ExclusionList{}
	}
	return json.Marshal([]string(list))
}
