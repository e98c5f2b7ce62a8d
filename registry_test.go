package sitefilter

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tfkr-ae/sitefilter/domain"
)

func setupRegistry(t *testing.T, stored string) (*Registry, *memStore) {
	t.Helper()

	store := newMemStore()
	if stored != "" {
		store.put(DefaultStorageKey, stored)
	}
	return NewRegistry(store, ""), store
}

func TestRegistry_Load(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   domain.ExclusionList
	}{
		{name: "should return an empty list when nothing is stored", want: domain.ExclusionList{}},
		{name: "should treat json null as empty", stored: "null", want: domain.ExclusionList{}},
		{name: "should keep stored order", stored: `["b.com","a.com"]`, want: domain.ExclusionList{"b.com", "a.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, _ := setupRegistry(t, tt.stored)

			got, err := registry.Load(context.Background())
			if err != nil {
				t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
			}
			if got == nil || !reflect.DeepEqual(tt.want, got) {
				t.Fatalf("\nwanted:\n%v\ngot:\n%v", tt.want, got)
			}
			if !reflect.DeepEqual(tt.want, registry.Snapshot()) {
				t.Fatalf("\nwanted:\n%v\ngot:\n%v", tt.want, registry.Snapshot())
			}
		})
	}

	t.Run("should reject values that are not a list of strings", func(t *testing.T) {
		for _, stored := range []string{`{"a":1}`, `"a.com"`, `[1,2]`, `["a.com",null]`, `[`} {
			registry, store := setupRegistry(t, stored)

			_, err := registry.Load(context.Background())
			if !errors.Is(err, ErrCorruptState) {
				t.Fatalf("\nwanted:\n%v\ngot:\n%v", ErrCorruptState, err)
			}
			if _, sets := store.counts(); sets != 0 {
				t.Fatalf("\nwanted:\nno writes\ngot:\n%d writes", sets)
			}
		}
	})

	t.Run("should wrap store failures", func(t *testing.T) {
		registry, store := setupRegistry(t, "")
		cause := errors.New("connection reset")
		store.getErr = cause

		_, err := registry.Load(context.Background())
		if !errors.Is(err, ErrStorage) || !errors.Is(err, cause) {
			t.Fatalf("\nwanted:\n%v wrapping %v\ngot:\n%v", ErrStorage, cause, err)
		}
		var storageErr *StorageError
		if !errors.As(err, &storageErr) || storageErr.Op != "get" || storageErr.Key != DefaultStorageKey {
			t.Fatalf("\nwanted:\n*StorageError{Op: get}\ngot:\n%#v", err)
		}
	})
}

func TestRegistry_Add(t *testing.T) {
	t.Run("should append and persist the whole list", func(t *testing.T) {
		registry, store := setupRegistry(t, `["a.com"]`)

		got, err := registry.Add(context.Background(), "b.com")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		want := domain.ExclusionList{"a.com", "b.com"}
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}
		if raw := store.raw(DefaultStorageKey); raw != `["a.com","b.com"]` {
			t.Fatalf("\nwanted:\n%s\ngot:\n%s", `["a.com","b.com"]`, raw)
		}
	})

	t.Run("should trim the domain", func(t *testing.T) {
		registry, _ := setupRegistry(t, "")

		got, err := registry.Add(context.Background(), "  x.com \n")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if !reflect.DeepEqual(domain.ExclusionList{"x.com"}, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", []string{"x.com"}, got)
		}
	})

	t.Run("should reject empty input without touching the store", func(t *testing.T) {
		registry, store := setupRegistry(t, "")

		_, err := registry.Add(context.Background(), "   ")
		if !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", ErrEmptyInput, err)
		}
		if gets, sets := store.counts(); gets != 0 || sets != 0 {
			t.Fatalf("\nwanted:\nno store access\ngot:\n%d gets %d sets", gets, sets)
		}
	})

	t.Run("should reject duplicates without writing", func(t *testing.T) {
		registry, store := setupRegistry(t, `["a.com"]`)

		_, err := registry.Add(context.Background(), "a.com")
		if !errors.Is(err, ErrDuplicateEntry) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", ErrDuplicateEntry, err)
		}
		if _, sets := store.counts(); sets != 0 {
			t.Fatalf("\nwanted:\nno writes\ngot:\n%d writes", sets)
		}
		if raw := store.raw(DefaultStorageKey); raw != `["a.com"]` {
			t.Fatalf("\nwanted:\n%s\ngot:\n%s", `["a.com"]`, raw)
		}
	})

	t.Run("should compare case-sensitively", func(t *testing.T) {
		registry, _ := setupRegistry(t, `["a.com"]`)

		got, err := registry.Add(context.Background(), "A.com")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if !reflect.DeepEqual(domain.ExclusionList{"a.com", "A.com"}, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", []string{"a.com", "A.com"}, got)
		}
	})

	t.Run("should pick up entries written by someone else", func(t *testing.T) {
		registry, store := setupRegistry(t, "")
		if _, err := registry.Load(context.Background()); err != nil {
			t.Fatalf("loading: %v", err)
		}
		store.put(DefaultStorageKey, `["other.com"]`)

		got, err := registry.Add(context.Background(), "mine.com")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		want := domain.ExclusionList{"other.com", "mine.com"}
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}
	})

	t.Run("should leave the mirror unchanged when the write fails", func(t *testing.T) {
		registry, store := setupRegistry(t, `["a.com"]`)
		store.setErr = errors.New("quota exceeded")

		_, err := registry.Add(context.Background(), "b.com")
		var storageErr *StorageError
		if !errors.As(err, &storageErr) || storageErr.Op != "set" {
			t.Fatalf("\nwanted:\n*StorageError{Op: set}\ngot:\n%v", err)
		}
		if !reflect.DeepEqual(domain.ExclusionList{"a.com"}, registry.Snapshot()) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", []string{"a.com"}, registry.Snapshot())
		}
	})

	t.Run("should not write over a corrupt value", func(t *testing.T) {
		registry, store := setupRegistry(t, `{"not":"a list"}`)

		_, err := registry.Add(context.Background(), "a.com")
		if !errors.Is(err, ErrCorruptState) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", ErrCorruptState, err)
		}
		if raw := store.raw(DefaultStorageKey); raw != `{"not":"a list"}` {
			t.Fatalf("\nwanted:\nunchanged value\ngot:\n%s", raw)
		}
	})
}

func TestRegistry_Remove(t *testing.T) {
	t.Run("should drop the entry and persist", func(t *testing.T) {
		registry, store := setupRegistry(t, `["a.com","b.com","c.com"]`)

		got, err := registry.Remove(context.Background(), "b.com")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		want := domain.ExclusionList{"a.com", "c.com"}
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}
		if raw := store.raw(DefaultStorageKey); raw != `["a.com","c.com"]` {
			t.Fatalf("\nwanted:\n%s\ngot:\n%s", `["a.com","c.com"]`, raw)
		}
	})

	t.Run("should persist an identical list when the entry is missing", func(t *testing.T) {
		registry, store := setupRegistry(t, `["a.com","b.com"]`)
		before := store.raw(DefaultStorageKey)

		got, err := registry.Remove(context.Background(), "zzz.com")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if !reflect.DeepEqual(domain.ExclusionList{"a.com", "b.com"}, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", []string{"a.com", "b.com"}, got)
		}
		if _, sets := store.counts(); sets != 1 {
			t.Fatalf("\nwanted:\n1 write\ngot:\n%d writes", sets)
		}
		if after := store.raw(DefaultStorageKey); after != before {
			t.Fatalf("\nwanted:\n%s\ngot:\n%s", before, after)
		}
	})

	t.Run("should drop every equal entry", func(t *testing.T) {
		registry, _ := setupRegistry(t, `["a.com","b.com","a.com"]`)

		got, err := registry.Remove(context.Background(), "a.com")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if !reflect.DeepEqual(domain.ExclusionList{"b.com"}, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", []string{"b.com"}, got)
		}
	})

	t.Run("should store an empty array rather than null", func(t *testing.T) {
		registry, store := setupRegistry(t, `["a.com"]`)

		if _, err := registry.Remove(context.Background(), "a.com"); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if raw := store.raw(DefaultStorageKey); raw != `[]` {
			t.Fatalf("\nwanted:\n[]\ngot:\n%s", raw)
		}
	})
}

func TestRegistry_RoundTrip(t *testing.T) {
	t.Run("should restore the original list after add then remove", func(t *testing.T) {
		registry, _ := setupRegistry(t, `["a.com"]`)
		ctx := context.Background()

		if _, err := registry.Add(ctx, "new.com"); err != nil {
			t.Fatalf("adding: %v", err)
		}
		got, err := registry.Remove(ctx, "new.com")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if !reflect.DeepEqual(domain.ExclusionList{"a.com"}, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", []string{"a.com"}, got)
		}
	})

	t.Run("should run the add duplicate remove scenario", func(t *testing.T) {
		registry, store := setupRegistry(t, "")
		ctx := context.Background()

		got, err := registry.Add(ctx, "x.com")
		if err != nil || !reflect.DeepEqual(domain.ExclusionList{"x.com"}, got) {
			t.Fatalf("\nwanted:\n[x.com]\ngot:\n%v %v", got, err)
		}

		if _, err := registry.Add(ctx, "x.com"); !errors.Is(err, ErrDuplicateEntry) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", ErrDuplicateEntry, err)
		}

		got, err = registry.Remove(ctx, "y.com")
		if err != nil || !reflect.DeepEqual(domain.ExclusionList{"x.com"}, got) {
			t.Fatalf("\nwanted:\n[x.com]\ngot:\n%v %v", got, err)
		}

		got, err = registry.Remove(ctx, "x.com")
		if err != nil || !reflect.DeepEqual(domain.ExclusionList{}, got) {
			t.Fatalf("\nwanted:\n[]\ngot:\n%v %v", got, err)
		}
		if raw := store.raw(DefaultStorageKey); raw != `[]` {
			t.Fatalf("\nwanted:\n[]\ngot:\n%s", raw)
		}
	})

	t.Run("should hand out copies", func(t *testing.T) {
		registry, _ := setupRegistry(t, `["a.com"]`)

		got, err := registry.List(context.Background())
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		got[0] = "mutated.com"
		if registry.Snapshot()[0] != "a.com" {
			t.Fatalf("\nwanted:\na.com\ngot:\n%v", registry.Snapshot()[0])
		}
	})
}

func TestNewRegistry(t *testing.T) {
	t.Run("should use a custom key", func(t *testing.T) {
		store := newMemStore()
		registry := NewRegistry(store, "work")

		if _, err := registry.Add(context.Background(), "a.com"); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if store.raw("work") != `["a.com"]` || store.raw(DefaultStorageKey) != "" {
			t.Fatalf("\nwanted:\nvalue under work\ngot:\n%q %q", store.raw("work"), store.raw(DefaultStorageKey))
		}
		if registry.Key() != "work" {
			t.Fatalf("\nwanted:\nwork\ngot:\n%v", registry.Key())
		}
	})
}
