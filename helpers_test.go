package sitefilter

import (
	"context"
	"sync"

	"github.com/tfkr-ae/sitefilter/domain"
)

// memStore is an in-memory domain.KeyValueStore that can be told to fail.
type memStore struct {
	mu      sync.Mutex
	values  map[string][]byte
	getErr  error
	setErr  error
	gets    int
	sets    int
	lastSet []byte
}

func newMemStore() *memStore {
	return &memStore{values: map[string][]byte{}}
}

func (m *memStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *memStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = append([]byte(nil), value...)
	m.lastSet = append([]byte(nil), value...)
	return nil
}

func (m *memStore) raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.values[key])
}

func (m *memStore) put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = []byte(value)
}

func (m *memStore) counts() (gets, sets int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets, m.sets
}

// fakeBrowser records opened URLs and reports a fixed current URL.
type fakeBrowser struct {
	mu         sync.Mutex
	current    string
	resolveErr error
	openErr    error
	opened     []string
}

var _ domain.Browser = (*fakeBrowser)(nil)

func (b *fakeBrowser) CurrentURL(ctx context.Context) (string, bool, error) {
	if b.resolveErr != nil {
		return "", false, b.resolveErr
	}
	return b.current, b.current != "", nil
}

func (b *fakeBrowser) Open(ctx context.Context, target string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opened = append(b.opened, target)
	return b.openErr
}

// memLogs is an in-memory domain.LogRepository.
type memLogs struct {
	mu   sync.Mutex
	logs []*domain.Log
}

func (m *memLogs) InsertLog(log *domain.Log) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *memLogs) GetLogs() ([]*domain.Log, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Log(nil), m.logs...), nil
}
