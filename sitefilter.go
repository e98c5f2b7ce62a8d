// Package sitefilter keeps a persistent list of excluded web domains and turns a keyword into
// a search URL that suppresses results from those domains.
//
// The core functionality includes:
//   - Normalizing a browser URL into an exclusion domain
//   - A registry that persists the exclusion list through a pluggable key-value store
//   - Composing "keyword -site:a -site:b" queries against a configurable search engine
//   - Opening the composed URL through a browser collaborator
//   - An activity log of every change and search
package sitefilter

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/tfkr-ae/sitefilter/domain"
	"go.uber.org/zap"
)

// Filter is a session over one exclusion list. It wires the registry to the store, the
// composer to the configured engine, and the optional browser collaborators.
// A Filter is safe for concurrent use.
type Filter struct {
	ConfigDir  string               // The configuration directory
	Config     *Config              // The loaded configuration, nil when WithConfigDir is not used
	Store      domain.KeyValueStore // Persistence port for the exclusion list
	Registry   *Registry            // Registry bound to Store, built by New
	Logs       domain.LogRepository // Activity log storage, optional
	Resolver   domain.TabResolver   // Resolves the active tab for CurrentDomain, optional
	Opener     domain.Opener        // Opens composed search URLs, optional
	Logger     *zap.Logger
	OnLog      func(log domain.Log) error // Called with every activity log entry
	StorageKey string                     // Key the exclusion list is stored under

	mu      sync.RWMutex
	engine  Engine
	closers []io.Closer
}

// New creates a Filter and applies options in order.
// A store is required, either given directly with WithStore or selected from the configuration
// with WithConfiguredStore.
func New(options ...func(*Filter) error) (*Filter, error) {
	filter := &Filter{
		Logger:     zap.NewNop(),
		StorageKey: DefaultStorageKey,
		engine:     DefaultEngine,
	}

	if err := filter.WithOptions(options...); err != nil {
		filter.Close()
		return nil, err
	}

	if filter.Store == nil {
		filter.Close()
		return nil, errors.New("no store configured")
	}
	filter.Registry = NewRegistry(filter.Store, filter.StorageKey)
	return filter, nil
}

// Engine returns the search engine in use.
func (filter *Filter) Engine() Engine {
	filter.mu.RLock()
	defer filter.mu.RUnlock()
	return filter.engine
}

// SetEngine swaps the search engine, e.g. after the configuration file changed.
func (filter *Filter) SetEngine(engine Engine) error {
	if err := engine.Validate(); err != nil {
		return err
	}
	filter.mu.Lock()
	filter.engine = engine
	filter.mu.Unlock()
	return nil
}

// Close releases the stores opened by the options. It is safe to call more than once.
func (filter *Filter) Close() error {
	filter.mu.Lock()
	closers := filter.closers
	filter.closers = nil
	filter.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("closing filter : %w", errors.Join(errs...))
	}
	return nil
}

func (filter *Filter) addCloser(c io.Closer) {
	filter.mu.Lock()
	filter.closers = append(filter.closers, c)
	filter.mu.Unlock()
}
