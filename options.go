package sitefilter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/tfkr-ae/sitefilter/browser"
	"github.com/tfkr-ae/sitefilter/core"
	"github.com/tfkr-ae/sitefilter/db"
	"github.com/tfkr-ae/sitefilter/domain"
	"github.com/tfkr-ae/sitefilter/filestore"
	"github.com/tfkr-ae/sitefilter/redisstore"
	"go.uber.org/zap"
)

const databaseFile = "sitefilter.db"

// WithOptions applies a series of configuration functions to the filter.
// Each option function can modify the filter and return an error if it fails.
//
// Parameters:
//   - options: Variadic list of configuration functions
//
// Returns:
//   - error: First error encountered from any option function
func (filter *Filter) WithOptions(options ...func(*Filter) error) error {
	for _, option := range options {
		err := option(filter)
		if err != nil {
			return fmt.Errorf("applying option on sitefilter : %w", err)
		}
	}
	return nil
}

// WithConfigDir configures the filter to use the specified configuration directory.
// It creates the directory if it doesn't exist, loads config.yaml (writing the defaults on first
// run) and applies the configured search engine and storage key.
//
// Parameters:
//   - appConfigDir: Path to the configuration directory
//
// Returns:
//   - func(*Filter) error: Configuration function that sets up the config directory
func WithConfigDir(appConfigDir string) func(*Filter) error {
	return func(filter *Filter) error {
		created, err := ensureDir(appConfigDir)
		if err != nil {
			return err
		}
		if created {
			filter.Logger.Info("created config dir", zap.String("dir", appConfigDir))
		}
		filter.ConfigDir = appConfigDir

		cfg, err := LoadConfig(appConfigDir)
		if err != nil {
			return err
		}
		filter.Config = cfg
		filter.engine = cfg.SearchEngine()
		if cfg.Store.Key != "" {
			filter.StorageKey = cfg.Store.Key
		}
		return nil
	}
}

// WithLogger sets the zap logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) func(*Filter) error {
	return func(filter *Filter) error {
		if logger == nil {
			logger = zap.NewNop()
		}
		filter.Logger = logger
		return nil
	}
}

// WithLogFile logs to the rotated file under the config directory at the configured level.
// It must come after WithConfigDir.
func WithLogFile() func(*Filter) error {
	return func(filter *Filter) error {
		if filter.Config == nil {
			return errors.New("log file needs a config dir")
		}
		logger, file, err := core.NewLogger(filter.ConfigDir, filter.Config.LogLevel)
		if err != nil {
			return fmt.Errorf("creating logger : %w", err)
		}
		filter.Logger = logger
		filter.addCloser(logCloser{logger: logger, file: file})
		return nil
	}
}

// WithStore sets the persistence port for the exclusion list.
func WithStore(store domain.KeyValueStore) func(*Filter) error {
	return func(filter *Filter) error {
		if store == nil {
			return errors.New("store is nil")
		}
		filter.Store = store
		return nil
	}
}

// WithStorageKey overrides the key the exclusion list is stored under.
func WithStorageKey(key string) func(*Filter) error {
	return func(filter *Filter) error {
		if key == "" {
			return errors.New("storage key is empty")
		}
		filter.StorageKey = key
		return nil
	}
}

// WithLogRepository stores activity log entries in repo.
func WithLogRepository(repo domain.LogRepository) func(*Filter) error {
	return func(filter *Filter) error {
		filter.Logs = repo
		return nil
	}
}

// WithDatabase opens (and migrates) the SQLite database at path and uses it for the activity
// log. When no store has been set yet it also becomes the exclusion store.
func WithDatabase(path string) func(*Filter) error {
	return func(filter *Filter) error {
		repo, err := openDatabase(path)
		if err != nil {
			return err
		}
		filter.addCloser(repo)
		filter.Logs = repo
		if filter.Store == nil {
			filter.Store = repo
		}
		return nil
	}
}

// WithConfiguredStore selects the exclusion store from store.backend.
// It must come after WithConfigDir.
func WithConfiguredStore() func(*Filter) error {
	return func(filter *Filter) error {
		if filter.Config == nil {
			return errors.New("configured store needs a config dir")
		}
		storeConfig := filter.Config.Store

		switch storeConfig.Backend {
		case BackendSQLite:
			if repo, ok := filter.Logs.(*db.Repository); ok {
				filter.Store = repo
				return nil
			}
			repo, err := openDatabase(filepath.Join(filter.ConfigDir, databaseFile))
			if err != nil {
				return err
			}
			filter.addCloser(repo)
			filter.Store = repo
			if filter.Logs == nil {
				filter.Logs = repo
			}
		case BackendRedis:
			store, err := redisstore.Dial(context.Background(), storeConfig.RedisAddr, storeConfig.RedisDB, storeConfig.RedisPrefix)
			if err != nil {
				return fmt.Errorf("connecting store : %w", err)
			}
			filter.addCloser(store)
			filter.Store = store
		case BackendFile:
			path := storeConfig.Path
			if !filepath.IsAbs(path) {
				path = filepath.Join(filter.ConfigDir, path)
			}
			filter.Store = filestore.New(path)
		default:
			return fmt.Errorf("unknown store backend %q", storeConfig.Backend)
		}
		filter.Logger.Debug("store selected", zap.String("backend", storeConfig.Backend))
		return nil
	}
}

// WithEngine sets the search engine used to compose URLs.
func WithEngine(engine Engine) func(*Filter) error {
	return func(filter *Filter) error {
		if err := engine.Validate(); err != nil {
			return err
		}
		filter.engine = engine
		return nil
	}
}

// WithBrowser uses b both to resolve the current tab and to open searches.
func WithBrowser(b domain.Browser) func(*Filter) error {
	return func(filter *Filter) error {
		filter.Resolver = b
		filter.Opener = b
		return nil
	}
}

// WithResolver sets the active tab resolver.
func WithResolver(resolver domain.TabResolver) func(*Filter) error {
	return func(filter *Filter) error {
		filter.Resolver = resolver
		return nil
	}
}

// WithOpener sets the opener for composed search URLs.
func WithOpener(opener domain.Opener) func(*Filter) error {
	return func(filter *Filter) error {
		filter.Opener = opener
		return nil
	}
}

// WithDevTools connects the browser collaborators to Chrome's remote debugging endpoint at
// addr (devtools_addr from the configuration when empty). Searches fall back to executing
// Chrome when the endpoint is unreachable.
func WithDevTools(addr string) func(*Filter) error {
	return func(filter *Filter) error {
		var customPaths []ChromePathConfig
		if filter.Config != nil {
			if addr == "" {
				addr = filter.Config.DevToolsAddr
			}
			customPaths = filter.Config.ChromeDirs
		}
		if addr == "" {
			return errors.New("devtools address is empty")
		}

		devtools := browser.NewDevTools(addr)
		filter.Resolver = devtools
		filter.Opener = browser.Fallback{devtools, NewChromeOpener(customPaths)}
		return nil
	}
}

// WithLogHandler sets the function called with every activity log entry.
func WithLogHandler(handler func(log domain.Log) error) func(*Filter) error {
	return func(filter *Filter) error {
		if filter.OnLog != nil {
			return errors.New("filter already has a log handler defined")
		}
		filter.OnLog = handler
		return nil
	}
}

func openDatabase(path string) (*db.Repository, error) {
	conn, err := db.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s : %w", path, err)
	}
	return db.NewRepo(conn), nil
}

// logCloser flushes the logger and releases its file when the filter is closed.
type logCloser struct {
	logger *zap.Logger
	file   io.Closer
}

func (c logCloser) Close() error {
	_ = c.logger.Sync()
	return c.file.Close()
}
