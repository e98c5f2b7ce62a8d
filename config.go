package sitefilter

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Store backends selectable with store.backend.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendFile   = "file"
)

type ChromePathConfig struct {
	OS   string `mapstructure:"os"`   // OS for the given path
	Path string `mapstructure:"path"` // Custom chrome path
}

type EngineConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Param   string `mapstructure:"param"`
}

type StoreConfig struct {
	Backend     string `mapstructure:"backend"`      // sqlite, redis or file
	Key         string `mapstructure:"key"`          // key the exclusion list is stored under
	Path        string `mapstructure:"path"`         // file backend document, relative to the config dir
	RedisAddr   string `mapstructure:"redis_addr"`   // host:port of the redis server
	RedisDB     int    `mapstructure:"redis_db"`     // redis logical database
	RedisPrefix string `mapstructure:"redis_prefix"` // prefix prepended to every redis key
}

type Config struct {
	viper        *viper.Viper
	ConfigDir    string             `mapstructure:"config_dir"`    // Current config dir
	DesktopOS    string             `mapstructure:"desktop_os"`    // Operating system identifier
	LogLevel     string             `mapstructure:"log_level"`     // zap level name
	DevToolsAddr string             `mapstructure:"devtools_addr"` // Chrome remote debugging address
	HTTPAddr     string             `mapstructure:"http_addr"`     // listen address of the serve command
	Engine       EngineConfig       `mapstructure:"engine"`
	Store        StoreConfig        `mapstructure:"store"`
	ChromeDirs   []ChromePathConfig `mapstructure:"chrome_dirs"`
}

// LoadConfig reads config.yaml from dir, writing one with the defaults when it does not exist yet.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetDefault("engine.base_url", DefaultEngine.BaseURL)
	v.SetDefault("engine.param", DefaultEngine.Param)
	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.key", DefaultStorageKey)
	v.SetDefault("store.path", "exclusions.json")
	v.SetDefault("store.redis_addr", "127.0.0.1:6379")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.redis_prefix", "sitefilter:")
	v.SetDefault("log_level", "info")
	v.SetDefault("devtools_addr", "127.0.0.1:9222")
	v.SetDefault("http_addr", "127.0.0.1:8787")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file : %w", err)
		}
		if err := v.SafeWriteConfig(); err != nil {
			return nil, fmt.Errorf("writing config file : %w", err)
		}
	}

	cfg := &Config{viper: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	cfg.ConfigDir = dir
	cfg.DesktopOS = runtime.GOOS

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchEngine returns the configured search endpoint.
func (cfg *Config) SearchEngine() Engine {
	return Engine{BaseURL: cfg.Engine.BaseURL, Param: cfg.Engine.Param}
}

// Validate checks the engine and the store backend.
func (cfg *Config) Validate() error {
	if err := cfg.SearchEngine().Validate(); err != nil {
		return fmt.Errorf("validating engine : %w", err)
	}
	switch cfg.Store.Backend {
	case BackendSQLite, BackendRedis, BackendFile:
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	return nil
}

// settableKeys are the scalar keys Set accepts. chrome_dirs has its own methods.
var settableKeys = []string{
	"engine.base_url", "engine.param",
	"store.backend", "store.key", "store.path",
	"store.redis_addr", "store.redis_db", "store.redis_prefix",
	"log_level", "devtools_addr", "http_addr",
}

// Set updates a single key and writes the config file.
// The file is left untouched when the resulting configuration does not validate.
func (cfg *Config) Set(key string, value any) error {
	if !slices.Contains(settableKeys, key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	previous := cfg.viper.Get(key)
	cfg.viper.Set(key, value)

	next := &Config{viper: cfg.viper}
	err := cfg.viper.Unmarshal(next)
	if err == nil {
		err = next.Validate()
	}
	if err != nil {
		cfg.viper.Set(key, previous)
		return fmt.Errorf("setting %s : %w", key, err)
	}
	return cfg.save()
}

func (cfg *Config) AddChromePath(path, os string) error {
	switch os {
	case "darwin", "linux", "windows":
		cfg.ChromeDirs = append(cfg.ChromeDirs, ChromePathConfig{OS: os, Path: path})
		cfg.viper.Set("chrome_dirs", cfg.ChromeDirs)
		return cfg.save()
	default:
		return errors.New("invalid os string")
	}
}

func (cfg *Config) DeleteChromePath(path, os string) error {
	chromePath := ChromePathConfig{OS: os, Path: path}
	cfg.ChromeDirs = slices.DeleteFunc(cfg.ChromeDirs, func(c ChromePathConfig) bool {
		return c.OS == chromePath.OS && c.Path == chromePath.Path
	})
	cfg.viper.Set("chrome_dirs", cfg.ChromeDirs)
	return cfg.save()
}

// Watch calls onChange with a freshly decoded config every time the file is written.
// Decoding or validation failures are passed to onError and the previous config stays in effect.
func (cfg *Config) Watch(onChange func(*Config), onError func(error)) {
	cfg.viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next := &Config{viper: cfg.viper, ConfigDir: cfg.ConfigDir, DesktopOS: cfg.DesktopOS}
		if err := cfg.viper.Unmarshal(next); err != nil {
			onError(fmt.Errorf("unmarshalling config to struct : %w", err))
			return
		}
		if err := next.Validate(); err != nil {
			onError(err)
			return
		}
		onChange(next)
	})
	cfg.viper.WatchConfig()
}

func (cfg *Config) save() error {
	if err := cfg.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	if err := cfg.viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	return nil
}

// ensureDir creates dir if it does not exist yet.
func ensureDir(dir string) (created bool, err error) {
	_, err = os.ReadDir(dir)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking if directory exists %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return false, fmt.Errorf("creating config dir %s: %w", dir, err)
	}
	return true, nil
}
