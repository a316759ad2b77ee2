package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/pokeapi"
)

// Config holds the pokedex settings.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds remote catalog settings.
type APIConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	UserAgent         string `mapstructure:"user_agent"`
	RequestsPerSecond int    `mapstructure:"requests_per_second"`
}

// CatalogConfig holds paging settings.
type CatalogConfig struct {
	Policy          catalog.Policy `mapstructure:"policy"`
	PageSize        int            `mapstructure:"page_size"`
	CollectionLimit int            `mapstructure:"collection_limit"`
	DetailWorkers   int            `mapstructure:"detail_workers"`
}

// LoggingConfig holds log file settings.
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

const (
	defaultConfigPath = "~/.config/pokedex/config.toml"
	defaultLogFile    = "~/.local/share/pokedex/pokedex.log"
	defaultLogLevel   = "info"

	// BaseURLEnv is the only environment override.
	BaseURLEnv = "POKEDEX_BASE_URL"
)

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"policy":  "catalog.policy",
	"limit":   "catalog.page_size",
	"workers": "catalog.detail_workers",
}

// Load reads the config file at path (default ~/.config/pokedex/config.toml),
// falling back to defaults when it is missing. POKEDEX_BASE_URL overrides
// api.base_url, and any flag in flags that the user set overrides its key.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.BindEnv("api.base_url", BaseURLEnv); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}
	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if _, err := os.Stat(resolved); err == nil {
		v.SetConfigFile(resolved)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{
		API: APIConfig{BaseURL: pokeapi.DefaultBaseURL},
		Catalog: CatalogConfig{
			Policy:          catalog.PolicyServer,
			PageSize:        catalog.DefaultLimit,
			CollectionLimit: catalog.DefaultCollectionLimit,
			DetailWorkers:   1,
		},
		Logging: LoggingConfig{File: defaultLogFile, Level: defaultLogLevel},
	}
	_ = cfg.normalize()
	return cfg
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", pokeapi.DefaultBaseURL)
	v.SetDefault("api.user_agent", "")
	v.SetDefault("api.requests_per_second", 0)

	v.SetDefault("catalog.policy", string(catalog.PolicyServer))
	v.SetDefault("catalog.page_size", catalog.DefaultLimit)
	v.SetDefault("catalog.collection_limit", catalog.DefaultCollectionLimit)
	v.SetDefault("catalog.detail_workers", 1)

	v.SetDefault("logging.file", defaultLogFile)
	v.SetDefault("logging.level", defaultLogLevel)
}

func (c *Config) normalize() error {
	c.API.BaseURL = strings.TrimSpace(c.API.BaseURL)
	if c.API.BaseURL == "" {
		c.API.BaseURL = pokeapi.DefaultBaseURL
	}
	c.API.UserAgent = strings.TrimSpace(c.API.UserAgent)
	c.API.RequestsPerSecond = max(c.API.RequestsPerSecond, 0)

	policy, err := catalog.ParsePolicy(string(c.Catalog.Policy))
	if err != nil {
		return fmt.Errorf("catalog.policy: %w", err)
	}
	c.Catalog.Policy = policy
	if c.Catalog.PageSize <= 0 {
		c.Catalog.PageSize = catalog.DefaultLimit
	}
	if c.Catalog.CollectionLimit <= 0 {
		c.Catalog.CollectionLimit = catalog.DefaultCollectionLimit
	}
	c.Catalog.DetailWorkers = max(c.Catalog.DetailWorkers, 1)

	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File == "" {
		c.Logging.File = defaultLogFile
	}
	c.Logging.File = mustExpand(c.Logging.File)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
