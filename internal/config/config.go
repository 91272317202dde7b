package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DocsConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	CratesIOURL       string        `mapstructure:"crates_io_url"`
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Concurrency       int           `mapstructure:"concurrency"`
}

type LogConfig struct {
	Level slog.Level `mapstructure:"level"`
}

type Config struct {
	Docs DocsConfig `mapstructure:"docs"`
	Log  LogConfig  `mapstructure:"log"`
}

// cacheBase returns the base cache directory for rsdoc.
// Checks XDG_CACHE_HOME, then ~/.cache, then /tmp/rsdoc as fallback.
func cacheBase() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "rsdoc")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "rsdoc")
	}
	return filepath.Join(os.TempDir(), "rsdoc")
}

// LogPath returns the path to the MCP server's log file.
func LogPath() string {
	return filepath.Join(cacheBase(), "server.log")
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	v.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "rsdoc"))
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "rsdoc"))
	}

	v.SetDefault("docs.base_url", "https://docs.rs")
	v.SetDefault("docs.crates_io_url", "https://crates.io")
	v.SetDefault("docs.user_agent", "rsdoc/0.1.0")
	v.SetDefault("docs.timeout", "30s")
	v.SetDefault("docs.requests_per_second", 0)
	v.SetDefault("docs.concurrency", 4)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("RSDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}

func stringToLevelHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(slog.Level(0)) || f.Kind() != reflect.String {
			return data, nil
		}
		var level slog.Level
		if err := level.UnmarshalText([]byte(data.(string))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", data, err)
		}
		return level, nil
	}
}

func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToLevelHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Docs.Concurrency <= 0 {
		config.Docs.Concurrency = 1
	}
	return &config, nil
}
