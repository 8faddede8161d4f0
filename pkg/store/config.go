package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config selects and tunes the storage backend.
type Config struct {
	Path      string
	Backend   string
	KeyPrefix string

	RetryEnabled bool
	RetryCount   int
	RetryDelay   time.Duration

	LogLevel string
	Log      zerolog.Logger
}

const (
	DefaultPath      = "~/.bnote"
	DefaultKeyPrefix = "bullet-note"
)

// Retrier builds the retry policy described by the config.
func (c Config) Retrier() Retrier {
	return Retrier{
		Enabled:  c.RetryEnabled,
		Attempts: c.RetryCount,
		Delay:    c.RetryDelay,
		Log:      c.Log,
	}
}

// BasePath returns the expanded storage path.
func (c Config) BasePath() string {
	return c.Path
}

// SetDefaults registers the config defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("path", DefaultPath)
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("key_prefix", DefaultKeyPrefix)
	v.SetDefault("retry.enabled", true)
	v.SetDefault("retry.count", 3)
	v.SetDefault("retry.delay", time.Second)
	v.SetDefault("log.level", "info")
}

// LoadConfig reads ".bnote.yaml" from $BNOTE_CONFIG_PATH or the working
// directory, overlaid with BNOTE_* environment variables. A nil v uses the
// global viper instance.
func LoadConfig(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	SetDefaults(v)
	v.SetConfigName(".bnote") // .yaml is implicit
	v.SetEnvPrefix("BNOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("BNOTE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("store: read config: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper decodes an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return Config{}, fmt.Errorf("store: expand path: %w", err)
	}
	cfg := Config{
		Path:         path,
		Backend:      strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		KeyPrefix:    v.GetString("key_prefix"),
		RetryEnabled: v.GetBool("retry.enabled"),
		RetryCount:   v.GetInt("retry.count"),
		RetryDelay:   v.GetDuration("retry.delay"),
		LogLevel:     v.GetString("log.level"),
		Log:          zerolog.Nop(),
	}
	if cfg.RetryCount < 1 {
		return Config{}, fmt.Errorf("store: retry.count must be at least 1, got %d", cfg.RetryCount)
	}
	if cfg.RetryDelay < 0 {
		return Config{}, fmt.Errorf("store: retry.delay must not be negative, got %s", cfg.RetryDelay)
	}
	return cfg, nil
}
