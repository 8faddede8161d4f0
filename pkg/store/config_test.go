package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BNOTE_CONFIG_PATH", t.TempDir())
	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)

	home, err := homedir.Expand(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, home, cfg.Path)
	assert.Equal(t, BackendDiskv, cfg.Backend)
	assert.Equal(t, DefaultKeyPrefix, cfg.KeyPrefix)
	assert.True(t, cfg.RetryEnabled)
	assert.Equal(t, 3, cfg.RetryCount)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	data := []byte("path: " + filepath.Join(dir, "journal") + "\nbackend: sqlite\nretry:\n  count: 5\n  delay: 10ms\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".bnote.yaml"), data, 0o644))
	t.Setenv("BNOTE_CONFIG_PATH", dir)
	t.Setenv("BNOTE_KEY_PREFIX", "work")

	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "journal"), cfg.Path)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "work", cfg.KeyPrefix)
	assert.Equal(t, 5, cfg.RetryCount)
	assert.Equal(t, 10*time.Millisecond, cfg.RetryDelay)

	r := cfg.Retrier()
	assert.Equal(t, 5, r.Attempts)
	assert.True(t, r.Enabled)
}

func TestFromViperRejectsBadRetry(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("retry.count", 0)
	_, err := FromViper(v)
	assert.Error(t, err)
}
