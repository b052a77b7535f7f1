package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Retry.BaseBackoff)
	assert.Equal(t, 60*time.Second, cfg.SEC.Timeout)
	assert.NotEmpty(t, cfg.SEC.UserAgent)
	assert.Contains(t, cfg.SEC.UserAgent, "contact:")
	assert.Equal(t, 0, cfg.Run.Limit)
	assert.False(t, cfg.Run.Overwrite)

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Run("ZeroRate", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RateLimit.RequestsPerSecond = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("NegativeRate", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RateLimit.RequestsPerSecond = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("ZeroAttempts", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Retry.MaxAttempts = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("MissingUserAgent", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SEC.UserAgent = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("MissingStateFile", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Paths.StateFile = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Logging.Level = "shout"
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
sec:
  user_agent: "myapp/0.1 (contact: someone@example.com)"
rate_limit:
  requests_per_second: 5.0
run:
  limit: 100
  overwrite: true
paths:
  snapshot_root: /data/snapshots
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "myapp/0.1 (contact: someone@example.com)", cfg.SEC.UserAgent)
	assert.Equal(t, 5.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 100, cfg.Run.Limit)
	assert.True(t, cfg.Run.Overwrite)
	assert.Equal(t, "/data/snapshots", cfg.Paths.SnapshotRoot)
	// Untouched sections keep their defaults.
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Run("MissingExplicitFile", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Error(t, cfg.LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")))
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rate_limit: ["), 0644))

		cfg := DefaultConfig()
		assert.Error(t, cfg.LoadFromFile(path))
	})
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EDGARFETCH_REQUESTS_PER_SECOND", "1.5")
	t.Setenv("EDGARFETCH_MAX_RETRIES", "7")
	t.Setenv("EDGARFETCH_OUTPUT_ROOT", "/env/out")
	t.Setenv("EDGARFETCH_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 1.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 7, cfg.Retry.MaxAttempts)
	assert.Equal(t, "/env/out", cfg.Paths.OutputRoot)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvMalformed(t *testing.T) {
	t.Run("RequestsPerSecond", func(t *testing.T) {
		t.Setenv("EDGARFETCH_REQUESTS_PER_SECOND", "fast")

		cfg := DefaultConfig()
		err := cfg.LoadFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EDGARFETCH_REQUESTS_PER_SECOND")
	})

	t.Run("MaxRetries", func(t *testing.T) {
		t.Setenv("EDGARFETCH_MAX_RETRIES", "5x")

		cfg := DefaultConfig()
		err := cfg.LoadFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EDGARFETCH_MAX_RETRIES")
	})

	t.Run("OutOfRangeValueFailsValidation", func(t *testing.T) {
		t.Setenv("EDGARFETCH_REQUESTS_PER_SECOND", "-1")

		cfg := DefaultConfig()
		require.NoError(t, cfg.LoadFromEnv())
		assert.Error(t, cfg.Validate())
	})
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"limit":               200,
		"requests-per-second": 4.0,
		"overwrite":           true,
		"state-file":          "/tmp/state.json",
		"timeout":             30 * time.Second,
	})

	assert.Equal(t, 200, cfg.Run.Limit)
	assert.Equal(t, 4.0, cfg.RateLimit.RequestsPerSecond)
	assert.True(t, cfg.Run.Overwrite)
	assert.Equal(t, "/tmp/state.json", cfg.Paths.StateFile)
	assert.Equal(t, 30*time.Second, cfg.SEC.Timeout)
}

func TestLoad(t *testing.T) {
	t.Run("FlagsOverrideEnv", func(t *testing.T) {
		t.Setenv("EDGARFETCH_REQUESTS_PER_SECOND", "3.0")

		cfg, err := Load("", map[string]interface{}{"requests-per-second": 6.0})
		require.NoError(t, err)
		assert.Equal(t, 6.0, cfg.RateLimit.RequestsPerSecond)
	})

	t.Run("InvalidResultRejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sec:\n  user_agent: \"\"\n"), 0644))

		_, err := Load(path, nil)
		assert.Error(t, err)
	})
}
