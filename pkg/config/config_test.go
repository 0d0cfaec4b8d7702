package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
benchmarks:
  endpoint: "https://benchmarks.pyth.network"
  timeout: "10s"
server:
  addr: ":9000"
logging:
  level: "debug"
  format: "text"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://benchmarks.pyth.network", cfg.Benchmarks.Endpoint)
	assert.Equal(t, 10*time.Second, cfg.Benchmarks.Timeout.ToDuration())
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
benchmarks:
  endpoint: "https://benchmarks.pyth.network"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Benchmarks.Timeout.ToDuration())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("BENCHMARKS_ENDPOINT", "https://example.com")

	path := writeConfig(t, `
benchmarks:
  endpoint: "${BENCHMARKS_ENDPOINT}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cfg.Benchmarks.Endpoint)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	// endpoint is a hard requirement
	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBenchmarksEndpointRequired)

	cfg.Benchmarks.Endpoint = "ftp://example.com"
	err = Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidBenchmarksEndpoint)

	cfg.Benchmarks.Endpoint = "https://benchmarks.pyth.network"
	require.NoError(t, Validate(cfg))
}

func TestValidate_Stream(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Benchmarks.Endpoint = "https://benchmarks.pyth.network"
	cfg.Stream.Enabled = true

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStreamEndpointRequired)

	cfg.Stream.Endpoint = "https://not-a-ws.example.com"
	err = Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStreamEndpoint)

	cfg.Stream.Endpoint = "wss://hermes.pyth.network/ws"
	err = Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoStreamFeeds)

	cfg.Stream.Feeds = []string{"not-a-feed"}
	err = Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStreamFeed)

	cfg.Stream.Feeds = []string{"e62df6c8b4a85fe1a67db44dc12de5db330f7ac66b72dc658afedf0f4a415b43"}
	require.NoError(t, Validate(cfg))
}

func TestValidate_Logging(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Benchmarks.Endpoint = "https://benchmarks.pyth.network"

	cfg.Logging.Level = "loud"
	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLogLevel)

	cfg.Logging.Level = "warn"
	cfg.Logging.Format = "xml"
	err = Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLogFormat)
}
