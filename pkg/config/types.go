package config

import "time"

// Config is the root configuration structure
type Config struct {
	Benchmarks BenchmarksConfig `yaml:"benchmarks"`
	Stream     StreamConfig     `yaml:"stream"`
	Server     ServerConfig     `yaml:"server"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// BenchmarksConfig configures the historical updates provider
type BenchmarksConfig struct {
	Endpoint string   `yaml:"endpoint"` // Base URL of the benchmarks API
	Timeout  Duration `yaml:"timeout"`  // Round trip timeout (default: 30s)
}

// StreamConfig configures the live price update stream
type StreamConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Endpoint string   `yaml:"endpoint"` // WebSocket URL (e.g., "wss://hermes.pyth.network/ws")
	Feeds    []string `yaml:"feeds"`    // Feed identifiers to subscribe to
}

// ServerConfig configures the HTTP API server
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// MetricsConfig configures Prometheus metrics
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Duration is a wrapper around time.Duration for YAML parsing
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	td, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(td)
	return nil
}

// ToDuration converts Duration to time.Duration
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d)
}
