package config

import (
	"fmt"
	"net/url"

	"github.com/Slot0x0f/pyth-crosschain/pkg/pyth"
)

// Validate checks the configuration for errors.
func Validate(cfg *Config) error {
	if err := validateBenchmarks(&cfg.Benchmarks); err != nil {
		return err
	}
	if err := validateStream(&cfg.Stream); err != nil {
		return err
	}
	return validateLogging(&cfg.Logging)
}

func validateBenchmarks(cfg *BenchmarksConfig) error {
	if cfg.Endpoint == "" {
		return ErrBenchmarksEndpointRequired
	}

	parsed, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBenchmarksEndpoint, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: got %q", ErrInvalidBenchmarksEndpoint, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidBenchmarksEndpoint)
	}

	return nil
}

func validateStream(cfg *StreamConfig) error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.Endpoint == "" {
		return ErrStreamEndpointRequired
	}
	parsed, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStreamEndpoint, err)
	}
	if parsed.Scheme != "ws" && parsed.Scheme != "wss" {
		return fmt.Errorf("%w: got %q", ErrInvalidStreamEndpoint, parsed.Scheme)
	}

	if len(cfg.Feeds) == 0 {
		return ErrNoStreamFeeds
	}
	for _, feed := range cfg.Feeds {
		if _, err := pyth.ParsePriceIdentifier(feed); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidStreamFeed, feed, err)
		}
	}

	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	switch cfg.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Level)
	}

	switch cfg.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, cfg.Format)
	}

	return nil
}
