package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Slot0x0f/pyth-crosschain/pkg/api"
	"github.com/Slot0x0f/pyth-crosschain/pkg/benchmarks"
	"github.com/Slot0x0f/pyth-crosschain/pkg/config"
	"github.com/Slot0x0f/pyth-crosschain/pkg/logging"
	"github.com/Slot0x0f/pyth-crosschain/pkg/metrics"
	"github.com/Slot0x0f/pyth-crosschain/pkg/pyth"
	"github.com/Slot0x0f/pyth-crosschain/pkg/stream"
	"github.com/Slot0x0f/pyth-crosschain/pkg/version"
)

var (
	configFile  = flag.String("config", "config/config.yaml", "Path to configuration file")
	showVer     = flag.Bool("version", false, "Show version and exit")
	serve       = flag.Bool("serve", false, "Run the HTTP API server instead of a one-shot fetch")
	publishTime = flag.Int64("publish-time", 0, "Unix timestamp of the snapshot to fetch (one-shot mode)")
	feedIDs     = flag.String("ids", "", "Comma-separated feed identifiers to fetch (one-shot mode, empty fetches all)")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("pyth-history version %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting pyth-history",
		"version", version.Version, "endpoint", cfg.Benchmarks.Endpoint)

	metrics.Init()
	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.ServeHTTP(cfg.Metrics.Addr, cfg.Metrics.Path); err != nil {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	client := benchmarks.NewHTTPClient(cfg.Benchmarks.Endpoint, cfg.Benchmarks.Timeout.ToDuration())

	if !*serve {
		if err := fetchOnce(client, logger); err != nil {
			logger.Fatal("Fetch failed", "error", err)
		}
		return
	}

	runServer(cfg, client, logger)
}

// fetchOnce performs a single historical fetch and prints the result as JSON.
func fetchOnce(client benchmarks.Client, logger *logging.Logger) error {
	if *publishTime == 0 {
		return errors.New("-publish-time is required in one-shot mode")
	}

	var ids []pyth.PriceIdentifier
	if *feedIDs != "" {
		for _, raw := range strings.Split(*feedIDs, ",") {
			id, err := pyth.ParsePriceIdentifier(strings.TrimSpace(raw))
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), benchmarks.DefaultRequestTimeout)
	defer cancel()

	result, err := client.GetVerifiedPriceFeeds(ctx, ids, *publishTime)
	if err != nil {
		return err
	}

	logger.Info("Fetched updates",
		"publish_time", *publishTime, "feeds", len(result.PriceFeeds))

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// runServer runs the HTTP API server, and the live update stream if enabled,
// until SIGINT or SIGTERM.
func runServer(cfg *config.Config, client benchmarks.Client, logger *logging.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := api.NewServer(cfg.Server.Addr, client, logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	var streamClient *stream.Client
	if cfg.Stream.Enabled {
		ids := make([]pyth.PriceIdentifier, 0, len(cfg.Stream.Feeds))
		for _, feed := range cfg.Stream.Feeds {
			id, err := pyth.ParsePriceIdentifier(feed)
			if err != nil {
				logger.Fatal("Invalid stream feed", "feed", feed, "error", err)
			}
			ids = append(ids, id)
		}

		streamClient = stream.NewClient(cfg.Stream.Endpoint, ids, logger)
		if err := streamClient.Start(ctx); err != nil {
			logger.Fatal("Failed to start price update stream", "error", err)
		}

		go func() {
			for update := range streamClient.Updates() {
				logger.Debug("Live price update",
					"feed", update.PriceFeed.ID.String(),
					"price", update.PriceFeed.Price.Decimal().String(),
					"publish_time", update.PriceFeed.Price.PublishTime)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutting down", "signal", sig.String())

	if streamClient != nil {
		_ = streamClient.Close()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
