// Command pricebot runs one price-check session and prints the outcome.
//
// With no arguments and no environment overrides it loads the configured
// retail site, searches for the configured product, and prints either
//
//	Success!
//	Here are the prices for <product>: <price>
//
// or
//
//	Failed to Search for <product>
//
// Logs go to stderr so stdout carries only the outcome message.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/use-agent/pricebot/config"
	"github.com/use-agent/pricebot/models"
	"github.com/use-agent/pricebot/scraper"
)

func main() {
	cfg := config.Load()
	initLogger(cfg.Log)
	os.Exit(run(cfg))
}

// run holds the session so deferred cleanup executes before the process
// exits, whatever path ends the check.
func run(cfg *config.Config) int {
	slog.Info("pricebot starting",
		"website", cfg.Check.Website,
		"product", cfg.Check.Product,
		"headless", cfg.Browser.Headless,
	)

	sc, err := scraper.New(cfg.Browser, cfg.Check, cfg.Selectors)
	if err != nil {
		slog.Error("failed to initialise scraper", "error", err)
		return 1
	}
	defer sc.Close()

	req := &models.CheckRequest{}
	req.Defaults(cfg.Check.Product)
	req.Timeout = int(cfg.Check.Timeout.Seconds())

	resp, err := sc.Check(context.Background(), req)
	if err != nil {
		// Typically the price-readiness timeout: the search went through
		// but no price ever rendered. The browser still shuts down via
		// the defers above and inside Check.
		slog.Error("price check failed", "product", req.Product, "error", err)
		return 1
	}

	if resp.Success {
		fmt.Println(models.SuccessMessage(resp.Product, resp.Price))
	} else {
		fmt.Println(models.FailureMessage(resp.Product))
	}
	return 0
}

// initLogger configures slog based on the LogConfig. The CLI logs to stderr:
// stdout is reserved for the outcome message.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
