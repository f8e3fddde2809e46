package crawler

import (
	"fmt"
	"time"

	"gamecatalog/lib/scrapers/steamstore"
	"gamecatalog/lib/telemetry"
)

// Config is the whole run configuration, read from config.json5 and then
// overridden by command line flags.
type Config struct {
	// APIKey enables live player counts.
	APIKey string `json:"api_key"`
	Filter string `json:"filter"`
	Pages  int    `json:"pages"`
	Output string `json:"output"`
	// SQLite is an optional database file written next to the CSV.
	SQLite  string `json:"sqlite"`
	Workers int    `json:"workers"`
	// Limit caps accepted rows, 0 means no cap.
	Limit int `json:"limit"`

	RequestIntervalMs int `json:"request_interval_ms"`
	PageIntervalMs    int `json:"page_interval_ms"`

	StoreURL string `json:"store_url"`
	APIURL   string `json:"api_url"`
	// DumpHTTP is a directory that receives every request/response exchange.
	DumpHTTP   string `json:"dump_http"`
	BrowserTLS bool   `json:"browser_tls"`

	Telemetry telemetry.Config `json:"telemetry"`
}

func DefaultConfig() Config {
	return Config{
		Filter:            steamstore.DefaultFilter,
		Pages:             1,
		Output:            "steam_games.csv",
		Workers:           1,
		RequestIntervalMs: int(steamstore.DefaultRequestInterval / time.Millisecond),
		PageIntervalMs:    int(steamstore.DefaultPageInterval / time.Millisecond),
	}
}

func (c Config) RequestInterval() time.Duration {
	return time.Duration(c.RequestIntervalMs) * time.Millisecond
}

func (c Config) PageInterval() time.Duration {
	return time.Duration(c.PageIntervalMs) * time.Millisecond
}

func (c Config) Validate() error {
	if !steamstore.ValidFilter(c.Filter) {
		return fmt.Errorf("unknown filter %q, expected one of %v", c.Filter, steamstore.Filters)
	}
	if c.Pages < 1 {
		return fmt.Errorf("pages must be at least 1, got %d", c.Pages)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", c.Limit)
	}
	if c.RequestIntervalMs < 0 || c.PageIntervalMs < 0 {
		return fmt.Errorf("intervals must not be negative")
	}
	return nil
}
