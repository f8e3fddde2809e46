package commands

import (
	"context"
	"log/slog"
	"os"
	"time"

	"gamecatalog/lib/configutil"
	"gamecatalog/lib/telemetry"
	"gamecatalog/services/crawler"

	"github.com/spf13/cobra"
)

const apiKeyEnv = "STEAM_API_KEY"

// sourceFlags are shared by every command that talks to the storefront.
type sourceFlags struct {
	apiKey     string
	dumpHTTP   string
	browserTLS bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "Web API key for live player counts, defaults to $"+apiKeyEnv+".")
	cmd.Flags().StringVar(&f.dumpHTTP, "dump-http", "", "Write every HTTP exchange to this directory.")
	cmd.Flags().BoolVar(&f.browserTLS, "browser-tls", false, "Use a browser-like TLS fingerprint for storefront requests.")
}

func (f *sourceFlags) apply(cmd *cobra.Command, cfg *crawler.Config) {
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = f.apiKey
	}
	if cmd.Flags().Changed("dump-http") {
		cfg.DumpHTTP = f.dumpHTTP
	}
	if cmd.Flags().Changed("browser-tls") {
		cfg.BrowserTLS = f.browserTLS
	}
}

// loadConfig layers defaults, the config files, flags and finally the
// environment for an API key that is still empty.
func loadConfig(cmd *cobra.Command, apply ...func(*crawler.Config)) (crawler.Config, error) {
	cfg, err := configutil.ReadConfig(configPath, crawler.DefaultConfig())
	if err != nil {
		return cfg, err
	}
	for _, fn := range apply {
		fn(&cfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(apiKeyEnv)
	}
	if cfg.APIKey == "" {
		slog.Warn("no api key configured, player counts will be empty")
	}
	return cfg, cfg.Validate()
}

// setupTelemetry starts exporters when the config asks for them, the
// returned func flushes them.
func setupTelemetry(ctx context.Context, cfg telemetry.Config) func() {
	tel, err := telemetry.Setup(ctx, "catalog-cli", cfg)
	if err != nil {
		slog.Warn("failed to setup telemetry, continuing without it", "err", err)
		return func() {}
	}
	if cfg.Enabled() {
		telemetry.InstrumentPerfStats(ctx, 15*time.Second)
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tel.Shutdown(ctx); err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	}
}
