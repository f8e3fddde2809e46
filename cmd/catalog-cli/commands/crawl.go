package commands

import (
	"log/slog"
	"time"

	"gamecatalog/lib/catalog/sink"
	"gamecatalog/lib/telemetry"
	"gamecatalog/lib/util/serviceutil"
	"gamecatalog/services/crawler"

	"github.com/spf13/cobra"
)

var crawlFlags struct {
	sourceFlags
	pages   int
	filter  string
	out     string
	sqlite  string
	workers int
	limit   int
}

func init() {
	f := crawlCmd.Flags()
	f.IntVar(&crawlFlags.pages, "pages", 1, "The number of listing pages to crawl, starting at 1.")
	f.StringVar(&crawlFlags.filter, "filter", "topsellers", "The listing ordering: topsellers, popularnew, wishlist, toprated or specials.")
	f.StringVarP(&crawlFlags.out, "out", "o", "steam_games.csv", "The CSV file to write.")
	f.StringVar(&crawlFlags.sqlite, "sqlite", "", "Also write the rows to this SQLite database.")
	f.IntVar(&crawlFlags.workers, "workers", 1, "The number of items fetched concurrently.")
	f.IntVar(&crawlFlags.limit, "limit", 0, "Stop after this many accepted rows, 0 for no limit.")
	crawlFlags.register(crawlCmd)
	rootCmd.AddCommand(crawlCmd)
}

func applyCrawlFlags(cmd *cobra.Command) func(*crawler.Config) {
	return func(cfg *crawler.Config) {
		changed := cmd.Flags().Changed
		if changed("pages") {
			cfg.Pages = crawlFlags.pages
		}
		if changed("filter") {
			cfg.Filter = crawlFlags.filter
		}
		if changed("out") {
			cfg.Output = crawlFlags.out
		}
		if changed("sqlite") {
			cfg.SQLite = crawlFlags.sqlite
		}
		if changed("workers") {
			cfg.Workers = crawlFlags.workers
		}
		if changed("limit") {
			cfg.Limit = crawlFlags.limit
		}
		crawlFlags.apply(cmd, cfg)
	}
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [--pages N] [--filter name] [--out path.csv]",
	Short: "Crawls listing pages and writes one row per game.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg, err := loadConfig(cmd, applyCrawlFlags(cmd))
		if err != nil {
			serviceutil.Fatal("invalid configuration", err)
		}
		flush := setupTelemetry(ctx, cfg.Telemetry)
		defer flush()

		tel := telemetry.SlogAPI{}
		sources, err := crawler.NewSources(cfg, tel)
		if err != nil {
			serviceutil.Fatal("failed to create sources", err)
		}
		pipeline, err := crawler.NewPipeline(cfg, sources, tel)
		if err != nil {
			serviceutil.Fatal("failed to create pipeline", err)
		}

		slog.Info("crawling", "filter", cfg.Filter, "pages", cfg.Pages, "workers", cfg.Workers)
		start := time.Now()
		records, err := pipeline.Run(ctx)
		if err != nil {
			flush()
			serviceutil.Fatal("crawl failed, nothing was written", err)
		}
		slog.Info("crawl time", "seconds", time.Since(start).Seconds())

		err = sink.CSVFile{Path: cfg.Output}.Write(ctx, records)
		if err != nil {
			serviceutil.Fatal("failed to write csv", err)
		}
		slog.Info("wrote csv", "path", cfg.Output, "rows", len(records))

		if cfg.SQLite == "" {
			return
		}
		db, err := sink.OpenSQLite(cfg.SQLite)
		if err != nil {
			serviceutil.Fatal("failed to open sqlite database", err)
		}
		defer db.Close()
		err = sink.SQLite{DB: db}.Write(ctx, records)
		if err != nil {
			serviceutil.Fatal("failed to write sqlite database", err)
		}
		slog.Info("wrote sqlite", "path", cfg.SQLite, "rows", len(records))
	},
}
