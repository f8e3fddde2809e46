// Package crawler drives a full catalog run: listing pages are walked in
// order and every discovered item is enriched and normalized into a row.
package crawler

import (
	"context"
	"errors"
	"log/slog"

	"gamecatalog/lib/catalog"
	"gamecatalog/lib/scrapers/steamstore"
	"gamecatalog/lib/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("gamecatalog/services/crawler")

const (
	report_missing_id   = "pipeline.missing-id"
	report_duplicate_id = "pipeline.duplicate-id"
	report_skip         = "pipeline.skip-non-game"
)

var errLimitReached = errors.New("accepted row limit reached")

type Pipeline struct {
	cfg     Config
	src     Sources
	tel     telemetry.API
	metrics metrics
}

func NewPipeline(cfg Config, src Sources, tel telemetry.API) (*Pipeline, error) {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	m, err := newMetrics()
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:     cfg,
		src:     src,
		tel:     telemetry.NewScopedAPI("catalog", tel),
		metrics: m,
	}, nil
}

type item struct {
	appid int64
	name  *string
}

type result struct {
	record catalog.GameRecord
	ok     bool
}

// Run crawls the configured page range and returns the accepted records in
// discovery order. Only a listing failure or cancellation is returned as an
// error, in which case no records are returned.
func (p *Pipeline) Run(ctx context.Context) ([]catalog.GameRecord, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	var records []catalog.GameRecord
	seen := make(map[int64]struct{})

	err := p.src.Listing.Crawl(ctx, 1, p.cfg.Pages, func(page int, entries []steamstore.ListingEntry) error {
		p.metrics.pages.Add(ctx, 1)
		items := p.admit(ctx, entries, seen)
		slog.InfoContext(ctx, "processing listing page", "page", page, "entries", len(entries), "items", len(items))

		results, err := p.collectAll(ctx, items)
		if err != nil {
			return err
		}
		for i, res := range results {
			if !res.ok {
				p.reportSkip(ctx, items[i])
				continue
			}
			records = append(records, res.record)
			p.metrics.accepted.Add(ctx, 1)
			if p.cfg.Limit > 0 && len(records) >= p.cfg.Limit {
				return errLimitReached
			}
		}
		slog.InfoContext(ctx, "listing page done", "page", page, "total", len(records))
		return nil
	})
	if errors.Is(err, errLimitReached) {
		slog.InfoContext(ctx, "row limit reached", "limit", p.cfg.Limit)
		err = nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "crawl failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	slog.InfoContext(ctx, "crawl finished", "records", len(records))
	return records, nil
}

// admit drops entries without an id and ids already seen during this run.
func (p *Pipeline) admit(ctx context.Context, entries []steamstore.ListingEntry, seen map[int64]struct{}) []item {
	items := make([]item, 0, len(entries))
	for _, entry := range entries {
		if entry.ItemID == nil {
			p.tel.ReportWarning(report_missing_id, nameOf(entry.Name))
			p.metrics.skipped.Add(ctx, 1)
			continue
		}
		appid := *entry.ItemID
		if _, ok := seen[appid]; ok {
			p.tel.ReportDebug("dropping duplicate listing entry", "appid", appid)
			p.tel.ReportCount(report_duplicate_id, 1)
			p.metrics.skipped.Add(ctx, 1)
			continue
		}
		seen[appid] = struct{}{}
		items = append(items, item{appid: appid, name: entry.Name})
	}
	return items
}

// collectAll enriches items on at most cfg.Workers goroutines, results keep
// the index of their item.
func (p *Pipeline) collectAll(ctx context.Context, items []item) ([]result, error) {
	results := make([]result, len(items))

	var group errgroup.Group
	group.SetLimit(p.cfg.Workers)
	for i, it := range items {
		group.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			record, ok := p.collect(ctx, it)
			results[i] = result{record: record, ok: ok}
			slog.InfoContext(ctx, "item processed", "appid", it.appid, "name", nameOf(it.name), "accepted", ok)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) collect(ctx context.Context, it item) (catalog.GameRecord, bool) {
	ctx, span := tracer.Start(ctx, "collect", trace.WithAttributes(
		attribute.Int64("appid", it.appid),
	))
	defer span.End()

	details := p.src.Details.AppDetails(ctx, it.appid)
	players := p.src.Players.PlayerCount(ctx, it.appid)
	reviews := p.src.Reviews.Reviews(ctx, it.appid)

	record, ok := catalog.Normalize(catalog.Input{
		AppID:      it.appid,
		Name:       it.name,
		Details:    details,
		Reviews:    reviews,
		PlayersNow: players,
	})
	span.SetAttributes(attribute.Bool("accepted", ok))
	return record, ok
}

func (p *Pipeline) reportSkip(ctx context.Context, it item) {
	p.tel.ReportWarning(report_skip, nameOf(it.name), it.appid)
	p.metrics.skipped.Add(ctx, 1)
}

func nameOf(name *string) string {
	if name == nil {
		return ""
	}
	return *name
}
