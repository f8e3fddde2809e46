package crawler

import (
	"context"

	"gamecatalog/lib/catalog"
	"gamecatalog/lib/restyutil"
	"gamecatalog/lib/scrapers/steamapi"
	"gamecatalog/lib/scrapers/steamstore"
	"gamecatalog/lib/telemetry"
)

type Listing interface {
	Crawl(ctx context.Context, first, last int, visit steamstore.VisitFunc) error
}

type Details interface {
	AppDetails(ctx context.Context, appid int64) catalog.Payload
}

type Reviews interface {
	Reviews(ctx context.Context, appid int64) catalog.ReviewSummary
}

type Players interface {
	PlayerCount(ctx context.Context, appid int64) *int64
}

// Sources bundles everything the pipeline reads from. Details, Reviews and
// Players must absorb their own failures.
type Sources struct {
	Listing Listing
	Details Details
	Reviews Reviews
	Players Players
}

// NewSources wires the storefront and Web API clients described by cfg. The
// storefront crawler and item clients share one limiter since they hit the
// same host.
func NewSources(cfg Config, tel telemetry.API) (Sources, error) {
	var output restyutil.InstrumentOutput
	if cfg.DumpHTTP != "" {
		fsOutput, err := restyutil.NewFilesystemOutput(cfg.DumpHTTP)
		if err != nil {
			return Sources{}, err
		}
		output = fsOutput
	}

	store := steamstore.NewClient(steamstore.Options{
		BaseURL:    cfg.StoreURL,
		Limiter:    restyutil.NewLimiter(cfg.RequestInterval()),
		Output:     output,
		Tel:        tel,
		BrowserTLS: cfg.BrowserTLS,
	})
	api := steamapi.NewClient(steamapi.Options{
		BaseURL: cfg.APIURL,
		APIKey:  cfg.APIKey,
		Limiter: restyutil.NewLimiter(cfg.RequestInterval()),
		Output:  output,
		Tel:     tel,
	})

	return Sources{
		Listing: steamstore.NewCrawler(store, cfg.Filter, cfg.PageInterval()),
		Details: store,
		Reviews: store,
		Players: api,
	}, nil
}
