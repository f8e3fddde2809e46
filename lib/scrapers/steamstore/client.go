package steamstore

import (
	"net/http"

	"gamecatalog/lib/restyutil"
	"gamecatalog/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("gamecatalog/lib/scrapers/steamstore")

// ErrUnexpectedStatus is wrapped by every error caused by a non-2xx response.
var ErrUnexpectedStatus = restyutil.ErrUnexpectedStatus

const (
	report_listing_fetch    = "listing.fetch"
	report_appdetails_fetch = "appdetails.fetch"
	report_appdetails_parse = "appdetails.parse"
	report_reviews_fetch    = "reviews.fetch"
	report_reviews_parse    = "reviews.parse"
)

type Options struct {
	BaseURL string
	// Limiter paces every request to the store host, it should be shared with
	// anything else reaching the same host. Defaults to DefaultRequestInterval.
	Limiter *rate.Limiter
	Output  restyutil.InstrumentOutput
	Tel     telemetry.API
	// BrowserTLS swaps in a transport with a browser-like TLS fingerprint for
	// networks that challenge Go's default handshake.
	BrowserTLS bool
}

// Client reaches the storefront: the search listing, app details and review summaries.
type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Limiter == nil {
		opts.Limiter = restyutil.NewLimiter(DefaultRequestInterval)
	}
	tel := opts.Tel
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}

	httpOpts := restyutil.Options{
		BaseURL:    opts.BaseURL,
		Timeout:    listingTimeout,
		Headers:    BrowserHeaders,
		Limiter:    opts.Limiter,
		TracerName: "gamecatalog/lib/scrapers/steamstore/http",
		Output:     opts.Output,
	}
	if opts.BrowserTLS {
		httpOpts.WrapTransport = func(rt http.RoundTripper) http.RoundTripper {
			return cloudflarebp.AddCloudFlareByPass(rt)
		}
	}
	httpClient := restyutil.NewClient(httpOpts)

	return &Client{
		http: httpClient,
		tel:  telemetry.NewScopedAPI("steamstore", tel),
	}
}
