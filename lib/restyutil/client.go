package restyutil

import (
	"net/http"
	"time"

	"gamecatalog/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

type Options struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
	// Limiter is waited on before every request, clients reaching the same host
	// should share one. nil disables pacing.
	Limiter *rate.Limiter
	// TracerName enables a span per request when non-empty.
	TracerName string
	// Output receives a dump of every exchange when non-nil.
	Output InstrumentOutput
	// WrapTransport can replace the underlying round tripper.
	WrapTransport func(http.RoundTripper) http.RoundTripper
}

// NewLimiter allows one request per interval without bursting,
// a non-positive interval never blocks.
func NewLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

func NewClient(opts Options) *resty.Client {
	client := resty.New()
	if opts.BaseURL != "" {
		client.SetBaseURL(opts.BaseURL)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	client.SetHeaders(opts.Headers)
	if opts.WrapTransport != nil {
		client.GetClient().Transport = opts.WrapTransport(client.GetClient().Transport)
	}

	if opts.Limiter != nil {
		limiter := opts.Limiter
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}
	if opts.TracerName != "" {
		telemetry.InstrumentResty(client, opts.TracerName)
	}
	InstrumentClient(client, opts.Output)

	return client
}
