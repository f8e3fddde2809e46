// Package steamapi reaches the public Web API host, which is paced and
// authenticated separately from the storefront.
package steamapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gamecatalog/lib/restyutil"
	"gamecatalog/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.steampowered.com"

	DefaultRequestInterval = 250 * time.Millisecond

	currentPlayersPath = "/ISteamUserStats/GetNumberOfCurrentPlayers/v1/"
	requestTimeout     = 10 * time.Second

	report_players_fetch = "players.fetch"
	report_players_parse = "players.parse"
)

var tracer = otel.Tracer("gamecatalog/lib/scrapers/steamapi")

type Options struct {
	BaseURL string
	// APIKey is the Web API key, without it no request is ever made.
	APIKey  string
	Limiter *rate.Limiter
	Output  restyutil.InstrumentOutput
	Tel     telemetry.API
}

type Client struct {
	http   *resty.Client
	apiKey string
	tel    telemetry.API
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

	return &Client{
		http: restyutil.NewClient(restyutil.Options{
			BaseURL:    opts.BaseURL,
			Timeout:    requestTimeout,
			Limiter:    opts.Limiter,
			TracerName: "gamecatalog/lib/scrapers/steamapi/http",
			Output:     opts.Output,
		}),
		apiKey: opts.APIKey,
		tel:    telemetry.NewScopedAPI("steamapi", tel),
	}
}

// Enabled reports whether a key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type currentPlayersResponse struct {
	Response *struct {
		PlayerCount *int64 `json:"player_count"`
		Result      int    `json:"result"`
	} `json:"response"`
}

// PlayerCount returns the live concurrent player count of appid, nil when no key is
// configured or the request fails for any reason.
func (c *Client) PlayerCount(ctx context.Context, appid int64) *int64 {
	if !c.Enabled() {
		return nil
	}

	ctx, span := tracer.Start(ctx, "PlayerCount")
	defer span.End()
	span.SetAttributes(attribute.Int64("appid", appid))

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"appid": strconv.FormatInt(appid, 10),
			"key":   c.apiKey,
		}).
		Get(currentPlayersPath)
	if err == nil {
		err = restyutil.CheckStatus(res)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch player count")
		c.tel.ReportWarning(report_players_fetch, appid, err)
		return nil
	}

	var parsed currentPlayersResponse
	err = json.Unmarshal(res.Body(), &parsed)
	if err == nil && (parsed.Response == nil || parsed.Response.PlayerCount == nil) {
		err = fmt.Errorf("response has no player_count")
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse player count")
		c.tel.ReportWarning(report_players_parse, appid, err)
		return nil
	}
	return parsed.Response.PlayerCount
}
