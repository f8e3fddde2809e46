package steamstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"gamecatalog/lib/htmlutil"
	"gamecatalog/lib/restyutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

// ListingEntry is one result row of a search page. ItemID is nil when the row
// carries no numeric id, callers drop those before reaching any other source.
type ListingEntry struct {
	ItemID *int64
	Name   *string
}

// ParseListing extracts one entry per result row in document order. Malformed
// rows produce partial entries rather than errors.
func ParseListing(r io.Reader) ([]ListingEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var entries []ListingEntry
	doc.Find("a.search_result_row").Each(func(_ int, row *goquery.Selection) {
		entry := ListingEntry{ItemID: rowID(row)}

		title := row.Find(".title").First()
		if len(title.Nodes) > 0 {
			name := htmlutil.NodeText(title.Nodes[0])
			entry.Name = &name
		}

		entries = append(entries, entry)
	})

	return entries, nil
}

// rowID parses the first non-empty of data-ds-appid and data-ds-packageid.
// A value that is not a single integer, like the comma separated app ids of a
// bundle, leaves the id absent rather than trying the next attribute.
func rowID(row *goquery.Selection) *int64 {
	for _, attr := range []string{"data-ds-appid", "data-ds-packageid"} {
		raw := strings.TrimSpace(row.AttrOr(attr, ""))
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil
		}
		return &id
	}
	return nil
}

// FetchListingPage requests one 1-based page of the search listing. Any failure
// is returned, the listing is not optional.
func (c *Client) FetchListingPage(ctx context.Context, filter string, page int) ([]ListingEntry, error) {
	ctx, span := tracer.Start(ctx, "FetchListingPage")
	defer span.End()
	span.SetAttributes(attribute.String("filter", filter), attribute.Int("page", page))

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"filter": filter,
			"page":   strconv.Itoa(page),
			"cc":     currencyRegion,
			"l":      listingLanguage,
		}).
		Get(searchPath)
	if err == nil {
		err = restyutil.CheckStatus(res)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch listing page")
		c.tel.ReportBroken(report_listing_fetch, page, err)
		return nil, fmt.Errorf("steamstore: fetch listing page %d: %w", page, err)
	}

	entries, err := ParseListing(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse listing page")
		return nil, fmt.Errorf("steamstore: parse listing page %d: %w", page, err)
	}
	span.SetAttributes(attribute.Int("entries", len(entries)))
	return entries, nil
}

// VisitFunc receives the entries of each page in page order, returning an
// error stops the crawl.
type VisitFunc func(page int, entries []ListingEntry) error

// Crawler walks a range of listing pages for one filter, waiting the page
// interval between page requests on top of the client's own pacing.
type Crawler struct {
	client  *Client
	filter  string
	limiter *rate.Limiter
}

func NewCrawler(client *Client, filter string, pageInterval time.Duration) *Crawler {
	return &Crawler{
		client:  client,
		filter:  filter,
		limiter: restyutil.NewLimiter(pageInterval),
	}
}

func (c *Crawler) Filter() string {
	return c.filter
}

// Crawl fetches pages first..last inclusive. The first failed page aborts the
// whole crawl and its error is returned.
func (c *Crawler) Crawl(ctx context.Context, first, last int, visit VisitFunc) error {
	for page := first; page <= last; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		slog.InfoContext(ctx, "fetching listing page", "page", page, "last", last, "filter", c.filter)
		entries, err := c.client.FetchListingPage(ctx, c.filter, page)
		if err != nil {
			return err
		}
		if err := visit(page, entries); err != nil {
			return err
		}
	}
	return nil
}
