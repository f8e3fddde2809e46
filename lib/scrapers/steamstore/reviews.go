package steamstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"gamecatalog/lib/catalog"
	"gamecatalog/lib/restyutil"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type reviewsResponse struct {
	QuerySummary *catalog.ReviewSummary `json:"query_summary"`
}

// Reviews returns aggregate review counts for appid, an all-nil summary on any failure.
func (c *Client) Reviews(ctx context.Context, appid int64) catalog.ReviewSummary {
	ctx, span := tracer.Start(ctx, "Reviews")
	defer span.End()
	span.SetAttributes(attribute.Int64("appid", appid))

	ctx, cancel := context.WithTimeout(ctx, reviewsTimeout)
	defer cancel()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"json":         "1",
			"filter":       "all",
			"language":     "all",
			"num_per_page": "0",
		}).
		Get(reviewsPath + strconv.FormatInt(appid, 10))
	if err == nil {
		err = restyutil.CheckStatus(res)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch reviews")
		c.tel.ReportWarning(report_reviews_fetch, appid, err)
		return catalog.ReviewSummary{}
	}

	var parsed reviewsResponse
	err = json.Unmarshal(res.Body(), &parsed)
	if err == nil && parsed.QuerySummary == nil {
		err = fmt.Errorf("response has no query_summary")
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse reviews")
		c.tel.ReportWarning(report_reviews_parse, appid, err)
		return catalog.ReviewSummary{}
	}
	return *parsed.QuerySummary
}
