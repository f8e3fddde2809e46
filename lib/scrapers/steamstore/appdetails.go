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

type appDetailsEntry struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// AppDetails returns the data object for appid. Every failure mode yields an
// empty payload, which normalization treats as not being a game.
func (c *Client) AppDetails(ctx context.Context, appid int64) catalog.Payload {
	ctx, span := tracer.Start(ctx, "AppDetails")
	defer span.End()
	span.SetAttributes(attribute.Int64("appid", appid))

	key := strconv.FormatInt(appid, 10)
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"appids": key,
			"cc":     currencyRegion,
			"l":      detailsLanguage,
		}).
		Get(appDetailsPath)
	if err == nil {
		err = restyutil.CheckStatus(res)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch app details")
		c.tel.ReportWarning(report_appdetails_fetch, appid, err)
		return catalog.Payload{}
	}

	payload, err := parseAppDetails(res.Body(), key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse app details")
		c.tel.ReportWarning(report_appdetails_parse, appid, err)
		return catalog.Payload{}
	}
	return payload
}

func parseAppDetails(body []byte, key string) (catalog.Payload, error) {
	var byID map[string]appDetailsEntry
	if err := json.Unmarshal(body, &byID); err != nil {
		return nil, err
	}
	entry, ok := byID[key]
	if !ok {
		return nil, fmt.Errorf("response has no entry for %s", key)
	}
	if !entry.Success {
		return nil, fmt.Errorf("entry for %s was not successful", key)
	}
	if len(entry.Data) == 0 {
		return nil, fmt.Errorf("entry for %s has no data", key)
	}
	return catalog.DecodePayload(entry.Data)
}
