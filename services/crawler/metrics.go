package crawler

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("gamecatalog/services/crawler")

type metrics struct {
	accepted metric.Int64Counter
	skipped  metric.Int64Counter
	pages    metric.Int64Counter
}

func newMetrics() (metrics, error) {
	accepted, err := meter.Int64Counter(
		"catalog.items.accepted",
		metric.WithDescription("Items normalized into a catalog row."),
	)
	if err != nil {
		return metrics{}, err
	}
	skipped, err := meter.Int64Counter(
		"catalog.items.skipped",
		metric.WithDescription("Items dropped for a missing id, a duplicate id or a non-game type."),
	)
	if err != nil {
		return metrics{}, err
	}
	pages, err := meter.Int64Counter(
		"catalog.pages.crawled",
		metric.WithDescription("Listing pages fetched and parsed."),
	)
	if err != nil {
		return metrics{}, err
	}
	return metrics{accepted: accepted, skipped: skipped, pages: pages}, nil
}
