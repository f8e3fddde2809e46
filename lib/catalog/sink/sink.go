// Package sink persists an ordered sequence of catalog records.
package sink

import (
	"context"

	"gamecatalog/lib/catalog"
)

type Sink interface {
	Write(ctx context.Context, records []catalog.GameRecord) error
}
