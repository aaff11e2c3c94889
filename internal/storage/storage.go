package storage

import (
	"context"

	"perpScope/internal/model"
)

// QuoteSink is a sink for price-table snapshots.
type QuoteSink interface {
	PutQuoteBatch(ctx context.Context, quotes []model.PriceQuote) error
}

// OrderSink is a sink for order history records.
type OrderSink interface {
	PutOrderBatch(ctx context.Context, orders []model.Order) error
}
