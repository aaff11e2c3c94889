package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perpScope/internal/model"
)

// Store provides Postgres persistence for price snapshots and order history.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutQuoteBatch inserts or updates one price-table snapshot, keyed by feed
// and publish timestamp.
func (s *Store) PutQuoteBatch(ctx context.Context, quotes []model.PriceQuote) error {
	if len(quotes) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, quote := range quotes {
		batch.Queue(`
			INSERT INTO price_quotes (
				feed_id, from_asset, to_asset, bid, mid, ask,
				is_market_open, is_day_trading_closed, timestamp_seconds, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
			ON CONFLICT (feed_id, timestamp_seconds)
			DO UPDATE SET
				bid = EXCLUDED.bid,
				mid = EXCLUDED.mid,
				ask = EXCLUDED.ask,
				is_market_open = EXCLUDED.is_market_open,
				is_day_trading_closed = EXCLUDED.is_day_trading_closed,
				updated_at = now()
		`,
			quote.FeedID,
			quote.From,
			quote.To,
			quote.Bid,
			quote.Mid,
			quote.Ask,
			quote.IsMarketOpen,
			quote.IsDayTradingClosed,
			quote.TimestampSeconds,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range quotes {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// PutOrderBatch inserts or updates order history records keyed by order id.
func (s *Store) PutOrderBatch(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, order := range orders {
		pairName := ""
		if order.Pair != nil {
			pairName = order.Pair.From + "/" + order.Pair.To
		}
		batch.Queue(`
			INSERT INTO order_history (
				order_id, trader, pair, order_type, order_action, price,
				collateral, leverage, is_buy, is_cancelled, cancel_reason,
				profit_percent, amount_sent_to_trader, executed_at, executed_tx,
				created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,now(),now())
			ON CONFLICT (order_id)
			DO UPDATE SET
				is_cancelled = EXCLUDED.is_cancelled,
				cancel_reason = EXCLUDED.cancel_reason,
				profit_percent = EXCLUDED.profit_percent,
				amount_sent_to_trader = EXCLUDED.amount_sent_to_trader,
				executed_at = EXCLUDED.executed_at,
				executed_tx = EXCLUDED.executed_tx,
				updated_at = now()
		`,
			order.ID,
			order.Trader,
			pairName,
			order.OrderType,
			order.OrderAction,
			order.Price.Float64(),
			order.Collateral.Float64(),
			order.Leverage.Float64(),
			order.IsBuy,
			order.IsCancelled,
			order.CancelReason,
			order.ProfitPercent.Float64(),
			order.AmountSentToTrader.Float64(),
			order.ExecutedAt.Float64(),
			order.ExecutedTx,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range orders {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
