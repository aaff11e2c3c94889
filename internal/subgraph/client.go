package subgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	graphql "github.com/hasura/go-graphql-client"
	"go.uber.org/zap"

	"perpScope/internal/model"
)

// ErrStaleTransport marks an execution client whose underlying session no
// longer matches its connection state. Execution against such a client keeps
// failing until the client is rebuilt, so the error drives a single
// rebuild-and-retry cycle instead of surfacing to callers.
var ErrStaleTransport = errors.New("transport is already connected")

// NotFoundError reports a lookup that matched nothing on the indexer.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found for id: %s", e.Kind, e.ID)
}

// execClient is the slice of hasura/go-graphql-client the Client uses. Tests
// substitute fakes through the dial hook.
type execClient interface {
	ExecRaw(ctx context.Context, query string, variables map[string]interface{}, options ...graphql.Option) ([]byte, error)
}

// Client executes queries against the protocol subgraph.
//
// The execution client is built lazily on first use and memoized until a
// stale-transport failure invalidates it. One mutex serializes every
// execution: the transport is not safe for concurrent use, and holding the
// gate across both the create-or-reuse check and the call keeps client swaps
// atomic with respect to in-flight queries.
type Client struct {
	url    string
	logger *zap.Logger
	dial   func(url string) execClient

	mu     sync.Mutex
	client execClient
}

// NewClient builds a client bound to the subgraph endpoint URL. No execution
// timeout is applied; callers bound long queries through ctx.
func NewClient(url string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:    url,
		logger: logger,
		dial:   defaultDial,
	}
}

func defaultDial(url string) execClient {
	return graphql.NewClient(url, &http.Client{})
}

// ensureClient returns the memoized execution client, dialing one if absent.
// Callers must hold mu.
func (c *Client) ensureClient() execClient {
	if c.client == nil {
		c.client = c.dial(c.url)
	}
	return c.client
}

// exec runs one query document under the execution gate. On a stale-transport
// failure the cached client is dropped, rebuilt and the query retried exactly
// once; a second failure of any kind propagates.
func (c *Client) exec(ctx context.Context, name, query string, variables map[string]interface{}) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	client := c.ensureClient()
	raw, err := client.ExecRaw(ctx, query, variables)
	if err != nil && errors.Is(err, ErrStaleTransport) {
		c.logger.Warn("stale subgraph transport, rebuilding client", zap.String("query", name), zap.Error(err))
		c.client = nil
		client = c.ensureClient()
		raw, err = client.ExecRaw(ctx, query, variables)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return raw, nil
}

// traderValue serializes an address the way the indexer stores Bytes values.
func traderValue(trader common.Address) string {
	return strings.ToLower(trader.Hex())
}

// Pairs lists every tradable pair known to the indexer, in indexer order.
func (c *Client) Pairs(ctx context.Context) ([]model.Pair, error) {
	raw, err := c.exec(ctx, "getPairs", queryPairs, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Pairs []model.Pair `json:"pairs"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode pairs: %w", err)
	}
	return out.Pairs, nil
}

// PairDetails returns one pair's full parameter set.
func (c *Client) PairDetails(ctx context.Context, pairID string) (model.Pair, error) {
	raw, err := c.exec(ctx, "getPairDetails", queryPairDetails, map[string]interface{}{
		"pair_id": graphql.ID(pairID),
	})
	if err != nil {
		return model.Pair{}, err
	}
	var out struct {
		Pair *model.Pair `json:"pair"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.Pair{}, fmt.Errorf("decode pair: %w", err)
	}
	if out.Pair == nil {
		return model.Pair{}, &NotFoundError{Kind: "pair", ID: pairID}
	}
	return *out.Pair, nil
}

// LiqMarginThresholdP returns the protocol's liquidation margin threshold
// percentage. The indexer keeps exactly one metadata record; an empty result
// is a broken indexer, not a condition handled here.
func (c *Client) LiqMarginThresholdP(ctx context.Context) (float64, error) {
	raw, err := c.exec(ctx, "metaDatas", queryMetaDatas, nil)
	if err != nil {
		return 0, err
	}
	var out struct {
		MetaDatas []struct {
			LiqMarginThresholdP model.Numeric `json:"liqMarginThresholdP"`
		} `json:"metaDatas"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return 0, fmt.Errorf("decode metaDatas: %w", err)
	}
	if len(out.MetaDatas) == 0 {
		return 0, fmt.Errorf("metaDatas: empty result")
	}
	return out.MetaDatas[0].LiqMarginThresholdP.Float64(), nil
}

// OpenTrades returns the trader's open positions with their pairs' funding
// and leverage parameters embedded. Ordering is whatever the indexer returns.
func (c *Client) OpenTrades(ctx context.Context, trader common.Address) ([]model.Trade, error) {
	raw, err := c.exec(ctx, "trades", queryOpenTrades, map[string]interface{}{
		"trader": traderValue(trader),
	})
	if err != nil {
		return nil, err
	}
	var out struct {
		Trades []model.Trade `json:"trades"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode trades: %w", err)
	}
	return out.Trades, nil
}

// OpenOrders returns the trader's active limit orders, oldest first.
func (c *Client) OpenOrders(ctx context.Context, trader common.Address) ([]model.LimitOrder, error) {
	raw, err := c.exec(ctx, "orders", queryOpenOrders, map[string]interface{}{
		"trader": traderValue(trader),
	})
	if err != nil {
		return nil, err
	}
	var out struct {
		Limits []model.LimitOrder `json:"limits"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode limits: %w", err)
	}
	return out.Limits, nil
}

// RecentHistory returns up to lastN of the trader's most recently executed,
// non-pending orders in ascending chronological order, oldest of the page
// first. The document fetches them newest-first; the page is reversed before
// returning.
func (c *Client) RecentHistory(ctx context.Context, trader common.Address, lastN int) ([]model.Order, error) {
	raw, err := c.exec(ctx, "ListOrdersHistory", queryRecentHistory, map[string]interface{}{
		"trader":        traderValue(trader),
		"last_n_orders": lastN,
	})
	if err != nil {
		return nil, err
	}
	var out struct {
		Orders []model.Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := out.Orders
	for i, j := 0, len(orders)-1; i < j; i, j = i+1, j-1 {
		orders[i], orders[j] = orders[j], orders[i]
	}
	return orders, nil
}

// OrderByID returns the order with the given id, or nil when the indexer has
// no match. An absent order is a normal outcome, not an error.
func (c *Client) OrderByID(ctx context.Context, orderID string) (*model.Order, error) {
	raw, err := c.exec(ctx, "GetOrder", queryOrderByID, map[string]interface{}{
		"order_id": graphql.ID(orderID),
	})
	if err != nil {
		return nil, err
	}
	var out struct {
		Orders []model.Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	if len(out.Orders) == 0 {
		return nil, nil
	}
	return &out.Orders[0], nil
}

// TradeByID returns the trade with the given id, or nil when the indexer has
// no match.
func (c *Client) TradeByID(ctx context.Context, tradeID string) (*model.Trade, error) {
	raw, err := c.exec(ctx, "GetTrade", queryTradeByID, map[string]interface{}{
		"trade_id": graphql.ID(tradeID),
	})
	if err != nil {
		return nil, err
	}
	var out struct {
		Trades []model.Trade `json:"trades"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode trade: %w", err)
	}
	if len(out.Trades) == 0 {
		return nil, nil
	}
	return &out.Trades[0], nil
}
