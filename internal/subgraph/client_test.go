package subgraph

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	graphql "github.com/hasura/go-graphql-client"
)

// fakeExec stands in for the GraphQL execution client. Errors are consumed
// one per call; a call with no queued error returns resp.
type fakeExec struct {
	resp  []byte
	delay time.Duration

	mu       sync.Mutex
	calls    int
	lastVars map[string]interface{}
	errs     []error

	inUse      int32
	overlapped int32
}

func (f *fakeExec) ExecRaw(_ context.Context, _ string, variables map[string]interface{}, _ ...graphql.Option) ([]byte, error) {
	if !atomic.CompareAndSwapInt32(&f.inUse, 0, 1) {
		atomic.StoreInt32(&f.overlapped, 1)
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	atomic.StoreInt32(&f.inUse, 0)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastVars = variables
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.resp, nil
}

func (f *fakeExec) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// newTestClient wires a Client to a sequence of fakes, one per dial.
func newTestClient(t *testing.T, fakes ...*fakeExec) (*Client, *int32) {
	t.Helper()
	client := NewClient("http://subgraph.test", nil)
	var dials int32
	client.dial = func(string) execClient {
		n := atomic.AddInt32(&dials, 1)
		if int(n) > len(fakes) {
			t.Fatalf("unexpected dial %d", n)
		}
		return fakes[n-1]
	}
	return client, &dials
}

func TestExecMemoizesClient(t *testing.T) {
	fake := &fakeExec{resp: []byte(`{"pairs": []}`)}
	client, dials := newTestClient(t, fake)

	for i := 0; i < 3; i++ {
		if _, err := client.Pairs(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if *dials != 1 {
		t.Fatalf("expected one dial, got %d", *dials)
	}
	if fake.callCount() != 3 {
		t.Fatalf("expected 3 executions, got %d", fake.callCount())
	}
}

func TestExecRetriesOnceOnStaleTransport(t *testing.T) {
	stale := &fakeExec{errs: []error{ErrStaleTransport}}
	fresh := &fakeExec{resp: []byte(`{"pairs": [{"id": "1", "from": "BTC", "to": "USD"}]}`)}
	client, dials := newTestClient(t, stale, fresh)

	pairs, err := client.Pairs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 1 || pairs[0].From != "BTC" {
		t.Fatalf("wrong result: %+v", pairs)
	}
	if *dials != 2 {
		t.Fatalf("expected client rebuild, got %d dials", *dials)
	}
	if stale.callCount() != 1 || fresh.callCount() != 1 {
		t.Fatalf("expected one call per client, got %d and %d", stale.callCount(), fresh.callCount())
	}
}

func TestExecSecondStaleFailurePropagates(t *testing.T) {
	first := &fakeExec{errs: []error{ErrStaleTransport}}
	second := &fakeExec{errs: []error{ErrStaleTransport}}
	client, dials := newTestClient(t, first, second)

	_, err := client.Pairs(context.Background())
	if !errors.Is(err, ErrStaleTransport) {
		t.Fatalf("expected stale transport error, got %v", err)
	}
	if *dials != 2 {
		t.Fatalf("expected exactly one rebuild, got %d dials", *dials)
	}
}

func TestExecOtherErrorNotRetried(t *testing.T) {
	boom := errors.New("execution failed")
	fake := &fakeExec{errs: []error{boom}}
	client, dials := newTestClient(t, fake)

	_, err := client.Pairs(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected execution error, got %v", err)
	}
	if *dials != 1 {
		t.Fatalf("client must not be rebuilt on a non-stale error, got %d dials", *dials)
	}
	if fake.callCount() != 1 {
		t.Fatalf("expected a single execution, got %d", fake.callCount())
	}
}

func TestExecSerializesConcurrentQueries(t *testing.T) {
	fake := &fakeExec{resp: []byte(`{"pairs": []}`), delay: 20 * time.Millisecond}
	client, _ := newTestClient(t, fake)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Pairs(context.Background()); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if atomic.LoadInt32(&fake.overlapped) != 0 {
		t.Fatalf("executions overlapped; the gate must serialize them")
	}
}

func TestOpenTradesLowercasesTrader(t *testing.T) {
	fake := &fakeExec{resp: []byte(`{"trades": []}`)}
	client, _ := newTestClient(t, fake)

	trader := common.HexToAddress("0xAB5801A7D398351B8BE11C439E05C5B3259AEC9B")
	if _, err := client.OpenTrades(context.Background(), trader); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fake.mu.Lock()
	got := fake.lastVars["trader"]
	fake.mu.Unlock()
	if got != "0xab5801a7d398351b8be11c439e05c5b3259aec9b" {
		t.Fatalf("trader not lowercased: %v", got)
	}
}

func TestRecentHistoryReturnsAscending(t *testing.T) {
	fake := &fakeExec{resp: []byte(`{"orders": [
		{"id": "c", "executedAt": "300"},
		{"id": "b", "executedAt": "200"},
		{"id": "a", "executedAt": "100"}
	]}`)}
	client, _ := newTestClient(t, fake)

	orders, err := client.RecentHistory(context.Background(), common.Address{}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	for i, want := range []string{"a", "b", "c"} {
		if orders[i].ID != want {
			t.Fatalf("order %d: expected id %s, got %s", i, want, orders[i].ID)
		}
	}
	if orders[0].ExecutedAt.Float64() != 100 {
		t.Fatalf("oldest order must come first, got %v", orders[0].ExecutedAt.Float64())
	}
}

func TestOrderByIDAbsent(t *testing.T) {
	fake := &fakeExec{resp: []byte(`{"orders": []}`)}
	client, _ := newTestClient(t, fake)

	order, err := client.OrderByID(context.Background(), "0x1-42")
	if err != nil {
		t.Fatalf("absent order must not be an error: %v", err)
	}
	if order != nil {
		t.Fatalf("expected nil order, got %+v", order)
	}
}

func TestTradeByIDFound(t *testing.T) {
	fake := &fakeExec{resp: []byte(`{"trades": [
		{"id": "0x2-7", "trader": "0xab", "collateral": "150.5", "isOpen": true}
	]}`)}
	client, _ := newTestClient(t, fake)

	trade, err := client.TradeByID(context.Background(), "0x2-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trade == nil || trade.ID != "0x2-7" || trade.Collateral.Float64() != 150.5 {
		t.Fatalf("wrong trade: %+v", trade)
	}
}

func TestPairDetailsNotFound(t *testing.T) {
	fake := &fakeExec{resp: []byte(`{"pair": null}`)}
	client, _ := newTestClient(t, fake)

	_, err := client.PairDetails(context.Background(), "99")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.ID != "99" {
		t.Fatalf("wrong id in error: %+v", notFound)
	}
}

func TestPairDetailsNormalizesDecimals(t *testing.T) {
	fake := &fakeExec{resp: []byte(`{"pair": {
		"id": "1", "from": "ETH", "to": "USD",
		"longOI": "250000.125", "accFundingLong": "-3.00000000042"
	}}`)}
	client, _ := newTestClient(t, fake)

	pair, err := client.PairDetails(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.LongOI.Float64() != 250000.125 {
		t.Fatalf("longOI mismatch: %v", pair.LongOI.Float64())
	}
	if pair.AccFundingLong.Float64() != -3.00000000042 {
		t.Fatalf("accFundingLong mismatch: %v", pair.AccFundingLong.Float64())
	}
}

func TestLiqMarginThresholdP(t *testing.T) {
	fake := &fakeExec{resp: []byte(`{"metaDatas": [{"liqMarginThresholdP": "80"}]}`)}
	client, _ := newTestClient(t, fake)

	threshold, err := client.LiqMarginThresholdP(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if threshold != 80 {
		t.Fatalf("threshold mismatch: %v", threshold)
	}
}
